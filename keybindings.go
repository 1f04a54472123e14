// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"sort"

	"github.com/gdamore/tcell/v2"
	tviewcommand "github.com/spezifisch/tview-command"
)

// command names used in keybinding files
const (
	cmdShowPlayer      = "page.player"
	cmdShowPlaylist    = "page.playlist"
	cmdShowLog         = "page.log"
	cmdHelp            = "help"
	cmdQuit            = "quit"
	cmdTogglePlay      = "playPause"
	cmdToggleMute      = "mute"
	cmdNext            = "next"
	cmdPrev            = "prev"
	cmdToggleAutoplay  = "autoplay"
	cmdCycleEffect     = "effect"
	cmdVolumeDown      = "volumeDown"
	cmdVolumeUp        = "volumeUp"
	cmdSeekBack        = "seekBack"
	cmdSeekForward     = "seekForward"
	cmdRefreshPlaylist = "refreshPlaylist"

	cmdPlaySelected   = "playlist.play"
	cmdRemoveSelected = "playlist.remove"
	cmdMoveUp         = "playlist.moveUp"
	cmdMoveDown       = "playlist.moveDown"

	cmdClearLog = "log.clear"
)

// contexts, as named in keybinding files
const (
	contextDefault  = "Default"
	contextPlayer   = "Player"
	contextPlaylist = "Playlist"
	contextLog      = "Log"
)

var pageContexts = map[string]string{
	PagePlayer:   contextPlayer,
	PagePlaylist: contextPlaylist,
	PageLog:      contextLog,
}

func defaultKeybindings() tviewcommand.Config {
	return tviewcommand.Config{
		contextDefault: {Bindings: map[string]string{
			"1": cmdShowPlayer,
			"2": cmdShowPlaylist,
			"3": cmdShowLog,
			"?": cmdHelp,
			"Q": cmdQuit,

			"p":   cmdTogglePlay,
			"SPC": cmdTogglePlay,
			"m":   cmdToggleMute,
			"n":   cmdNext,
			">":   cmdNext,
			"b":   cmdPrev,
			"<":   cmdPrev,
			"a":   cmdToggleAutoplay,
			"e":   cmdCycleEffect,
			"-":   cmdVolumeDown,
			"+":   cmdVolumeUp,
			"=":   cmdVolumeUp,
			",":   cmdSeekBack,
			".":   cmdSeekForward,
			"R":   cmdRefreshPlaylist,
		}},
		contextPlayer: {Bindings: map[string]string{}},
		contextPlaylist: {Bindings: map[string]string{
			"enter": cmdPlaySelected,
			"d":     cmdRemoveSelected,
			"DEL":   cmdRemoveSelected,
			"J":     cmdMoveDown,
			"K":     cmdMoveUp,
		}},
		contextLog: {Bindings: map[string]string{
			"c": cmdClearLog,
		}},
	}
}

// keymap resolves a key in a page context to a command name. Bindings from
// a keybinding file replace the built-in ones key by key; binding a key to
// "" unbinds it.
type keymap struct {
	contexts tviewcommand.Config
}

func newKeymap(loaded *tviewcommand.Config) *keymap {
	km := &keymap{contexts: defaultKeybindings()}
	if loaded == nil {
		return km
	}
	for name, ctx := range *loaded {
		target, ok := km.contexts[name]
		if !ok || target.Bindings == nil {
			target = tviewcommand.Context{Bindings: map[string]string{}}
		}
		for key, cmd := range ctx.Bindings {
			target.Bindings[key] = cmd
		}
		km.contexts[name] = target
	}
	return km
}

// Lookup falls back to the Default context when the page context does not
// bind key.
func (km *keymap) Lookup(context, key string) string {
	if key == "" {
		return ""
	}
	if cmd, ok := km.contexts[context].Bindings[key]; ok {
		return cmd
	}
	return km.contexts[contextDefault].Bindings[key]
}

// KeysFor lists the keys that run cmd in context, sorted.
func (km *keymap) KeysFor(context, cmd string) []string {
	var keys []string
	own := km.contexts[context].Bindings
	for key, c := range own {
		if c == cmd {
			keys = append(keys, key)
		}
	}
	if context != contextDefault {
		for key, c := range km.contexts[contextDefault].Bindings {
			if _, shadowed := own[key]; c == cmd && !shadowed {
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// keyName spells a key the way keybinding files do.
func keyName(event *tcell.EventKey) string {
	switch event.Key() {
	case tcell.KeyRune:
		if event.Rune() == ' ' {
			return "SPC"
		}
		return string(event.Rune())
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyDelete:
		return "DEL"
	case tcell.KeyEscape:
		return "ESC"
	case tcell.KeyTab:
		return "TAB"
	}
	return ""
}
