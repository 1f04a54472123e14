// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spezifisch/canvasplay/playback"
	"github.com/spezifisch/canvasplay/prefs"
)

const (
	volumeStep = 0.05
	seekStep   = 10.0 // seconds
)

func (ui *Ui) handlePageInput(event *tcell.EventKey) *tcell.EventKey {
	// modals handle their own keys
	if ui.helpWidget.visible {
		return event
	}
	if name, _ := ui.pages.GetFrontPage(); name == PageMessageBox {
		return event
	}

	context := pageContexts[ui.menuWidget.GetActivePage()]
	cmd := ui.keys.Lookup(context, keyName(event))
	if cmd == "" || !ui.runCommand(cmd) {
		return event
	}
	return nil
}

// runCommand executes a keybinding command and reports whether it knew it.
func (ui *Ui) runCommand(cmd string) bool {
	switch cmd {
	case cmdShowPlayer:
		ui.ShowPage(PagePlayer)
	case cmdShowPlaylist:
		ui.ShowPage(PagePlaylist)
	case cmdShowLog:
		ui.ShowPage(PageLog)
	case cmdHelp:
		ui.ShowHelp()
	case cmdQuit:
		ui.Quit()

	case cmdTogglePlay:
		ui.controller.Dispatch(playback.TogglePlayPause{})
	case cmdToggleMute:
		ui.controller.Dispatch(playback.ToggleMute{})
	case cmdNext:
		ui.controller.Dispatch(playback.PlayNext{})
	case cmdPrev:
		ui.controller.Dispatch(playback.PlayPrev{})
	case cmdToggleAutoplay:
		autoplay := !ui.controller.State().Autoplay
		ui.controller.Dispatch(playback.SetAutoplay{Enabled: autoplay})
		ui.logger.Printf("autoplay %t", autoplay)
	case cmdCycleEffect:
		ui.cycleEffect()

	case cmdVolumeDown:
		ui.controller.Dispatch(playback.SetVolume{Level: ui.controller.State().Volume - volumeStep})
	case cmdVolumeUp:
		ui.controller.Dispatch(playback.SetVolume{Level: ui.controller.State().Volume + volumeStep})
	case cmdSeekForward:
		ui.controller.Dispatch(playback.Seek{Seconds: ui.player.CurrentTime() + seekStep})
	case cmdSeekBack:
		ui.controller.Dispatch(playback.Seek{Seconds: ui.player.CurrentTime() - seekStep})

	case cmdRefreshPlaylist:
		ui.logger.Print("refreshing playlist")
		ui.requestCatalogRefresh()

	case cmdPlaySelected:
		ui.playlistPage.handlePlaySelected()
	case cmdRemoveSelected:
		ui.playlistPage.handleDeleteSelected()
	case cmdMoveUp:
		ui.playlistPage.moveEntryUp()
	case cmdMoveDown:
		ui.playlistPage.moveEntryDown()

	case cmdClearLog:
		ui.logPage.Clear()

	default:
		ui.logger.Printf("unknown command %q", cmd)
		return false
	}
	return true
}

func (ui *Ui) ShowPage(name string) {
	ui.pages.SwitchToPage(name)
	ui.menuWidget.SetActivePage(name)
	_, prim := ui.pages.GetFrontPage()
	ui.app.SetFocus(prim)
}

func (ui *Ui) Quit() {
	state := ui.controller.State()
	p := prefs.Prefs{
		Autoplay:       state.Autoplay,
		Volume:         state.Volume,
		CurrentVideoId: state.CurrentVideoId,
	}
	if err := ui.prefsStore.Save(p); err != nil {
		ui.logger.PrintError("Quit: save preferences", err)
	}

	if ui.thumbnails != nil {
		ui.thumbnails.Close()
	}
	if ui.preview != nil {
		ui.preview.Close()
	}
	ui.player.Quit()
	ui.app.Stop()
}

func (ui *Ui) cycleEffect() {
	effect := ui.loop.Effect().Next()
	ui.loop.SetEffect(effect)
	ui.menuWidget.SetEffect(effect.String())
	ui.logger.Printf("effect %s", effect)
}

// playEntry starts the entry at index of the playlist.
func (ui *Ui) playEntry(index int) {
	entry, err := ui.controller.Playlist().Get(index)
	if err != nil {
		ui.logger.PrintError("playEntry", err)
		return
	}
	ui.controller.Dispatch(playback.LoadVideo{Entry: entry})
}

// handleDrop takes pasted text as dropped files. Every video is appended,
// and the first one starts playing.
func (ui *Ui) handleDrop(text string) {
	added, rejected, lastErr := dropFiles(ui.fs, ui.controller.Playlist(), text, time.Now())

	if len(added) > 0 {
		ui.playlistPage.UpdatePlaylist()
		ui.controller.Dispatch(playback.LoadVideo{Entry: added[0]})
	}
	if rejected > 0 {
		ui.logger.PrintError("handleDrop", lastErr)
		msg := "Only video files can be dropped"
		if !errors.Is(lastErr, errNotVideo) {
			msg = "Could not open the dropped file"
		}
		ui.showNotice(msg)
	}
}
