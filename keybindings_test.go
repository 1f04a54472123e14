package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	tviewcommand "github.com/spezifisch/tview-command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeymap(t *testing.T) {
	km := newKeymap(nil)

	assert.Equal(t, cmdTogglePlay, km.Lookup(contextPlayer, "SPC"))
	assert.Equal(t, cmdTogglePlay, km.Lookup(contextPlaylist, "p"))
	assert.Equal(t, cmdShowLog, km.Lookup(contextLog, "3"))
	assert.Equal(t, cmdPlaySelected, km.Lookup(contextPlaylist, "enter"))
	assert.Equal(t, cmdMoveDown, km.Lookup(contextPlaylist, "J"))
	assert.Equal(t, cmdClearLog, km.Lookup(contextLog, "c"))

	// page commands stay on their page
	assert.Empty(t, km.Lookup(contextPlayer, "enter"))
	assert.Empty(t, km.Lookup(contextPlayer, "c"))
	// j/k are left to the table
	assert.Empty(t, km.Lookup(contextPlaylist, "j"))
	assert.Empty(t, km.Lookup(contextPlaylist, ""))
}

func TestKeymapFromFile(t *testing.T) {
	path := writeFile(t, "keys.toml", `
[Default.bindings]
x = "quit"
Q = ""

[Playlist.bindings]
o = "playlist.play"
`)
	loaded, err := tviewcommand.LoadConfig(path)
	require.NoError(t, err)

	km := newKeymap(loaded)
	assert.Equal(t, cmdQuit, km.Lookup(contextPlayer, "x"))
	assert.Equal(t, cmdQuit, km.Lookup(contextPlaylist, "x"))
	assert.Equal(t, cmdPlaySelected, km.Lookup(contextPlaylist, "o"))

	// unbound
	assert.Empty(t, km.Lookup(contextPlayer, "Q"))
	assert.Empty(t, km.Lookup(contextPlaylist, "Q"))

	// built-ins the file does not mention survive
	assert.Equal(t, cmdPlaySelected, km.Lookup(contextPlaylist, "enter"))
	assert.Equal(t, cmdNext, km.Lookup(contextPlayer, "n"))
	assert.Empty(t, km.Lookup(contextPlayer, "o"))
}

func TestKeymapDoesNotShareDefaults(t *testing.T) {
	loaded := tviewcommand.Config{
		contextLog: {Bindings: map[string]string{"c": ""}},
	}
	newKeymap(&loaded)

	assert.Equal(t, cmdClearLog, newKeymap(nil).Lookup(contextLog, "c"))
}

func TestKeyName(t *testing.T) {
	cases := []struct {
		event *tcell.EventKey
		want  string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), "a"},
		{tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone), "Q"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "SPC"},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "enter"},
		{tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), "DEL"},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "ESC"},
		{tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, keyName(c.event))
	}
}

func TestEveryPageHasAContext(t *testing.T) {
	km := newKeymap(nil)
	for _, page := range buttonOrder {
		context, ok := pageContexts[page]
		require.True(t, ok, page)
		_, ok = km.contexts[context]
		assert.True(t, ok, context)
	}
}

func TestKeysFor(t *testing.T) {
	km := newKeymap(&tviewcommand.Config{
		contextPlaylist: {Bindings: map[string]string{"n": cmdMoveDown}},
	})

	assert.Equal(t, []string{">", "n"}, km.KeysFor(contextPlayer, cmdNext))
	assert.Equal(t, []string{">"}, km.KeysFor(contextPlaylist, cmdNext), "n is taken on the playlist")
	assert.Equal(t, []string{"J", "n"}, km.KeysFor(contextPlaylist, cmdMoveDown))
	assert.Empty(t, km.KeysFor(contextLog, cmdMoveDown))
	assert.Equal(t, []string{"+", "="}, km.KeysFor(contextDefault, cmdVolumeUp))
}

func TestHelpCoversEveryBoundCommand(t *testing.T) {
	labelled := map[string]bool{}
	for _, entry := range helpCommands {
		labelled[entry.cmd] = true
	}
	for name, ctx := range defaultKeybindings() {
		for key, cmd := range ctx.Bindings {
			assert.True(t, labelled[cmd], "%s: %s -> %s", name, key, cmd)
		}
	}
}
