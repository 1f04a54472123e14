// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"errors"
	"text/template"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spezifisch/canvasplay/logger"
	"github.com/spezifisch/canvasplay/playlist"
)

// columns: now playing marker, title, subtitle
const playlistDataColumns = 3
const playingIcon = "▶"

// data for rendering the playlist table
type playlistData struct {
	tview.TableContentReadOnly

	// our copy of the playlist
	entries   []playlist.VideoEntry
	currentId string
}

var _ tview.TableContent = (*playlistData)(nil)

type PlaylistPage struct {
	Root *tview.Flex

	playlistTable *tview.Table
	playlistData  playlistData

	videoInfo *tview.TextView

	// external refs
	ui     *Ui
	logger logger.LoggerInterface

	videoInfoTemplate *template.Template
}

func (ui *Ui) createPlaylistPage() *PlaylistPage {
	videoInfoTemplate, err := template.New("video info").Parse(videoInfoTemplateString)
	if err != nil {
		ui.logger.PrintError("createPlaylistPage", err)
	}
	playlistPage := PlaylistPage{
		ui:                ui,
		logger:            ui.logger,
		videoInfoTemplate: videoInfoTemplate,
	}

	// main table
	playlistPage.playlistTable = tview.NewTable().
		SetSelectable(true, false). // rows selectable
		SetSelectedStyle(tcell.StyleDefault.Background(tcell.ColorLightGray).Foreground(tcell.ColorBlack))
	playlistPage.playlistTable.Box.
		SetTitle(" playlist ").
		SetTitleAlign(tview.AlignLeft).
		SetBorder(true)
	// Video info
	playlistPage.videoInfo = tview.NewTextView()
	playlistPage.videoInfo.SetDynamicColors(true).SetScrollable(true).SetBorder(true).SetTitle("Video Info")

	playlistPage.playlistTable.SetSelectionChangedFunc(playlistPage.changeSelection)

	// flex wrapper
	playlistPage.Root = tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(playlistPage.playlistTable, 0, 2, true).
		AddItem(playlistPage.videoInfo, 0, 1, false)

	return &playlistPage
}

func (p *PlaylistPage) changeSelection(row, column int) {
	p.videoInfo.Clear()
	if row >= len(p.playlistData.entries) || row < 0 || column < 0 || p.videoInfoTemplate == nil {
		return
	}
	entry := p.playlistData.entries[row]
	_ = p.videoInfoTemplate.Execute(p.videoInfo, &entry)
}

// UpdatePlaylist re-reads the playlist store, which is the authoritative
// source for the table.
func (p *PlaylistPage) UpdatePlaylist() {
	wasEmpty := len(p.playlistData.entries) == 0

	// tell tview table to update its data
	p.playlistData.entries = p.ui.controller.Playlist().Entries()
	p.playlistData.currentId = p.ui.controller.State().CurrentVideoId
	p.playlistTable.SetContent(&p.playlistData)

	// by default we're scrolled down after initially adding rows, fix this
	if wasEmpty {
		p.playlistTable.ScrollToBeginning()
	}

	r, c := p.playlistTable.GetSelection()
	if n := len(p.playlistData.entries); n > 0 && r >= n {
		r = clampIndex(r, n)
		p.playlistTable.Select(r, c)
	}
	p.changeSelection(r, c)
}

func (p *PlaylistPage) getSelectedItem() (index int, err error) {
	index, _ = p.playlistTable.GetSelection()
	if index < 0 || index >= len(p.playlistData.entries) {
		err = errors.New("invalid index")
		return
	}
	return
}

// button handler
func (p *PlaylistPage) handlePlaySelected() {
	index, err := p.getSelectedItem()
	if err != nil {
		return
	}
	p.ui.playEntry(index)
	p.ui.ShowPage(PagePlayer)
}

// button handler; removing the current video leaves it playing
func (p *PlaylistPage) handleDeleteSelected() {
	index, err := p.getSelectedItem()
	if err != nil {
		return
	}

	if _, err := p.ui.controller.Playlist().RemoveAt(index); err != nil {
		p.logger.PrintError("handleDeleteSelected", err)
		return
	}
	p.UpdatePlaylist()
}

// moveEntryUp moves the currently selected entry up in the playlist.
// The first entry can't move and no error is reported.
func (p *PlaylistPage) moveEntryUp() {
	currentIndex, column := p.playlistTable.GetSelection()
	if currentIndex < 0 || column < 0 {
		p.logger.Printf("moveEntryUp: invalid selection (%d, %d)", currentIndex, column)
		return
	}

	if !p.ui.controller.Playlist().MoveUp(currentIndex) {
		return
	}
	p.playlistTable.Select(currentIndex-1, column)
	p.UpdatePlaylist()
}

// moveEntryDown moves the currently selected entry down in the playlist.
// The last entry can't move and no error is reported.
func (p *PlaylistPage) moveEntryDown() {
	currentIndex, column := p.playlistTable.GetSelection()
	if currentIndex < 0 || column < 0 {
		p.logger.Printf("moveEntryDown: invalid selection (%d, %d)", currentIndex, column)
		return
	}

	if !p.ui.controller.Playlist().MoveDown(currentIndex) {
		return
	}
	p.playlistTable.Select(currentIndex+1, column)
	p.UpdatePlaylist()
}

// playlistData methods, used by tview to lazily render the table
func (d *playlistData) GetCell(row, column int) *tview.TableCell {
	if row >= len(d.entries) || column >= playlistDataColumns || row < 0 || column < 0 {
		return nil
	}
	entry := d.entries[row]

	switch column {
	case 0: // now playing
		text := " "
		if entry.Id == d.currentId {
			text = playingIcon
		}
		return &tview.TableCell{
			Text:        text,
			Color:       tcell.ColorGreen,
			Expansion:   0,
			MaxWidth:    1,
			Transparent: true,
		}
	case 1: // title
		return &tview.TableCell{
			Text:        tview.Escape(entry.GetTitle()),
			Expansion:   2,
			Transparent: true,
		}
	case 2: // subtitle
		return &tview.TableCell{
			Text:        tview.Escape(entry.Subtitle),
			Color:       tcell.ColorGray,
			Expansion:   1,
			Transparent: true,
		}
	}

	return nil
}

// Return the total number of rows in the table.
func (d *playlistData) GetRowCount() int {
	return len(d.entries)
}

// Return the total number of columns in the table.
func (d *playlistData) GetColumnCount() int {
	return playlistDataColumns
}

var videoInfoTemplateString = `[blue::b]Title:[-:-:-:-] [green::i]{{.GetTitle}}[-:-:-:-]
[blue::b]Subtitle:[-:-:-:-] [::i]{{.Subtitle}}[-:-:-:-]
[blue::b]Id:[-:-:-:-] {{.Id}}
[blue::b]Source:[-:-:-:-] {{.Src}}`
