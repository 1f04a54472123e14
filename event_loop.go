// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"time"

	"github.com/spezifisch/canvasplay/mpvplayer"
	"github.com/spezifisch/canvasplay/playlist"
)

const catalogRefreshTimeout = 30 * time.Second

type eventLoop struct {
	// catalog refreshes are handled by background loop
	refreshCatalog chan string
}

func (ui *Ui) initEventLoops() {
	ui.eventLoop = &eventLoop{
		refreshCatalog: make(chan string, 1),
	}
}

func (ui *Ui) runEventLoops() {
	go ui.guiEventLoop()
	go ui.backgroundEventLoop()
}

// handle ui updates
func (ui *Ui) guiEventLoop() {
	events := 0.0
	fpsTimer := time.NewTimer(0)

	for {
		events++

		select {
		case <-fpsTimer.C:
			fpsTimer.Reset(10 * time.Second)
			// ui.logger.Printf("guiEventLoop: %f events per second", events/10.0)
			events = 0

		case msg := <-ui.logger.Prints:
			// handle log page output
			ui.logPage.Print(msg)

		case mpvEvent := <-ui.mpvEvents:
			events++

			// handle events from mpv wrapper
			switch mpvEvent.Type {
			case mpvplayer.EventStatus:
				if mpvEvent.Data == nil {
					continue
				}
				statusData := mpvEvent.Data.(mpvplayer.StatusData)

				ui.app.QueueUpdateDraw(func() {
					ui.status = statusData
					state := ui.controller.State()
					ui.playerStatus.SetText(formatPlayerStatus(state.Autoplay, state.Volume, statusData.Position, statusData.Duration))
				})

			default:
				ev, ok := mediaEvent(mpvEvent.Type)
				if !ok {
					ui.logger.Printf("guiEventLoop: unhandled mpvEvent %v", mpvEvent)
					continue
				}
				ui.logger.Printf("mpvEvent: %s", mpvEvent.Type)
				ui.app.QueueUpdateDraw(func() {
					ui.controller.Dispatch(ev)
				})
			}
		}
	}
}

// loop for blocking background tasks that would otherwise block the ui
func (ui *Ui) backgroundEventLoop() {
	for location := range ui.eventLoop.refreshCatalog {
		ctx, cancel := context.WithTimeout(context.Background(), catalogRefreshTimeout)
		entries, err := ui.catalog.Fetch(ctx, location)
		cancel()
		if err != nil {
			ui.logger.PrintError("refresh catalog", err)
			ui.app.QueueUpdateDraw(func() {
				ui.showNotice("Could not refresh the playlist")
			})
			continue
		}

		ui.app.QueueUpdateDraw(func() {
			added := mergeEntries(ui.controller.Playlist(), entries)
			ui.logger.Printf("refresh catalog: %d new entries", added)
			ui.playlistPage.UpdatePlaylist()
		})
	}
}

// requestCatalogRefresh never blocks; a refresh already waiting is enough.
func (ui *Ui) requestCatalogRefresh() {
	if ui.catalogLocation == "" {
		return
	}
	select {
	case ui.eventLoop.refreshCatalog <- ui.catalogLocation:
	default:
	}
}

// mergeEntries appends the entries whose ids are not in list yet and
// returns how many were added. Existing entries and their order are kept.
func mergeEntries(list *playlist.Playlist, entries []playlist.VideoEntry) (added int) {
	for _, e := range entries {
		if list.IndexOf(e.Id) >= 0 {
			continue
		}
		if err := list.Append(e); err == nil {
			added++
		}
	}
	return
}
