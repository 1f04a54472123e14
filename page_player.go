// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"github.com/rivo/tview"
	"github.com/spezifisch/canvasplay/controls"
	"github.com/spezifisch/canvasplay/playback"
	"github.com/spezifisch/canvasplay/playlist"
	"github.com/spezifisch/canvasplay/renderloop"
)

type PlayerPage struct {
	Root *tview.Flex

	canvas    *CanvasView
	videoInfo *tview.TextView

	// set once the render loop exists
	layout *controls.Layout

	// external refs
	ui *Ui
}

func (ui *Ui) createPlayerPage() *PlayerPage {
	playerPage := PlayerPage{
		ui: ui,
	}

	playerPage.canvas = NewCanvasView().
		SetClickedFunc(playerPage.handleClick).
		SetMovedFunc(playerPage.handleMove).
		SetLeftFunc(playerPage.clearHover).
		SetPastedFunc(ui.handleDrop)

	playerPage.videoInfo = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetScrollable(false)
	playerPage.videoInfo.SetText(formatVideoInfo(playlist.VideoEntry{}))

	playerPage.Root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(playerPage.canvas, 0, 1, true).
		AddItem(playerPage.videoInfo, 1, 0, false)

	return &playerPage
}

func (p *PlayerPage) SetEntry(entry playlist.VideoEntry) {
	p.videoInfo.SetText(formatVideoInfo(entry))
}

// handleClick turns a click on the canvas into a playback event.
func (p *PlayerPage) handleClick(px, py float64, view controls.Viewport) {
	if p.layout == nil {
		return
	}
	hit, ok := p.layout.Resolve(px, py, view)
	if !ok {
		return
	}
	if ev, ok := clickEvent(hit, p.ui.status.Duration); ok {
		p.ui.controller.Dispatch(ev)
	}
}

func (p *PlayerPage) handleMove(px, py float64, view controls.Viewport) {
	if p.layout == nil {
		return
	}
	p.ui.loop.SetHover(p.layout.Hover(px, py, view, p.ui.status.Duration))
}

func (p *PlayerPage) clearHover() {
	p.ui.loop.SetHover(controls.HoverPreview{})
}

// clickEvent maps a resolved control to the event it triggers. Scrubbing
// needs a known duration.
func clickEvent(hit controls.Hit, duration float64) (playback.Event, bool) {
	switch hit.Id {
	case controls.Prev:
		return playback.PlayPrev{}, true
	case controls.Next:
		return playback.PlayNext{}, true
	case controls.PlayPause:
		return playback.TogglePlayPause{}, true
	case controls.Scrub:
		if !controls.KnownDuration(duration) {
			return nil, false
		}
		return playback.Seek{Seconds: hit.Ratio * duration}, true
	case controls.Volume:
		return playback.SetVolume{Level: hit.Ratio}, true
	case controls.Mute:
		return playback.ToggleMute{}, true
	}
	return nil, false
}

// mediaClock is the part of the media handle the overlay reads.
type mediaClock interface {
	CurrentTime() float64
	Duration() float64
}

// playerState feeds the render loop from the controller and the media
// clock. Only the controller phase gates the loop; mpv's status snapshot
// lags behind a replay after the end.
type playerState struct {
	state func() playback.State
	clock mediaClock
}

var _ renderloop.StateSource = (*playerState)(nil)

func (s *playerState) Active() bool {
	return s.state().IsPlaying()
}

func (s *playerState) Overlay() controls.OverlayState {
	state := s.state()
	return controls.OverlayState{
		IsPlaying:   state.IsPlaying(),
		IsMuted:     state.IsMuted,
		Volume:      state.Volume,
		CurrentTime: s.clock.CurrentTime(),
		Duration:    s.clock.Duration(),
	}
}
