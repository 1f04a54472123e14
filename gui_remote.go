// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"github.com/spezifisch/canvasplay/playback"
	"github.com/spezifisch/canvasplay/remote"
)

// remoteControl forwards remote commands to the controller on the tview
// goroutine.
type remoteControl struct {
	ui *Ui
}

var _ remote.ControlledPlayer = (*remoteControl)(nil)

func (r *remoteControl) do(fn func(state playback.State) playback.Event) {
	r.ui.app.QueueUpdateDraw(func() {
		if ev := fn(r.ui.controller.State()); ev != nil {
			r.ui.controller.Dispatch(ev)
		}
	})
}

func (r *remoteControl) Play() {
	r.do(func(state playback.State) playback.Event {
		return playEvent(state)
	})
}

func (r *remoteControl) Pause() {
	r.do(func(state playback.State) playback.Event {
		return pauseEvent(state)
	})
}

func (r *remoteControl) PlayPause() {
	r.do(func(playback.State) playback.Event {
		return playback.TogglePlayPause{}
	})
}

// Stop pauses; there is no stopped state with a video attached.
func (r *remoteControl) Stop() {
	r.Pause()
}

func (r *remoteControl) Next() {
	r.do(func(playback.State) playback.Event {
		return playback.PlayNext{}
	})
}

func (r *remoteControl) Previous() {
	r.do(func(playback.State) playback.Event {
		return playback.PlayPrev{}
	})
}

func (r *remoteControl) SeekBy(offset float64) {
	r.do(func(playback.State) playback.Event {
		return playback.Seek{Seconds: r.ui.player.CurrentTime() + offset}
	})
}

func (r *remoteControl) SetPosition(seconds float64) {
	r.do(func(playback.State) playback.Event {
		return playback.Seek{Seconds: seconds}
	})
}

func (r *remoteControl) SetVolume(level float64) {
	r.do(func(playback.State) playback.Event {
		return playback.SetVolume{Level: level}
	})
}

func (r *remoteControl) Position() float64 {
	return r.ui.player.CurrentTime()
}

// playEvent toggles only when not already playing.
func playEvent(state playback.State) playback.Event {
	switch state.Phase {
	case playback.Paused, playback.Ended:
		return playback.TogglePlayPause{}
	}
	return nil
}

func pauseEvent(state playback.State) playback.Event {
	switch state.Phase {
	case playback.Playing, playback.Loading:
		return playback.TogglePlayPause{}
	}
	return nil
}
