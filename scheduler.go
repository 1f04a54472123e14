// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"sync/atomic"
	"time"

	"github.com/spezifisch/canvasplay/playback"
	"github.com/spezifisch/canvasplay/renderloop"
)

const defaultFps = 15

// uiScheduler runs callbacks on the tview goroutine after a delay. It backs
// both the render loop's frame requests and the controller's timers, so
// neither ever touches state from a timer goroutine.
type uiScheduler struct {
	// queue is app.QueueUpdateDraw outside of tests
	queue         func(func())
	frameInterval time.Duration
}

var (
	_ renderloop.FrameScheduler = (*uiScheduler)(nil)
	_ playback.Scheduler        = (*uiScheduler)(nil)
)

func newUiScheduler(queue func(func()), fps int) *uiScheduler {
	if fps <= 0 {
		fps = defaultFps
	}
	return &uiScheduler{
		queue:         queue,
		frameInterval: time.Second / time.Duration(fps),
	}
}

func (s *uiScheduler) RequestFrame(fn func()) (cancel func()) {
	return s.after(s.frameInterval, fn)
}

func (s *uiScheduler) AfterFunc(d time.Duration, fn func()) {
	s.after(d, fn)
}

func (s *uiScheduler) after(d time.Duration, fn func()) (cancel func()) {
	var cancelled atomic.Bool
	timer := time.AfterFunc(d, func() {
		s.queue(func() {
			// the timer may have fired just before cancel was called
			if cancelled.Load() {
				return
			}
			fn()
		})
	})
	return func() {
		cancelled.Store(true)
		timer.Stop()
	}
}
