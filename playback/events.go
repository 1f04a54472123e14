// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package playback

import (
	"time"

	"github.com/spezifisch/canvasplay/playlist"
)

// AdvanceDelay is the pause between a natural end and the auto-advance.
const AdvanceDelay = 3000 * time.Millisecond

// Event is anything that can drive a transition: user actions, media
// signals and timer expiry.
type Event interface {
	event()
}

type LoadVideo struct {
	Entry playlist.VideoEntry
}

// media signals
type (
	MediaPlaying struct{}
	MediaPaused  struct{}
	MediaEnded   struct{}
	MediaSeeked  struct{}
)

// user actions
type (
	TogglePlayPause struct{}
	ToggleMute      struct{}
	PlayNext        struct{}
	PlayPrev        struct{}
	SetAutoplay     struct{ Enabled bool }
	SetVolume       struct{ Level float64 }
	Seek            struct{ Seconds float64 }
)

// AdvanceDue fires when a scheduled auto-advance expires.
type AdvanceDue struct {
	Generation uint64
}

func (LoadVideo) event()       {}
func (MediaPlaying) event()    {}
func (MediaPaused) event()     {}
func (MediaEnded) event()      {}
func (MediaSeeked) event()     {}
func (TogglePlayPause) event() {}
func (ToggleMute) event()      {}
func (PlayNext) event()        {}
func (PlayPrev) event()        {}
func (SetAutoplay) event()     {}
func (SetVolume) event()       {}
func (Seek) event()            {}
func (AdvanceDue) event()      {}

// Command is a side effect requested by a transition. They are executed in
// the order they are returned.
type Command interface {
	command()
}

type (
	// DetachMedia stops the current media and clears its source.
	DetachMedia struct{}
	AttachMedia struct {
		Entry  playlist.VideoEntry
		Volume float64
		Muted  bool
	}
	PlayMedia      struct{}
	PauseMedia     struct{}
	SeekMedia      struct{ Seconds float64 }
	SetMediaVolume struct{ Level float64 }
	SetMediaMuted  struct{ Muted bool }

	ArmRenderLoop    struct{}
	CancelRenderLoop struct{}
	RedrawStatic     struct{}

	ScheduleAdvance struct {
		Delay      time.Duration
		Generation uint64
	}

	// VideoChanged tells observers that a new entry became current.
	VideoChanged struct {
		Entry playlist.VideoEntry
	}
)

func (DetachMedia) command()      {}
func (AttachMedia) command()      {}
func (PlayMedia) command()        {}
func (PauseMedia) command()       {}
func (SeekMedia) command()        {}
func (SetMediaVolume) command()   {}
func (SetMediaMuted) command()    {}
func (ArmRenderLoop) command()    {}
func (CancelRenderLoop) command() {}
func (RedrawStatic) command()     {}
func (ScheduleAdvance) command()  {}
func (VideoChanged) command()     {}
