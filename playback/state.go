// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package playback is the player state machine. Transition is a pure
// function from (state, playlist, event) to a new state plus the list of
// side effects the caller has to carry out; Controller is that caller.
package playback

import (
	"math"

	"github.com/spezifisch/canvasplay/playlist"
)

type Phase int

const (
	NoVideo Phase = iota
	Loading
	Playing
	Paused
	Ended
)

var phaseNames = [...]string{
	NoVideo: "NoVideo",
	Loading: "Loading",
	Playing: "Playing",
	Paused:  "Paused",
	Ended:   "Ended",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "Unknown"
	}
	return phaseNames[p]
}

type State struct {
	CurrentVideoId string
	Phase          Phase
	IsMuted        bool
	Autoplay       bool
	Volume         float64

	// Generation changes whenever a pending auto-advance must be invalidated.
	Generation uint64
}

// NewState is the state at startup. Mute is not persisted; every session
// starts muted.
func NewState(autoplay bool, volume float64) State {
	return State{
		Phase:    NoVideo,
		IsMuted:  true,
		Autoplay: autoplay,
		Volume:   ClampVolume(volume),
	}
}

func (s State) IsPlaying() bool {
	return s.Phase == Playing
}

func (s State) Ended() bool {
	return s.Phase == Ended
}

func (s State) HasVideo() bool {
	return s.Phase != NoVideo
}

func ClampVolume(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Entries is the read-only view of the playlist the state machine needs.
type Entries interface {
	Len() int
	IndexOf(id string) int
	Get(index int) (playlist.VideoEntry, error)
}
