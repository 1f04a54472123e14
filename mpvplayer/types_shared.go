// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mpvplayer

// StatusData is a player progress report for the UI
type StatusData struct {
	// 0..1
	Volume   float64
	Muted    bool
	Position float64
	// 0 while unknown
	Duration float64
	Paused   bool
	Ended    bool
}
