// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

// ControlledPlayer is what a remote control may do to the player. Calls come
// from the D-Bus goroutine; implementations hand them over to the UI thread.
type ControlledPlayer interface {
	Play()
	Pause()
	PlayPause()
	Stop()
	Next()
	Previous()

	// SeekBy moves the playhead by offset seconds.
	SeekBy(offset float64)
	SetPosition(seconds float64)
	SetVolume(level float64)

	// Position is safe to call from any goroutine.
	Position() float64
}
