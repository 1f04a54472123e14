// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"github.com/spezifisch/canvasplay/mpvplayer"
	"github.com/spezifisch/canvasplay/playback"
)

// SendEvent is called from the mpv event goroutine.
func (ui *Ui) SendEvent(event mpvplayer.UiEvent) {
	ui.mpvEvents <- event
}

// mediaEvent maps a media signal onto the state machine's input.
func mediaEvent(typ mpvplayer.UiEventType) (playback.Event, bool) {
	switch typ {
	case mpvplayer.EventPlaying:
		return playback.MediaPlaying{}, true
	case mpvplayer.EventPaused:
		return playback.MediaPaused{}, true
	case mpvplayer.EventEnded:
		return playback.MediaEnded{}, true
	case mpvplayer.EventSeeked:
		return playback.MediaSeeked{}, true
	}
	return nil, false
}
