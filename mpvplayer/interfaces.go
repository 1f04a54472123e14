// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mpvplayer

type UiEventType int

const (
	// media is ready and running, data: nil
	EventPlaying UiEventType = iota
	// paused by mpv or another client, data: nil
	EventPaused
	// natural end of the file reached, data: nil
	EventEnded
	// a requested seek completed, data: nil
	EventSeeked
	// UI status update, data: StatusData
	EventStatus
)

var uiEventNames = [...]string{
	EventPlaying: "playing",
	EventPaused:  "paused",
	EventEnded:   "ended",
	EventSeeked:  "seeked",
	EventStatus:  "status",
}

func (t UiEventType) String() string {
	if t < 0 || int(t) >= len(uiEventNames) {
		return "unknown"
	}
	return uiEventNames[t]
}

type UiEvent struct {
	Type UiEventType
	Data interface{}
}

type EventConsumer interface {
	// create event that goes from mpv backend (this package) to a UI frontend
	SendEvent(event UiEvent)
}
