// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mpvplayer

// signalTracker turns mpv's raw events and property snapshots into the
// playing/paused/ended/seeked signals the UI cares about.
type signalTracker struct {
	loading bool
	seeking bool
	last    StatusData
}

func (t *signalTracker) startFile() {
	t.loading = true
	t.seeking = false
	t.last.Ended = false
}

func (t *signalTracker) seekRequested() {
	t.seeking = true
}

// restart handles mpv's playback-restart, which follows both a file load
// and every seek.
func (t *signalTracker) restart(st StatusData) []UiEventType {
	var out []UiEventType
	switch {
	case t.loading:
		t.loading = false
		t.seeking = false
		if !st.Paused {
			out = append(out, EventPlaying)
		}
	case t.seeking:
		t.seeking = false
		out = append(out, EventSeeked)
	}
	t.last = st
	return out
}

// changed handles a property change snapshot.
func (t *signalTracker) changed(st StatusData) []UiEventType {
	var out []UiEventType
	if !t.loading {
		switch {
		case st.Ended && !t.last.Ended:
			out = append(out, EventEnded)
		case st.Ended:
			// mpv pauses by itself at the end with keep-open
		case t.last.Ended && !st.Paused:
			// eof-reached and pause may clear in either order
			out = append(out, EventPlaying)
		case st.Paused && !t.last.Paused:
			out = append(out, EventPaused)
		case !st.Paused && t.last.Paused:
			out = append(out, EventPlaying)
		}
	}
	t.last = st
	return out
}
