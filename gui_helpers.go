// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"
	"math"

	"github.com/rivo/tview"
	"github.com/spezifisch/canvasplay/playback"
	"github.com/spezifisch/canvasplay/playlist"
)

func makeModal(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewGrid().
		SetColumns(0, width, 0).
		SetRows(0, height, 0).
		AddItem(p, 1, 1, 1, 1, 0, 0, true)
}

func formatPlayerStatus(autoplay bool, volume float64, position float64, duration float64) string {
	positionMin, positionSec := secondsToMinAndSec(wholeSeconds(position))
	durationMin, durationSec := secondsToMinAndSec(wholeSeconds(duration))

	ap := "( )"
	if autoplay {
		ap = "[green](A)[-]"
	}

	return fmt.Sprintf("%s[%d%%][::b][%02d:%02d/%02d:%02d]", ap, int(math.Round(volume*100)), positionMin, positionSec, durationMin, durationSec)
}

func wholeSeconds(s float64) int64 {
	if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
		return 0
	}
	return int64(s)
}

func formatPhase(phase playback.Phase) string {
	switch phase {
	case playback.Loading:
		return "[blue::b]Loading[::-]"
	case playback.Playing:
		return "[green::b]Playing[::-]"
	case playback.Paused:
		return "[yellow::b]Paused[::-]"
	case playback.Ended:
		return "[gray::b]Ended[::-]"
	default:
		return "[red::b]Stopped[::-]"
	}
}

func formatVideoForStatusBar(entry playlist.VideoEntry) (text string) {
	if entry.Id == "" {
		return
	}
	text += "[::-] [white]" + tview.Escape(entry.GetTitle())
	if entry.Subtitle != "" {
		text += " [gray]" + tview.Escape(entry.Subtitle)
	}
	return
}

func formatVideoInfo(entry playlist.VideoEntry) string {
	if entry.Id == "" {
		return "[gray]no video, drop a file here or pick one from the playlist"
	}
	text := "[::b]" + tview.Escape(entry.GetTitle()) + "[::-]"
	if entry.Subtitle != "" {
		text += " [gray]" + tview.Escape(entry.Subtitle)
	}
	return text
}
