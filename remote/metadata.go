// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import (
	"math"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/spezifisch/canvasplay/playback"
	"github.com/spezifisch/canvasplay/playlist"
)

const trackPathPrefix = "/org/spezifisch/canvasplay/video/"

func playbackStatus(phase playback.Phase) string {
	switch phase {
	case playback.Loading, playback.Playing:
		return "Playing"
	case playback.Paused, playback.Ended:
		return "Paused"
	default:
		return "Stopped"
	}
}

func toMicros(seconds float64) int64 {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0
	}
	return int64(math.Round(seconds * microsPerSec))
}

// trackId builds a valid object path from an entry id.
func trackId(id string) dbus.ObjectPath {
	if id == "" {
		return "/org/mpris/MediaPlayer2/TrackList/NoTrack"
	}
	var b strings.Builder
	b.WriteString(trackPathPrefix)
	for _, r := range id {
		if r < 128 && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return dbus.ObjectPath(b.String())
}

func metadataFor(entry playlist.VideoEntry, duration float64) map[string]dbus.Variant {
	metadata := map[string]dbus.Variant{
		"mpris:trackid": dbus.MakeVariant(trackId(entry.Id)),
		"mpris:length":  dbus.MakeVariant(toMicros(duration)),
	}
	if entry.Id == "" {
		return metadata
	}
	metadata["xesam:title"] = dbus.MakeVariant(entry.GetTitle())
	metadata["xesam:url"] = dbus.MakeVariant(entry.Src)
	if entry.Subtitle != "" {
		metadata["xesam:album"] = dbus.MakeVariant(entry.Subtitle)
	}
	return metadata
}
