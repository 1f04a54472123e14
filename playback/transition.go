// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package playback

import (
	"math"
)

// Transition applies ev to s. It never touches the media or the screen; all
// of that is expressed in the returned command list. list may be nil.
func Transition(s State, list Entries, ev Event) (State, []Command) {
	switch e := ev.(type) {
	case LoadVideo:
		return loadVideo(s, e)

	case MediaPlaying:
		if !s.HasVideo() {
			return s, nil
		}
		s.Phase = Playing
		return s, []Command{ArmRenderLoop{}}

	case MediaPaused:
		if s.Phase != Playing {
			return s, nil
		}
		s.Phase = Paused
		return s, []Command{CancelRenderLoop{}, RedrawStatic{}}

	case MediaEnded:
		if !s.HasVideo() || s.Phase == Ended {
			return s, nil
		}
		s.Phase = Ended
		s.Generation++
		cmds := []Command{CancelRenderLoop{}, RedrawStatic{}}
		if s.Autoplay {
			cmds = append(cmds, ScheduleAdvance{Delay: AdvanceDelay, Generation: s.Generation})
		}
		return s, cmds

	case MediaSeeked:
		if !s.HasVideo() {
			return s, nil
		}
		return s, []Command{RedrawStatic{}}

	case TogglePlayPause:
		switch s.Phase {
		case NoVideo:
			return s, nil
		case Playing:
			s.Phase = Paused
			return s, []Command{PauseMedia{}, CancelRenderLoop{}, RedrawStatic{}}
		case Loading:
			s.Phase = Paused
			return s, []Command{PauseMedia{}}
		default:
			// Paused or Ended; mpv restarts from the top at EOF
			s.Phase = Playing
			return s, []Command{PlayMedia{}, ArmRenderLoop{}}
		}

	case ToggleMute:
		if !s.HasVideo() {
			return s, nil
		}
		s.IsMuted = !s.IsMuted
		return s, []Command{SetMediaMuted{Muted: s.IsMuted}, RedrawStatic{}}

	case SetVolume:
		if !s.HasVideo() {
			return s, nil
		}
		s.Volume = ClampVolume(e.Level)
		return s, []Command{SetMediaVolume{Level: s.Volume}, RedrawStatic{}}

	case Seek:
		if !s.HasVideo() || math.IsNaN(e.Seconds) {
			return s, nil
		}
		secs := math.Max(e.Seconds, 0)
		if s.Phase == Ended {
			// no longer at the end, and a pending advance must not fire
			s.Phase = Paused
			s.Generation++
		}
		return s, []Command{SeekMedia{Seconds: secs}}

	case PlayNext:
		return step(s, list, 1)

	case PlayPrev:
		return step(s, list, -1)

	case SetAutoplay:
		s.Autoplay = e.Enabled
		if e.Enabled && s.Phase == Ended {
			return step(s, list, 1)
		}
		return s, nil

	case AdvanceDue:
		if e.Generation != s.Generation || s.Phase != Ended || !s.Autoplay {
			return s, nil
		}
		return step(s, list, 1)
	}

	return s, nil
}

func loadVideo(s State, e LoadVideo) (State, []Command) {
	if !e.Entry.IsValid() {
		return s, nil
	}

	var cmds []Command
	if s.HasVideo() {
		cmds = append(cmds, CancelRenderLoop{}, DetachMedia{})
	}
	cmds = append(cmds,
		AttachMedia{Entry: e.Entry, Volume: s.Volume, Muted: s.IsMuted},
		PlayMedia{},
		VideoChanged{Entry: e.Entry},
	)

	s.CurrentVideoId = e.Entry.Id
	s.Phase = Loading
	s.Generation++
	return s, cmds
}

// step loads the entry delta positions away from the current one, wrapping
// in both directions.
func step(s State, list Entries, delta int) (State, []Command) {
	if list == nil || s.CurrentVideoId == "" {
		return s, nil
	}
	n := list.Len()
	index := list.IndexOf(s.CurrentVideoId)
	if n == 0 || index < 0 {
		return s, nil
	}

	next := ((index+delta)%n + n) % n
	entry, err := list.Get(next)
	if err != nil {
		return s, nil
	}
	return loadVideo(s, LoadVideo{Entry: entry})
}
