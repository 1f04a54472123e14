// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mpvplayer

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/supersonic-app/go-mpv"
)

var ErrPreviewTimeout = errors.New("preview: timed out waiting for mpv")

// PreviewGrabber is a second, silent and paused mpv instance used to pull
// single frames at arbitrary times for the scrub bar preview. It never
// touches the main player.
type PreviewGrabber struct {
	instance *mpv.Mpv
	dir      string
	timeout  time.Duration

	mu     sync.Mutex
	loaded string
}

func NewPreviewGrabber() (*PreviewGrabber, error) {
	instance, err := newInstance(map[string]string{
		"vo":                     "null",
		"ao":                     "null",
		"mute":                   "yes",
		"pause":                  "yes",
		"keep-open":              "yes",
		"idle":                   "yes",
		"terminal":               "no",
		"input-default-bindings": "no",
		"hr-seek":                "no",
	})
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "canvasplay-preview-")
	if err != nil {
		instance.TerminateDestroy()
		return nil, err
	}

	return &PreviewGrabber{
		instance: instance,
		dir:      dir,
		timeout:  5 * time.Second,
	}, nil
}

// Grab returns the frame of src nearest to seconds. It blocks until mpv has
// loaded and seeked, so it must not be called from the UI goroutine.
func (g *PreviewGrabber) Grab(src string, seconds float64) (image.Image, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.loaded != src {
		g.loaded = ""
		if err := g.instance.Command([]string{"loadfile", src, "replace"}); err != nil {
			return nil, fmt.Errorf("preview load: %w", err)
		}
		if err := g.await(mpv.EVENT_FILE_LOADED); err != nil {
			return nil, err
		}
		g.loaded = src
	}

	if err := g.instance.Command([]string{"seek", formatSeconds(seconds), "absolute+keyframes"}); err != nil {
		return nil, fmt.Errorf("preview seek: %w", err)
	}
	if err := g.await(mpv.EVENT_PLAYBACK_RESTART); err != nil {
		return nil, err
	}

	return screenshot(g.instance, filepath.Join(g.dir, "preview.jpg"))
}

func (g *PreviewGrabber) await(id mpv.EventId) error {
	// loadfile replace closes the previous file first; only an end after
	// the new start means the new file failed
	started := false

	deadline := time.Now().Add(g.timeout)
	for time.Now().Before(deadline) {
		evt := g.instance.WaitEvent(0.25)
		if evt == nil {
			continue
		}
		switch evt.Event_Id {
		case id:
			return nil
		case mpv.EVENT_START_FILE:
			started = true
		case mpv.EVENT_END_FILE:
			if started && id == mpv.EVENT_FILE_LOADED {
				return errors.New("preview: file could not be opened")
			}
		case mpv.EVENT_SHUTDOWN:
			return errors.New("preview: mpv shut down")
		}
	}
	return ErrPreviewTimeout
}

func (g *PreviewGrabber) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.instance.TerminateDestroy()
	os.RemoveAll(g.dir)
}
