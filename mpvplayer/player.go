// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mpvplayer

import (
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spezifisch/canvasplay/logger"
	"github.com/supersonic-app/go-mpv"
)

// Player is the media handle: one libmpv instance playing one file at a
// time, without a window. Video frames are pulled on demand as screenshots.
type Player struct {
	instance      *mpv.Mpv
	mpvEvents     chan *mpv.Event
	eventConsumer EventConsumer
	logger        logger.LoggerInterface

	frameDir string

	mu      sync.Mutex
	src     string
	status  StatusData
	tracker signalTracker

	frame       image.Image
	frameTaken  time.Time
	minInterval time.Duration
}

func newInstance(options map[string]string) (instance *mpv.Mpv, err error) {
	instance = mpv.Create()
	for name, value := range options {
		if err = instance.SetOptionString(name, value); err != nil {
			instance.TerminateDestroy()
			return nil, err
		}
	}
	if err = instance.Initialize(); err != nil {
		instance.TerminateDestroy()
		return nil, err
	}
	return instance, nil
}

// NewPlayer starts mpv. fps caps how often Frame grabs a new picture.
func NewPlayer(logger logger.LoggerInterface, fps int) (player *Player, err error) {
	mpvInstance, err := newInstance(map[string]string{
		"vo":                     "null",
		"force-window":           "no",
		"audio-display":          "no",
		"keep-open":              "yes",
		"idle":                   "yes",
		"terminal":               "no",
		"input-default-bindings": "no",
	})
	if err != nil {
		return
	}

	frameDir, err := os.MkdirTemp("", "canvasplay-frames-")
	if err != nil {
		mpvInstance.TerminateDestroy()
		return
	}

	if fps <= 0 {
		fps = 15
	}
	player = &Player{
		instance:      mpvInstance,
		mpvEvents:     make(chan *mpv.Event),
		eventConsumer: nil, // must be set by calling RegisterEventConsumer()
		logger:        logger,
		frameDir:      frameDir,
		minInterval:   time.Second / time.Duration(fps),
		status:        StatusData{Volume: 1, Paused: true},
	}

	go player.mpvEngineEventHandler(mpvInstance)
	return
}

func (p *Player) mpvEngineEventHandler(instance *mpv.Mpv) {
	for {
		evt := instance.WaitEvent(1)
		if evt != nil && evt.Event_Id == mpv.EVENT_SHUTDOWN {
			return
		}
		p.mpvEvents <- evt
	}
}

func (p *Player) Quit() {
	p.mpvEvents <- nil
	p.instance.TerminateDestroy()
	os.RemoveAll(p.frameDir)
}

func (p *Player) RegisterEventConsumer(consumer EventConsumer) {
	p.eventConsumer = consumer
}

// Load replaces whatever is playing with src. Playback state follows the
// pause property, so callers decide with Play/Pause.
func (p *Player) Load(src string) error {
	p.mu.Lock()
	p.src = src
	p.frame = nil
	p.mu.Unlock()

	return p.instance.Command([]string{"loadfile", src, "replace"})
}

// Detach stops playback and clears the source.
func (p *Player) Detach() error {
	p.mu.Lock()
	p.src = ""
	p.frame = nil
	p.mu.Unlock()

	if err := p.instance.SetProperty("pause", mpv.FORMAT_FLAG, true); err != nil {
		p.logger.PrintError("Detach pause", err)
	}
	return p.instance.Command([]string{"stop"})
}

// Play resumes playback, starting over when parked at the end.
func (p *Player) Play() error {
	if ended, err := getPropertyBool(p.instance, "eof-reached"); err == nil && ended {
		if err := p.SetCurrentTime(0); err != nil {
			return err
		}
	}
	return p.instance.SetProperty("pause", mpv.FORMAT_FLAG, false)
}

func (p *Player) Pause() error {
	return p.instance.SetProperty("pause", mpv.FORMAT_FLAG, true)
}

func (p *Player) SetCurrentTime(seconds float64) error {
	p.mu.Lock()
	p.tracker.seekRequested()
	p.mu.Unlock()

	return p.instance.Command([]string{"seek", formatSeconds(seconds), "absolute"})
}

func (p *Player) CurrentTime() float64 {
	return p.Status().Position
}

func (p *Player) Duration() float64 {
	return p.Status().Duration
}

func (p *Player) SetVolume(level float64) error {
	return p.instance.SetProperty("volume", mpv.FORMAT_DOUBLE, toMpvVolume(level))
}

func (p *Player) Volume() (float64, error) {
	volume, err := getPropertyFloat(p.instance, "volume")
	if err != nil {
		return 0, err
	}
	return fromMpvVolume(volume), nil
}

func (p *Player) SetMuted(muted bool) error {
	return p.instance.SetProperty("mute", mpv.FORMAT_FLAG, muted)
}

func (p *Player) Muted() (bool, error) {
	return getPropertyBool(p.instance, "mute")
}

func (p *Player) Paused() (bool, error) {
	return getPropertyBool(p.instance, "pause")
}

func (p *Player) Ended() (bool, error) {
	return getPropertyBool(p.instance, "eof-reached")
}

// Source is the file currently attached, or "".
func (p *Player) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.src
}

// Status is the last progress snapshot seen by the event loop.
func (p *Player) Status() StatusData {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Frame returns the current video frame. Grabs are rate limited; in between
// the previous frame is returned again.
func (p *Player) Frame() (image.Image, bool) {
	p.mu.Lock()
	src := p.src
	cached := p.frame
	fresh := time.Since(p.frameTaken) < p.minInterval
	p.mu.Unlock()

	if src == "" {
		return nil, false
	}
	if cached != nil && fresh {
		return cached, true
	}

	img, err := screenshot(p.instance, filepath.Join(p.frameDir, "frame.jpg"))
	if err != nil {
		// no picture yet, or an audio-only file
		return cached, cached != nil
	}

	p.mu.Lock()
	p.frame = img
	p.frameTaken = time.Now()
	p.mu.Unlock()
	return img, true
}
