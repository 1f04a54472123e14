// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package playback

import (
	"time"

	"github.com/spezifisch/canvasplay/logger"
	"github.com/spezifisch/canvasplay/playlist"
)

// Media is the single media handle owned by the controller.
type Media interface {
	Load(src string) error
	Detach() error
	Play() error
	Pause() error
	SetCurrentTime(seconds float64) error
	SetVolume(level float64) error
	SetMuted(muted bool) error
}

type Renderer interface {
	Arm()
	Cancel()
	RedrawStatic()
}

// Scheduler runs fn once after d, on the same goroutine that calls Dispatch.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

type Observer interface {
	OnVideoChanged(entry playlist.VideoEntry)
	OnStateChanged(state State)
}

// Controller owns the player state and executes the commands produced by
// Transition. It is not safe for concurrent use: every call, including the
// callbacks handed to the Scheduler, must come from one goroutine.
type Controller struct {
	state    State
	playlist *playlist.Playlist

	media     Media
	renderer  Renderer
	scheduler Scheduler
	logger    logger.LoggerInterface

	observers []Observer
}

func NewController(
	state State,
	list *playlist.Playlist,
	media Media,
	renderer Renderer,
	scheduler Scheduler,
	logger logger.LoggerInterface,
) *Controller {
	if list == nil {
		list = playlist.New()
	}
	return &Controller{
		state:     state,
		playlist:  list,
		media:     media,
		renderer:  renderer,
		scheduler: scheduler,
		logger:    logger,
	}
}

func (c *Controller) AddObserver(o Observer) {
	c.observers = append(c.observers, o)
}

func (c *Controller) State() State {
	return c.state
}

// Playlist is mutated directly by the UI; it shares the controller's
// goroutine.
func (c *Controller) Playlist() *playlist.Playlist {
	return c.playlist
}

// Current returns the current entry if it is still in the playlist.
func (c *Controller) Current() (playlist.VideoEntry, bool) {
	if c.state.CurrentVideoId == "" {
		return playlist.VideoEntry{}, false
	}
	return c.playlist.Find(c.state.CurrentVideoId)
}

func (c *Controller) Dispatch(ev Event) {
	next, cmds := Transition(c.state, c.playlist, ev)
	changed := next != c.state
	c.state = next

	for _, cmd := range cmds {
		c.execute(cmd)
	}

	if changed {
		for _, o := range c.observers {
			o.OnStateChanged(c.state)
		}
	}
}

func (c *Controller) execute(cmd Command) {
	switch cmd := cmd.(type) {
	case DetachMedia:
		c.check("detach", c.media.Detach())
	case AttachMedia:
		c.check("load", c.media.Load(cmd.Entry.Src))
		c.check("volume", c.media.SetVolume(cmd.Volume))
		c.check("mute", c.media.SetMuted(cmd.Muted))
	case PlayMedia:
		c.check("play", c.media.Play())
	case PauseMedia:
		c.check("pause", c.media.Pause())
	case SeekMedia:
		c.check("seek", c.media.SetCurrentTime(cmd.Seconds))
	case SetMediaVolume:
		c.check("volume", c.media.SetVolume(cmd.Level))
	case SetMediaMuted:
		c.check("mute", c.media.SetMuted(cmd.Muted))

	case ArmRenderLoop:
		c.renderer.Arm()
	case CancelRenderLoop:
		c.renderer.Cancel()
	case RedrawStatic:
		c.renderer.RedrawStatic()

	case ScheduleAdvance:
		generation := cmd.Generation
		c.scheduler.AfterFunc(cmd.Delay, func() {
			c.Dispatch(AdvanceDue{Generation: generation})
		})

	case VideoChanged:
		for _, o := range c.observers {
			o.OnVideoChanged(cmd.Entry)
		}
	}
}

func (c *Controller) check(op string, err error) {
	if err != nil && c.logger != nil {
		c.logger.PrintError("playback "+op, err)
	}
}
