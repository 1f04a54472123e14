// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package renderloop composes the canvas one frame at a time: video frame,
// pixel effect, control overlay and scrub preview. The loop runs only while
// playback is active and is re-armed from outside, never by itself.
package renderloop

import (
	"image"

	"github.com/spezifisch/canvasplay/canvas"
	"github.com/spezifisch/canvasplay/controls"
	"github.com/spezifisch/canvasplay/effects"
)

// FrameScheduler requests a single call of fn at the next frame tick.
// Calling cancel before the tick drops the request.
type FrameScheduler interface {
	RequestFrame(fn func()) (cancel func())
}

// FrameSource yields the most recent decoded video frame, if any.
type FrameSource interface {
	Frame() (image.Image, bool)
}

type StateSource interface {
	// Active is true while playing and the media is not at its end.
	Active() bool
	Overlay() controls.OverlayState
}

// Thumbnails must not block; a miss may be filled in later.
type Thumbnails interface {
	Thumbnail(seconds float64) (image.Image, bool)
}

type Options struct {
	Surface  *canvas.Surface
	Layout   *controls.Layout
	Pipeline *effects.Pipeline
	Icons    controls.Icons

	Frames FrameScheduler
	Source FrameSource
	State  StateSource

	// optional
	Thumbnails Thumbnails
	Present    func(img *image.RGBA)
	Effect     effects.Kind
}

type Loop struct {
	surface  *canvas.Surface
	layout   *controls.Layout
	pipeline *effects.Pipeline
	icons    controls.Icons

	frames FrameScheduler
	source FrameSource
	state  StateSource
	thumbs Thumbnails

	present func(img *image.RGBA)

	effect effects.Kind
	hover  controls.HoverPreview

	cancel func()
	ticks  uint64
}

func New(opts Options) *Loop {
	pipeline := opts.Pipeline
	if pipeline == nil {
		pipeline = effects.NewPipeline(nil)
	}
	return &Loop{
		surface:  opts.Surface,
		layout:   opts.Layout,
		pipeline: pipeline,
		icons:    opts.Icons,
		frames:   opts.Frames,
		source:   opts.Source,
		state:    opts.State,
		thumbs:   opts.Thumbnails,
		present:  opts.Present,
		effect:   opts.Effect,
	}
}

// Arm starts the loop if it is not already waiting for a tick.
func (l *Loop) Arm() {
	if l.cancel != nil || !l.state.Active() {
		return
	}
	l.cancel = l.frames.RequestFrame(l.tick)
}

// Cancel drops the pending tick, if there is one.
func (l *Loop) Cancel() {
	if l.cancel == nil {
		return
	}
	l.cancel()
	l.cancel = nil
}

// Armed reports whether a tick is pending.
func (l *Loop) Armed() bool {
	return l.cancel != nil
}

// Ticks counts composed loop frames, static redraws excluded.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

func (l *Loop) tick() {
	l.cancel = nil
	if !l.state.Active() {
		return
	}
	l.ticks++
	l.compose()
	l.cancel = l.frames.RequestFrame(l.tick)
}

// RedrawStatic composes one frame without scheduling another.
func (l *Loop) RedrawStatic() {
	l.compose()
}

func (l *Loop) Effect() effects.Kind {
	return l.effect
}

func (l *Loop) SetEffect(kind effects.Kind) {
	l.effect = kind
	l.redrawIdle()
}

func (l *Loop) Hover() controls.HoverPreview {
	return l.hover
}

func (l *Loop) SetHover(h controls.HoverPreview) {
	if h == l.hover {
		return
	}
	l.hover = h
	l.redrawIdle()
}

// redrawIdle refreshes the picture when no tick is going to do it.
func (l *Loop) redrawIdle() {
	if l.cancel == nil {
		l.RedrawStatic()
	}
}

func (l *Loop) compose() {
	s := l.surface
	s.Clear()

	if l.source != nil {
		if frame, ok := l.source.Frame(); ok {
			s.DrawImage(frame, s.Bounds())
		}
	}

	buf := s.ImageData()
	l.pipeline.Apply(l.effect, buf)
	s.PutImageData(buf)

	l.layout.Draw(s, l.state.Overlay(), l.icons)

	if l.hover.Active && l.thumbs != nil {
		if thumb, ok := l.thumbs.Thumbnail(l.hover.TimeOffset); ok {
			l.layout.DrawPreview(s, l.hover, thumb)
		}
	}

	if l.present != nil {
		l.present(s.Image())
	}
}
