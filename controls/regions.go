// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package controls holds the control overlay geometry. One table of regions
// is used both to hit-test pointer events and to draw the controls, so the
// two can never disagree.
package controls

import (
	"image"
	"math"
)

type RegionId int

const (
	Prev RegionId = iota
	Next
	PlayPause
	Scrub
	Volume
	Mute
)

var regionNames = [...]string{
	Prev:      "prev",
	Next:      "next",
	PlayPause: "playPause",
	Scrub:     "scrub",
	Volume:    "volume",
	Mute:      "mute",
}

func (r RegionId) String() string {
	if r < 0 || int(r) >= len(regionNames) {
		return "unknown"
	}
	return regionNames[r]
}

// HasRatio reports whether the region maps an x offset to a ratio.
func (r RegionId) HasRatio() bool {
	return r == Scrub || r == Volume
}

// Rect is an edge-inclusive rectangle in internal canvas space.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Image converts r to pixel bounds for drawing.
func (r Rect) Image() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X+r.W), int(r.Y+r.H))
}

func (r Rect) Center() (x, y float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

type Region struct {
	Id     RegionId
	Bounds Rect
}

// Viewport is where the canvas currently appears in display space.
type Viewport struct {
	X, Y          float64
	Width, Height float64
}

// Hit is a resolved pointer event in internal space.
type Hit struct {
	Id RegionId
	X  float64
	Y  float64
	// Ratio is only meaningful for Scrub and Volume
	Ratio float64
}

// Layout is the fixed geometry for one internal canvas size. It never
// changes after construction.
type Layout struct {
	width, height int

	bar     Rect
	regions []Region
}

// Reference geometry, expressed relative to the canvas width w and height h.
const (
	barHeight = 50

	buttonTop    = 40 // buttons and bars start at h-40
	buttonHeight = 30
	barTrackH    = 15

	prevX, prevW           = 20, 30
	playPauseX, playPauseW = 70, 20
	nextX, nextW           = 110, 30

	scrubX        = 160
	scrubRightGap = 400 // scrub width is w-400

	volumeRight = 180 // volume starts at w-180
	volumeW     = 100

	muteRight = 60 // mute starts at w-60, h-45
	muteTop   = 45
	muteSize  = 24
)

func NewLayout(width, height int) *Layout {
	w, h := float64(width), float64(height)
	scrubW := math.Max(w-scrubRightGap, 0)

	return &Layout{
		width:  width,
		height: height,
		bar:    Rect{X: 0, Y: h - barHeight, W: w, H: barHeight},
		// precedence order: first match wins
		regions: []Region{
			{Prev, Rect{X: prevX, Y: h - buttonTop, W: prevW, H: buttonHeight}},
			{Next, Rect{X: nextX, Y: h - buttonTop, W: nextW, H: buttonHeight}},
			{PlayPause, Rect{X: playPauseX, Y: h - buttonTop, W: playPauseW, H: buttonHeight}},
			{Scrub, Rect{X: scrubX, Y: h - buttonTop, W: scrubW, H: barTrackH}},
			{Volume, Rect{X: w - volumeRight, Y: h - buttonTop, W: volumeW, H: barTrackH}},
			{Mute, Rect{X: w - muteRight, Y: h - muteTop, W: muteSize, H: muteSize}},
		},
	}
}

func (l *Layout) Size() (width, height int) {
	return l.width, l.height
}

// Regions returns the geometry table in precedence order.
func (l *Layout) Regions() []Region {
	cpy := make([]Region, len(l.regions))
	copy(cpy, l.regions)
	return cpy
}

func (l *Layout) Region(id RegionId) (Region, bool) {
	for _, r := range l.regions {
		if r.Id == id {
			return r, true
		}
	}
	return Region{}, false
}

// ToInternal maps a display-space point into internal canvas space using
// independent horizontal and vertical scale factors.
func (l *Layout) ToInternal(px, py float64, view Viewport) (x, y float64, ok bool) {
	if view.Width <= 0 || view.Height <= 0 {
		return 0, 0, false
	}
	scaleX := float64(l.width) / view.Width
	scaleY := float64(l.height) / view.Height
	return (px - view.X) * scaleX, (py - view.Y) * scaleY, true
}

// Resolve finds the control under a display-space point.
func (l *Layout) Resolve(px, py float64, view Viewport) (Hit, bool) {
	x, y, ok := l.ToInternal(px, py, view)
	if !ok {
		return Hit{}, false
	}

	for _, r := range l.regions {
		if !r.Bounds.Contains(x, y) {
			continue
		}
		hit := Hit{Id: r.Id, X: x, Y: y}
		if r.Id.HasRatio() {
			hit.Ratio = ratioIn(r.Bounds, x)
		}
		return hit, true
	}
	return Hit{}, false
}

// Ratio maps an internal x coordinate onto [0, 1] along a bar region.
func (l *Layout) Ratio(id RegionId, x float64) float64 {
	r, ok := l.Region(id)
	if !ok {
		return 0
	}
	return ratioIn(r.Bounds, x)
}

func ratioIn(r Rect, x float64) float64 {
	if r.W <= 0 {
		return 0
	}
	return Clamp01((x - r.X) / r.W)
}

// Clamp01 clamps v to [0, 1]; NaN becomes 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
