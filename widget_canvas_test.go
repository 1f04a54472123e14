package main

import (
	"image"
	"testing"

	"github.com/spezifisch/canvasplay/controls"
	"github.com/stretchr/testify/assert"
)

func TestFitViewport(t *testing.T) {
	canvas := image.Pt(960, 540)

	tests := []struct {
		name       string
		cols, rows int
		want       controls.Viewport
	}{
		{"exact", 960, 270, controls.Viewport{X: 0, Y: 0, Width: 960, Height: 540}},
		{"wide terminal", 120, 40, controls.Viewport{X: 0, Y: 6, Width: 120, Height: 66}},
		{"short terminal", 80, 20, controls.Viewport{X: 4, Y: 0, Width: 71, Height: 40}},
		{"empty", 0, 10, controls.Viewport{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fitViewport(tt.cols, tt.rows, canvas))
		})
	}

	assert.Equal(t, controls.Viewport{}, fitViewport(80, 20, image.Point{}))
}

func TestCellToDisplay(t *testing.T) {
	px, py := cellToDisplay(0, 0)
	assert.Equal(t, 0.5, px)
	assert.Equal(t, 1.0, py)

	px, py = cellToDisplay(10, 3)
	assert.Equal(t, 10.5, px)
	assert.Equal(t, 7.0, py)
}

func TestCellsResolveToControls(t *testing.T) {
	layout := controls.NewLayout(960, 540)

	// one display pixel per internal pixel
	view := fitViewport(960, 270, image.Pt(960, 540))
	px, py := cellToDisplay(75, 255)
	hit, ok := layout.Resolve(px, py, view)
	assert.True(t, ok)
	assert.Equal(t, controls.PlayPause, hit.Id)

	// half the size, letterboxed; lands at (831, 502) internally
	view = fitViewport(480, 150, image.Pt(960, 540))
	assert.Equal(t, controls.Viewport{X: 0, Y: 14, Width: 480, Height: 270}, view)
	px, py = cellToDisplay(415, 132)
	hit, ok = layout.Resolve(px, py, view)
	assert.True(t, ok)
	assert.Equal(t, controls.Volume, hit.Id)
	assert.InDelta(t, 0.51, hit.Ratio, 0.02)
}

func TestCanvasViewDraws(t *testing.T) {
	c := NewCanvasView()
	c.SetRect(0, 0, 10, 5)
	assert.Equal(t, controls.Viewport{}, c.Viewport())

	frame := image.NewRGBA(image.Rect(0, 0, 960, 540))
	c.SetFrame(frame)
	assert.Equal(t, fitViewport(10, 5, image.Pt(960, 540)), c.Viewport())
}
