// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spezifisch/canvasplay/controls"
	"golang.org/x/image/draw"
)

// upper half block: foreground paints the top pixel, background the bottom
const halfBlock = '▀'

// CanvasView shows the composed canvas in the terminal. Every cell holds two
// vertically stacked display pixels, so the display space of an inner rect of
// w×h cells is w×2h pixels. The canvas is letterboxed into that space.
type CanvasView struct {
	*tview.Box

	frame  *image.RGBA
	scaled *image.RGBA

	// display-space callbacks, relative to the inner rect
	clicked func(px, py float64, view controls.Viewport)
	moved   func(px, py float64, view controls.Viewport)
	left    func()
	pasted  func(text string)

	// hovering is true while the last pointer event was inside
	hovering bool
}

func NewCanvasView() *CanvasView {
	return &CanvasView{
		Box: tview.NewBox(),
	}
}

// SetFrame replaces the picture. The image is read again on every Draw, so
// the caller may keep drawing into it.
func (c *CanvasView) SetFrame(frame *image.RGBA) {
	c.frame = frame
}

func (c *CanvasView) SetClickedFunc(fn func(px, py float64, view controls.Viewport)) *CanvasView {
	c.clicked = fn
	return c
}

func (c *CanvasView) SetMovedFunc(fn func(px, py float64, view controls.Viewport)) *CanvasView {
	c.moved = fn
	return c
}

func (c *CanvasView) SetLeftFunc(fn func()) *CanvasView {
	c.left = fn
	return c
}

func (c *CanvasView) SetPastedFunc(fn func(text string)) *CanvasView {
	c.pasted = fn
	return c
}

// Viewport is where the canvas appears within the inner rect.
func (c *CanvasView) Viewport() controls.Viewport {
	_, _, w, h := c.GetInnerRect()
	return fitViewport(w, h, c.canvasSize())
}

func (c *CanvasView) canvasSize() image.Point {
	if c.frame == nil {
		return image.Point{}
	}
	return c.frame.Bounds().Size()
}

// fitViewport letterboxes a canvas of the given size into cols×rows cells.
// The vertical offset and height are kept even so the picture starts and
// ends on a cell boundary.
func fitViewport(cols, rows int, canvas image.Point) controls.Viewport {
	if cols <= 0 || rows <= 0 || canvas.X <= 0 || canvas.Y <= 0 {
		return controls.Viewport{}
	}
	dispW, dispH := cols, rows*2

	w, h := dispW, dispW*canvas.Y/canvas.X
	if h > dispH {
		w, h = dispH*canvas.X/canvas.Y, dispH
	}
	h &^= 1
	if w <= 0 || h <= 0 {
		return controls.Viewport{}
	}

	x := (dispW - w) / 2
	y := ((dispH - h) / 2) &^ 1
	return controls.Viewport{X: float64(x), Y: float64(y), Width: float64(w), Height: float64(h)}
}

// cellToDisplay returns the display pixel at the center of a cell given
// relative to the inner rect. A cell covers two pixels; the pointer is taken
// to be on the boundary between them.
func cellToDisplay(col, row int) (px, py float64) {
	return float64(col) + 0.5, float64(row)*2 + 1
}

func (c *CanvasView) Draw(screen tcell.Screen) {
	c.Box.DrawForSubclass(screen, c)

	x, y, w, h := c.GetInnerRect()
	view := fitViewport(w, h, c.canvasSize())
	if view.Width <= 0 || view.Height <= 0 {
		return
	}

	vw, vh := int(view.Width), int(view.Height)
	if c.scaled == nil || c.scaled.Bounds().Dx() != vw || c.scaled.Bounds().Dy() != vh {
		c.scaled = image.NewRGBA(image.Rect(0, 0, vw, vh))
	}
	draw.ApproxBiLinear.Scale(c.scaled, c.scaled.Bounds(), c.frame, c.frame.Bounds(), draw.Src, nil)

	left, top := x+int(view.X), y+int(view.Y)/2
	for row := 0; row < vh/2; row++ {
		for col := 0; col < vw; col++ {
			upper := c.scaled.RGBAAt(col, row*2)
			lower := c.scaled.RGBAAt(col, row*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(upper.R), int32(upper.G), int32(upper.B))).
				Background(tcell.NewRGBColor(int32(lower.R), int32(lower.G), int32(lower.B)))
			screen.SetContent(left+col, top+row, halfBlock, nil, style)
		}
	}
}

func (c *CanvasView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return c.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		mx, my := event.Position()
		if !c.InRect(mx, my) {
			c.leave()
			return false, nil
		}

		x, y, _, _ := c.GetInnerRect()
		px, py := cellToDisplay(mx-x, my-y)

		switch action {
		case tview.MouseLeftClick:
			setFocus(c)
			if c.clicked != nil {
				c.clicked(px, py, c.Viewport())
			}
			consumed = true
		case tview.MouseMove:
			c.hovering = true
			if c.moved != nil {
				c.moved(px, py, c.Viewport())
			}
			consumed = true
		}
		return
	})
}

func (c *CanvasView) leave() {
	if !c.hovering {
		return
	}
	c.hovering = false
	if c.left != nil {
		c.left()
	}
}

func (c *CanvasView) PasteHandler() func(text string, setFocus func(p tview.Primitive)) {
	return c.WrapPasteHandler(func(text string, setFocus func(p tview.Primitive)) {
		if c.pasted != nil {
			c.pasted(text)
		}
	})
}
