// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package canvas is the fixed-resolution raster surface everything is drawn
// on: rectangle and path fills, scaled image blits and raw pixel get/put.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// segments used to approximate a full circle
const circleSegments = 48

type Point struct {
	X, Y float32
}

type Surface struct {
	img    *image.RGBA
	raster *vector.Rasterizer
	scaler xdraw.Scaler
}

func NewSurface(width, height int) *Surface {
	return &Surface{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		raster: vector.NewRasterizer(width, height),
		scaler: xdraw.ApproxBiLinear,
	}
}

func (s *Surface) Width() int {
	return s.img.Rect.Dx()
}

func (s *Surface) Height() int {
	return s.img.Rect.Dy()
}

func (s *Surface) Bounds() image.Rectangle {
	return s.img.Rect
}

// Image exposes the backing buffer for presentation. Callers must not keep
// it across frames.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Clear resets every pixel to transparent black.
func (s *Surface) Clear() {
	clear(s.img.Pix)
}

// FillRect blends c over r.
func (s *Surface) FillRect(r image.Rectangle, c color.Color) {
	draw.Draw(s.img, r.Intersect(s.img.Rect), image.NewUniform(c), image.Point{}, draw.Over)
}

// FillPolygon fills the closed polygon through pts.
func (s *Surface) FillPolygon(pts []Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	s.raster.Reset(s.Width(), s.Height())
	s.raster.DrawOp = draw.Over
	s.raster.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.raster.LineTo(p.X, p.Y)
	}
	s.raster.ClosePath()
	s.raster.Draw(s.img, s.img.Rect, image.NewUniform(c), image.Point{})
}

func (s *Surface) FillCircle(cx, cy, r float32, c color.Color) {
	if r <= 0 {
		return
	}
	pts := make([]Point, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = Point{
			X: cx + r*float32(math.Cos(a)),
			Y: cy + r*float32(math.Sin(a)),
		}
	}
	s.FillPolygon(pts, c)
}

// DrawImage scales src into dst, blending over what is already there.
func (s *Surface) DrawImage(src image.Image, dst image.Rectangle) {
	if src == nil || dst.Empty() {
		return
	}
	s.scaler.Scale(s.img, dst, src, src.Bounds(), xdraw.Over, nil)
}

// ImageData returns a copy of the current pixels.
func (s *Surface) ImageData() *image.RGBA {
	cpy := image.NewRGBA(s.img.Rect)
	copy(cpy.Pix, s.img.Pix)
	return cpy
}

// PutImageData replaces the pixels inside buf's bounds with buf.
func (s *Surface) PutImageData(buf *image.RGBA) {
	if buf == nil {
		return
	}
	draw.Draw(s.img, buf.Rect.Intersect(s.img.Rect), buf, buf.Rect.Min, draw.Src)
}
