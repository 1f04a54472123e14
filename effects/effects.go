// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package effects implements the per-frame pixel effects applied to the
// canvas before the control overlay is drawn. Every effect works in place on
// an *image.RGBA and leaves the alpha channel alone.
package effects

import (
	"image"
	"math/rand"
)

type Kind int

const (
	None Kind = iota
	Invert
	Glitch
	ColorBoost
	Blur
)

const (
	// ColorBoostFactor scales R, G and B before clamping.
	ColorBoostFactor = 1.4
	// GlitchBands is the number of horizontal bands shifted as a unit.
	GlitchBands = 20
	// glitch shifts are bounded by width/GlitchShiftDivisor
	GlitchShiftDivisor = 10
)

var kindNames = []string{
	None:       "none",
	Invert:     "invert",
	Glitch:     "glitch",
	ColorBoost: "colorBoost",
	Blur:       "blur",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[None]
	}
	return kindNames[k]
}

// ParseKind looks up an effect by its registry name. Unknown names are the
// identity effect.
func ParseKind(name string) Kind {
	for i, n := range kindNames {
		if n == name {
			return Kind(i)
		}
	}
	return None
}

// Kinds lists all effects in cycling order.
func Kinds() []Kind {
	return []Kind{None, Invert, Glitch, ColorBoost, Blur}
}

// Next returns the effect after k, wrapping around.
func (k Kind) Next() Kind {
	return Kind((int(k.normalized()) + 1) % len(kindNames))
}

func (k Kind) normalized() Kind {
	if k < 0 || int(k) >= len(kindNames) {
		return None
	}
	return k
}

type Pipeline struct {
	rng *rand.Rand
}

// NewPipeline creates a pipeline. rng drives the glitch effect; nil seeds a
// private source.
func NewPipeline(rng *rand.Rand) *Pipeline {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Pipeline{rng: rng}
}

// Apply runs one effect over frame in place and returns it.
func (p *Pipeline) Apply(kind Kind, frame *image.RGBA) *image.RGBA {
	if frame == nil || frame.Rect.Empty() {
		return frame
	}

	switch kind {
	case Invert:
		InvertFrame(frame)
	case Glitch:
		GlitchFrame(frame, p.rng)
	case ColorBoost:
		ColorBoostFrame(frame)
	case Blur:
		BlurFrame(frame)
	}
	return frame
}

func (p *Pipeline) ApplyNamed(name string, frame *image.RGBA) *image.RGBA {
	return p.Apply(ParseKind(name), frame)
}

// rows calls fn with the pixel bytes of every row of frame.
func rows(frame *image.RGBA, fn func(y int, row []uint8)) {
	b := frame.Rect
	w := b.Dx() * 4
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := frame.PixOffset(b.Min.X, y)
		fn(y, frame.Pix[off:off+w])
	}
}

func InvertFrame(frame *image.RGBA) {
	rows(frame, func(_ int, row []uint8) {
		for i := 0; i < len(row); i += 4 {
			row[i] = 255 - row[i]
			row[i+1] = 255 - row[i+1]
			row[i+2] = 255 - row[i+2]
		}
	})
}

var boostTable = func() (t [256]uint8) {
	for v := range t {
		boosted := int(float64(v)*ColorBoostFactor + 0.5)
		if boosted > 255 {
			boosted = 255
		}
		t[v] = uint8(boosted)
	}
	return
}()

func ColorBoostFrame(frame *image.RGBA) {
	rows(frame, func(_ int, row []uint8) {
		for i := 0; i < len(row); i += 4 {
			row[i] = boostTable[row[i]]
			row[i+1] = boostTable[row[i+1]]
			row[i+2] = boostTable[row[i+2]]
		}
	})
}

// GlitchFrame shifts GlitchBands horizontal bands by independent random
// offsets. Source columns are clamped to the frame, never wrapped.
func GlitchFrame(frame *image.RGBA, rng *rand.Rand) {
	b := frame.Rect
	width, height := b.Dx(), b.Dy()

	bandHeight := height / GlitchBands
	if bandHeight < 1 {
		bandHeight = 1
	}
	maxShift := width / GlitchShiftDivisor

	src := make([]uint8, width*4)
	for top := 0; top < height; top += bandHeight {
		shift := 0
		if maxShift > 0 {
			shift = rng.Intn(2*maxShift+1) - maxShift
		}
		if shift == 0 {
			continue
		}

		bottom := top + bandHeight
		if bottom > height {
			bottom = height
		}
		for y := top; y < bottom; y++ {
			off := frame.PixOffset(b.Min.X, b.Min.Y+y)
			row := frame.Pix[off : off+width*4]
			copy(src, row)
			for x := 0; x < width; x++ {
				sx := clampInt(x+shift, 0, width-1)
				d, s := x*4, sx*4
				row[d] = src[s]
				row[d+1] = src[s+1]
				row[d+2] = src[s+2]
			}
		}
	}
}

// BlurFrame applies a 3x3 box blur to interior pixels. The outermost ring
// of pixels is left untouched.
func BlurFrame(frame *image.RGBA) {
	b := frame.Rect
	width, height := b.Dx(), b.Dy()
	if width < 3 || height < 3 {
		return
	}

	snapshot := make([]uint8, len(frame.Pix))
	copy(snapshot, frame.Pix)

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			var r, g, bl int
			for ky := -1; ky <= 1; ky++ {
				off := frame.PixOffset(b.Min.X+x-1, b.Min.Y+y+ky)
				for kx := 0; kx < 3; kx++ {
					r += int(snapshot[off])
					g += int(snapshot[off+1])
					bl += int(snapshot[off+2])
					off += 4
				}
			}
			d := frame.PixOffset(b.Min.X+x, b.Min.Y+y)
			frame.Pix[d] = uint8((r + 4) / 9)
			frame.Pix[d+1] = uint8((g + 4) / 9)
			frame.Pix[d+2] = uint8((bl + 4) / 9)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
