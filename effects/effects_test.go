package effects

import (
	"bytes"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noiseFrame returns a frame filled with reproducible random pixels.
func noiseFrame(w, h int, seed int64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rng := rand.New(rand.NewSource(seed))
	rng.Read(img.Pix)
	return img
}

func clone(img *image.RGBA) *image.RGBA {
	cpy := image.NewRGBA(img.Rect)
	copy(cpy.Pix, img.Pix)
	return cpy
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		assert.Equal(t, k, ParseKind(k.String()))
	}
	assert.Equal(t, ColorBoost, ParseKind("colorBoost"))
	assert.Equal(t, None, ParseKind("sepia"))
	assert.Equal(t, None, ParseKind(""))
	assert.Equal(t, "none", Kind(42).String())
}

func TestKindNextCycles(t *testing.T) {
	k := None
	seen := map[Kind]bool{}
	for range Kinds() {
		seen[k] = true
		k = k.Next()
	}
	assert.Equal(t, None, k)
	assert.Len(t, seen, len(Kinds()))
}

func TestNoneAndUnknownAreIdentity(t *testing.T) {
	p := NewPipeline(rand.New(rand.NewSource(1)))
	frame := noiseFrame(32, 24, 1)
	orig := clone(frame)

	p.Apply(None, frame)
	assert.Equal(t, orig.Pix, frame.Pix)

	p.ApplyNamed("doesNotExist", frame)
	assert.Equal(t, orig.Pix, frame.Pix)
}

func TestApplyHandlesEmptyFrames(t *testing.T) {
	p := NewPipeline(nil)
	assert.Nil(t, p.Apply(Blur, nil))

	empty := image.NewRGBA(image.Rectangle{})
	assert.Same(t, empty, p.Apply(Glitch, empty))
}

func TestInvertIsInvolution(t *testing.T) {
	p := NewPipeline(nil)
	frame := noiseFrame(64, 48, 2)
	orig := clone(frame)

	p.Apply(Invert, frame)
	assert.NotEqual(t, orig.Pix, frame.Pix)
	p.Apply(Invert, frame)
	assert.Equal(t, orig.Pix, frame.Pix)
}

func TestInvertLeavesAlpha(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 1, 1))
	frame.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 40})

	InvertFrame(frame)
	assert.Equal(t, color.RGBA{R: 245, G: 235, B: 225, A: 40}, frame.RGBAAt(0, 0))
}

func TestColorBoost(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 3, 1))
	frame.SetRGBA(0, 0, color.RGBA{R: 100, G: 0, B: 10, A: 7})
	frame.SetRGBA(1, 0, color.RGBA{R: 200, G: 255, B: 182, A: 255})
	frame.SetRGBA(2, 0, color.RGBA{R: 183, G: 1, B: 2, A: 0})

	ColorBoostFrame(frame)
	assert.Equal(t, color.RGBA{R: 140, G: 0, B: 14, A: 7}, frame.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, frame.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{R: 255, G: 1, B: 3, A: 0}, frame.RGBAAt(2, 0))
}

func TestColorBoostStaysInRange(t *testing.T) {
	for v := 0; v < 256; v++ {
		want := float64(v) * ColorBoostFactor
		got := boostTable[v]
		if want >= 255 {
			assert.Equal(t, uint8(255), got)
		} else {
			assert.InDelta(t, want, float64(got), 0.5)
		}
	}
}

func TestBlurKeepsOuterRing(t *testing.T) {
	frame := noiseFrame(40, 30, 3)
	orig := clone(frame)
	BlurFrame(frame)

	b := frame.Rect
	for x := 0; x < b.Dx(); x++ {
		assert.Equal(t, orig.RGBAAt(x, 0), frame.RGBAAt(x, 0))
		assert.Equal(t, orig.RGBAAt(x, b.Dy()-1), frame.RGBAAt(x, b.Dy()-1))
	}
	for y := 0; y < b.Dy(); y++ {
		assert.Equal(t, orig.RGBAAt(0, y), frame.RGBAAt(0, y))
		assert.Equal(t, orig.RGBAAt(b.Dx()-1, y), frame.RGBAAt(b.Dx()-1, y))
	}
	assert.NotEqual(t, orig.Pix, frame.Pix)
}

func TestBlurReadsFromSnapshot(t *testing.T) {
	// a single bright pixel spreads 255/9 into each neighbour; reading
	// already-blurred neighbours would leak into the second row as well
	frame := image.NewRGBA(image.Rect(0, 0, 5, 5))
	frame.SetRGBA(2, 2, color.RGBA{R: 255, G: 90, B: 9, A: 255})

	BlurFrame(frame)

	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			px := frame.RGBAAt(x, y)
			assert.Equal(t, uint8(28), px.R, "x=%d y=%d", x, y)
			assert.Equal(t, uint8(10), px.G, "x=%d y=%d", x, y)
			assert.Equal(t, uint8(1), px.B, "x=%d y=%d", x, y)
		}
	}
	assert.Equal(t, color.RGBA{}, frame.RGBAAt(0, 0))
}

func TestBlurTinyFramesUnchanged(t *testing.T) {
	frame := noiseFrame(2, 7, 4)
	orig := clone(frame)
	BlurFrame(frame)
	assert.Equal(t, orig.Pix, frame.Pix)
}

// columnFrame encodes the column index in R and the row index in G.
func columnFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0, A: 255})
		}
	}
	return img
}

func TestGlitchShiftsBandsWithinBounds(t *testing.T) {
	sizes := []struct{ w, h int }{
		{200, 100}, // even bands
		{120, 47},  // trailing partial band
		{9, 5},     // fewer rows than bands, no shift possible
		{1, 1},
	}

	for _, size := range sizes {
		for seed := int64(0); seed < 20; seed++ {
			frame := columnFrame(size.w, size.h)
			GlitchFrame(frame, rand.New(rand.NewSource(seed)))

			maxShift := size.w / GlitchShiftDivisor
			bandHeight := size.h / GlitchBands
			if bandHeight < 1 {
				bandHeight = 1
			}

			for y := 0; y < size.h; y++ {
				first := frame.RGBAAt(0, y)
				shift := int(first.R) // x=0 reads clamp(shift, 0, w-1)
				for x := 0; x < size.w; x++ {
					px := frame.RGBAAt(x, y)
					require.Less(t, int(px.R), size.w)
					require.Equal(t, uint8(y), px.G, "glitch must stay in its row")
					require.LessOrEqual(t, absInt(int(px.R)-x), maxShift)
					require.Equal(t, uint8(255), px.A)
					if shift > 0 {
						// positive shift: every pixel comes from x+shift, clamped right
						require.Equal(t, clampInt(x+shift, 0, size.w-1), int(px.R))
					}
				}

				// all rows of a band share one shift
				if y%bandHeight != 0 {
					prev := frame.RGBAAt(size.w-1, y-1)
					cur := frame.RGBAAt(size.w-1, y)
					require.Equal(t, prev.R, cur.R, "rows of one band diverge at y=%d", y)
				}
			}
		}
	}
}

func TestGlitchIsDeterministicPerSeed(t *testing.T) {
	a := noiseFrame(96, 54, 9)
	b := clone(a)
	NewPipeline(rand.New(rand.NewSource(77))).Apply(Glitch, a)
	NewPipeline(rand.New(rand.NewSource(77))).Apply(Glitch, b)
	assert.True(t, bytes.Equal(a.Pix, b.Pix))
}

func TestEffectsRespectSubImages(t *testing.T) {
	parent := noiseFrame(20, 20, 5)
	orig := clone(parent)
	sub := parent.SubImage(image.Rect(5, 5, 15, 15)).(*image.RGBA)

	InvertFrame(sub)

	assert.Equal(t, orig.RGBAAt(0, 0), parent.RGBAAt(0, 0))
	assert.Equal(t, orig.RGBAAt(19, 19), parent.RGBAAt(19, 19))
	inv := orig.RGBAAt(5, 5)
	assert.Equal(t, 255-inv.R, parent.RGBAAt(5, 5).R)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
