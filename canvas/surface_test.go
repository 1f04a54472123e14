package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
)

func TestNewSurface(t *testing.T) {
	s := NewSurface(960, 540)
	assert.Equal(t, 960, s.Width())
	assert.Equal(t, 540, s.Height())
	assert.Equal(t, image.Rect(0, 0, 960, 540), s.Bounds())
}

func TestFillRectBlends(t *testing.T) {
	s := NewSurface(10, 10)
	s.FillRect(s.Bounds(), white)
	s.FillRect(image.Rect(0, 5, 10, 10), color.RGBA{0, 0, 0, 128})

	assert.Equal(t, white, s.Image().RGBAAt(3, 2))
	px := s.Image().RGBAAt(3, 7)
	assert.InDelta(t, 127, int(px.R), 2)
	assert.Equal(t, uint8(255), px.A)
}

func TestFillRectClipsToSurface(t *testing.T) {
	s := NewSurface(4, 4)
	s.FillRect(image.Rect(-10, -10, 100, 100), red)
	assert.Equal(t, red, s.Image().RGBAAt(0, 0))
	assert.Equal(t, red, s.Image().RGBAAt(3, 3))
}

func TestFillCircle(t *testing.T) {
	s := NewSurface(40, 40)
	s.FillCircle(20, 20, 10, white)

	assert.Equal(t, white, s.Image().RGBAAt(20, 20))
	assert.Equal(t, color.RGBA{}, s.Image().RGBAAt(2, 2))
	assert.Equal(t, color.RGBA{}, s.Image().RGBAAt(33, 20))
}

func TestFillPolygon(t *testing.T) {
	s := NewSurface(20, 20)
	s.FillPolygon([]Point{{0, 0}, {20, 0}, {0, 20}}, red)

	assert.Equal(t, red, s.Image().RGBAAt(2, 2))
	assert.Equal(t, color.RGBA{}, s.Image().RGBAAt(18, 18))

	// degenerate polygons are ignored
	s.FillPolygon([]Point{{0, 0}, {5, 5}}, white)
	assert.Equal(t, red, s.Image().RGBAAt(1, 1))
}

func TestDrawImageScales(t *testing.T) {
	src := image.NewUniform(red)
	tile := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < 4; i++ {
		tile.SetRGBA(i%2, i/2, red)
	}

	s := NewSurface(16, 16)
	s.DrawImage(tile, s.Bounds())
	assert.Equal(t, red, s.Image().RGBAAt(0, 0))
	assert.Equal(t, red, s.Image().RGBAAt(15, 15))

	s.Clear()
	s.DrawImage(nil, s.Bounds())
	s.DrawImage(src, image.Rectangle{})
	assert.Equal(t, color.RGBA{}, s.Image().RGBAAt(8, 8))
}

func TestImageDataRoundTrip(t *testing.T) {
	s := NewSurface(8, 8)
	s.FillRect(s.Bounds(), white)

	buf := s.ImageData()
	buf.SetRGBA(4, 4, red)
	assert.Equal(t, white, s.Image().RGBAAt(4, 4), "ImageData must copy")

	s.PutImageData(buf)
	assert.Equal(t, red, s.Image().RGBAAt(4, 4))

	s.Clear()
	assert.Equal(t, color.RGBA{}, s.Image().RGBAAt(4, 4))
	s.PutImageData(nil)
}
