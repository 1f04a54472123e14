package renderloop

import (
	"image"
	"image/color"
	"testing"

	"github.com/spezifisch/canvasplay/canvas"
	"github.com/spezifisch/canvasplay/controls"
	"github.com/spezifisch/canvasplay/effects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	w = 960
	h = 540
)

type frameRequest struct {
	fn func()
}

type manualFrames struct {
	queued    []*frameRequest
	requests  int
	cancelled int
}

func (m *manualFrames) RequestFrame(fn func()) func() {
	m.requests++
	req := &frameRequest{fn: fn}
	m.queued = append(m.queued, req)
	return func() {
		m.cancelled++
		req.fn = nil
	}
}

// step runs the callbacks queued so far, like one display refresh.
func (m *manualFrames) step() {
	due := m.queued
	m.queued = nil
	for _, req := range due {
		if req.fn != nil {
			req.fn()
		}
	}
}

type fakeState struct {
	active  bool
	overlay controls.OverlayState
}

func (s *fakeState) Active() bool                   { return s.active }
func (s *fakeState) Overlay() controls.OverlayState { return s.overlay }

type solidSource struct {
	img image.Image
}

func (s solidSource) Frame() (image.Image, bool) {
	return s.img, s.img != nil
}

type staticThumbs struct {
	img image.Image
}

func (t staticThumbs) Thumbnail(float64) (image.Image, bool) {
	return t.img, t.img != nil
}

func solid(c color.RGBA, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

type rig struct {
	loop     *Loop
	frames   *manualFrames
	state    *fakeState
	surface  *canvas.Surface
	presents int
}

func newRig(effect effects.Kind, thumbs Thumbnails) *rig {
	r := &rig{
		frames:  &manualFrames{},
		state:   &fakeState{active: true, overlay: controls.OverlayState{IsPlaying: true, Volume: 1}},
		surface: canvas.NewSurface(w, h),
	}
	r.loop = New(Options{
		Surface:    r.surface,
		Layout:     controls.NewLayout(w, h),
		Icons:      controls.DefaultIcons(),
		Frames:     r.frames,
		Source:     solidSource{solid(color.RGBA{255, 0, 0, 255}, 96, 54)},
		State:      r.state,
		Thumbnails: thumbs,
		Present:    func(*image.RGBA) { r.presents++ },
		Effect:     effect,
	})
	return r
}

func TestLoopRunsWhileActive(t *testing.T) {
	r := newRig(effects.None, nil)
	r.loop.Arm()
	r.loop.Arm()
	assert.Equal(t, 1, r.frames.requests, "arming twice must not double the loop")

	for i := 0; i < 5; i++ {
		r.frames.step()
	}
	assert.Equal(t, uint64(5), r.loop.Ticks())
	assert.Equal(t, 5, r.presents)
	assert.True(t, r.loop.Armed())
}

func TestLoopStopsItselfWhenInactive(t *testing.T) {
	r := newRig(effects.None, nil)
	r.loop.Arm()
	r.frames.step()

	r.state.active = false
	r.frames.step()
	assert.False(t, r.loop.Armed())
	assert.Equal(t, uint64(1), r.loop.Ticks())

	// nothing left to run
	r.frames.step()
	assert.Equal(t, uint64(1), r.loop.Ticks())

	// no arming while inactive
	r.loop.Arm()
	assert.False(t, r.loop.Armed())
}

func TestCancelDropsPendingTick(t *testing.T) {
	r := newRig(effects.None, nil)
	r.loop.Arm()
	r.loop.Cancel()
	r.loop.Cancel()
	assert.Equal(t, 1, r.frames.cancelled)

	r.frames.step()
	assert.Equal(t, uint64(0), r.loop.Ticks())
	assert.False(t, r.loop.Armed())
}

func TestRedrawStaticNeverArms(t *testing.T) {
	r := newRig(effects.None, nil)
	r.state.active = false
	r.loop.RedrawStatic()
	assert.Equal(t, 0, r.frames.requests)
	assert.Equal(t, 1, r.presents)
	assert.Equal(t, uint64(0), r.loop.Ticks())
}

func TestComposeOrder(t *testing.T) {
	r := newRig(effects.Invert, nil)
	r.loop.RedrawStatic()
	img := r.surface.Image()

	// the red video frame is scaled up and inverted
	assert.Equal(t, color.RGBA{0, 255, 255, 255}, img.RGBAAt(480, 100))
	assert.Equal(t, color.RGBA{0, 255, 255, 255}, img.RGBAAt(0, 0))

	// the overlay is drawn after the effect, so it is not inverted
	layout := controls.NewLayout(w, h)
	vol, ok := layout.Region(controls.Volume)
	require.True(t, ok)
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, img.RGBAAt(int(vol.Bounds.X)+50, int(vol.Bounds.Y)+7))
}

func TestComposeWithoutFrame(t *testing.T) {
	r := newRig(effects.Invert, nil)
	r.loop.source = solidSource{}
	r.loop.RedrawStatic()
	// inverted transparent black keeps its zero alpha
	assert.Equal(t, color.RGBA{255, 255, 255, 0}, r.surface.Image().RGBAAt(480, 100))
}

func TestSetEffectRedrawsWhenIdle(t *testing.T) {
	r := newRig(effects.None, nil)
	r.loop.SetEffect(effects.ColorBoost)
	assert.Equal(t, effects.ColorBoost, r.loop.Effect())
	assert.Equal(t, 1, r.presents)

	r.loop.Arm()
	r.loop.SetEffect(effects.Blur)
	assert.Equal(t, 1, r.presents, "a running loop picks the effect up on its next tick")
}

func TestHoverPreviewDrawn(t *testing.T) {
	blue := color.RGBA{0, 0, 255, 255}
	r := newRig(effects.None, staticThumbs{solid(blue, 16, 9)})
	layout := controls.NewLayout(w, h)

	hover := controls.HoverPreview{Active: true, TimeOffset: 12, X: 400}
	r.loop.SetHover(hover)
	r.loop.SetHover(hover)
	assert.Equal(t, 1, r.presents)
	assert.Equal(t, hover, r.loop.Hover())

	rect := layout.PreviewRect(hover)
	center := rect.Min.Add(image.Pt(rect.Dx()/2, rect.Dy()/2))
	assert.Equal(t, blue, r.surface.Image().RGBAAt(center.X, center.Y))

	r.loop.SetHover(controls.HoverPreview{})
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, r.surface.Image().RGBAAt(center.X, center.Y))
}

func TestHoverWithoutThumbnail(t *testing.T) {
	r := newRig(effects.None, staticThumbs{})
	r.loop.SetHover(controls.HoverPreview{Active: true, X: 400})
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, r.surface.Image().RGBAAt(400, 440))
}
