// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package controls

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"math"
	"os"

	"github.com/spezifisch/canvasplay/canvas"
)

var (
	colorBar      = color.RGBA{0, 0, 0, 128}
	colorWhite    = color.RGBA{255, 255, 255, 255}
	colorBlack    = color.RGBA{0, 0, 0, 255}
	colorRed      = color.RGBA{255, 0, 0, 255}
	colorGrey     = color.RGBA{128, 128, 128, 255}
	colorTrack    = color.RGBA{0x66, 0x66, 0x66, 255}
	colorVolume   = color.RGBA{0, 255, 0, 255}
	colorPreviewB = color.RGBA{0xcc, 0xcc, 0xcc, 255}
)

// size of the scrub hover thumbnail
const (
	PreviewWidth  = 160
	PreviewHeight = 90
	previewGap    = 6
)

// OverlayState is the part of the player state the overlay depends on.
type OverlayState struct {
	IsPlaying   bool
	IsMuted     bool
	Volume      float64
	CurrentTime float64
	Duration    float64
}

// Progress is CurrentTime/Duration, or false when the duration is unknown.
func (o OverlayState) Progress() (float64, bool) {
	if !KnownDuration(o.Duration) {
		return 0, false
	}
	return Clamp01(o.CurrentTime / o.Duration), true
}

func KnownDuration(d float64) bool {
	return d > 0 && !math.IsNaN(d) && !math.IsInf(d, 0)
}

// Icons are the two images the mute control swaps between.
type Icons struct {
	SpeakerOn  image.Image
	SpeakerOff image.Image
}

// Draw paints the control bar for the given state.
func (l *Layout) Draw(s *canvas.Surface, st OverlayState, icons Icons) {
	s.FillRect(l.bar.Image(), colorBar)

	for _, r := range l.regions {
		switch r.Id {
		case Prev:
			l.drawRoundButton(s, r.Bounds, false)
		case Next:
			l.drawRoundButton(s, r.Bounds, true)
		case PlayPause:
			drawPlayPause(s, r.Bounds, st.IsPlaying)
		case Scrub:
			s.FillRect(r.Bounds.Image(), colorTrack)
			if p, ok := st.Progress(); ok {
				fill := r.Bounds
				fill.W *= p
				s.FillRect(fill.Image(), colorRed)
			}
		case Volume:
			s.FillRect(r.Bounds.Image(), colorTrack)
			fill := r.Bounds
			fill.W *= Clamp01(st.Volume)
			s.FillRect(fill.Image(), colorVolume)
		case Mute:
			icon := icons.SpeakerOn
			if st.IsMuted {
				icon = icons.SpeakerOff
			}
			s.DrawImage(icon, r.Bounds.Image())
		}
	}
}

// icon box offsets inside a button region
const (
	iconTop    = 4
	iconW      = 32
	iconH      = 23
	prevIconDX = 5
	nextIconDX = -7
	playIconDX = -15
	pauseBarW  = 6
	pauseBarH  = 19
	pauseGap   = 10
	discRadius = 15
)

func (l *Layout) drawRoundButton(s *canvas.Surface, r Rect, right bool) {
	cx, cy := r.Center()
	s.FillCircle(float32(cx), float32(cy), discRadius, colorWhite)

	if right {
		s.FillPolygon(arrow(r.X+nextIconDX, r.Y+iconTop, iconW, iconH, true), colorBlack)
	} else {
		s.FillPolygon(arrow(r.X+prevIconDX, r.Y+iconTop, iconW, iconH, false), colorBlack)
	}
}

func drawPlayPause(s *canvas.Surface, r Rect, playing bool) {
	if playing {
		for _, dx := range []float64{1, 1 + pauseGap} {
			bar := Rect{X: r.X + dx, Y: r.Y + iconTop, W: pauseBarW, H: pauseBarH}
			s.FillRect(bar.Image(), colorGrey)
		}
		return
	}
	s.FillPolygon(arrow(r.X+playIconDX, r.Y+iconTop, iconW, iconH, true), colorRed)
}

// arrow builds the transport triangle inside the box (x, y, w, h). The tip
// sits on the left or right edge, the base on the vertical center line.
func arrow(x, y, w, h float64, right bool) []canvas.Point {
	pt := func(px, py float64) canvas.Point {
		return canvas.Point{X: float32(px), Y: float32(py)}
	}
	base := x + 3*w/6
	if right {
		return []canvas.Point{
			pt(x+w, y+h/2),
			pt(x+5*w/6, y+h/3),
			pt(x+4*w/6, y+h/6),
			pt(base, y),
			pt(base, y+h),
		}
	}
	return []canvas.Point{
		pt(x, y+h/2),
		pt(x+w/6, y+h/3),
		pt(x+2*w/6, y+h/6),
		pt(base, y),
		pt(base, y+h),
	}
}

// HoverPreview is derived on every pointer move and never stored.
type HoverPreview struct {
	Active     bool
	TimeOffset float64
	// X is the hovered internal x coordinate
	X float64
}

// Hover computes the scrub preview for a display-space pointer position.
func (l *Layout) Hover(px, py float64, view Viewport, duration float64) HoverPreview {
	hit, ok := l.Resolve(px, py, view)
	if !ok || hit.Id != Scrub || !KnownDuration(duration) {
		return HoverPreview{}
	}
	return HoverPreview{
		Active:     true,
		TimeOffset: hit.Ratio * duration,
		X:          hit.X,
	}
}

// PreviewRect is where the thumbnail for hover is drawn: centered on the
// hovered x, just above the control bar, kept inside the canvas.
func (l *Layout) PreviewRect(hover HoverPreview) image.Rectangle {
	x := int(hover.X) - PreviewWidth/2
	if x < 0 {
		x = 0
	}
	if x > l.width-PreviewWidth {
		x = l.width - PreviewWidth
	}
	y := int(l.bar.Y) - previewGap - PreviewHeight
	if y < 0 {
		y = 0
	}
	return image.Rect(x, y, x+PreviewWidth, y+PreviewHeight)
}

func (l *Layout) DrawPreview(s *canvas.Surface, hover HoverPreview, thumb image.Image) {
	if !hover.Active || thumb == nil {
		return
	}
	r := l.PreviewRect(hover)
	s.FillRect(r.Inset(-1), colorPreviewB)
	s.FillRect(r, colorBlack)
	s.DrawImage(thumb, r)
}

// DefaultIcons rasterizes a pair of speaker icons.
func DefaultIcons() Icons {
	return Icons{
		SpeakerOn:  speakerIcon(false),
		SpeakerOff: speakerIcon(true),
	}
}

func speakerIcon(muted bool) image.Image {
	s := canvas.NewSurface(muteSize, muteSize)
	s.FillRect(image.Rect(3, 9, 8, 15), colorWhite)
	s.FillPolygon([]canvas.Point{{X: 8, Y: 9}, {X: 14, Y: 4}, {X: 14, Y: 20}, {X: 8, Y: 15}}, colorWhite)

	if muted {
		s.FillPolygon([]canvas.Point{{X: 15, Y: 8}, {X: 17, Y: 8}, {X: 23, Y: 16}, {X: 21, Y: 16}}, colorRed)
		s.FillPolygon([]canvas.Point{{X: 21, Y: 8}, {X: 23, Y: 8}, {X: 17, Y: 16}, {X: 15, Y: 16}}, colorRed)
	} else {
		s.FillRect(image.Rect(16, 10, 18, 14), colorWhite)
		s.FillRect(image.Rect(19, 7, 21, 17), colorWhite)
	}
	return s.Image()
}

// LoadIcons decodes the two speaker images from files.
func LoadIcons(onPath, offPath string) (Icons, error) {
	on, err := decodeImageFile(onPath)
	if err != nil {
		return Icons{}, err
	}
	off, err := decodeImageFile(offPath)
	if err != nil {
		return Icons{}, err
	}
	return Icons{SpeakerOn: on, SpeakerOff: off}, nil
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open icon: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode icon %s: %w", path, err)
	}
	return img, nil
}
