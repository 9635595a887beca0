// Package hud draws text over rendered frames: a status overlay and an
// on-screen log console.
package hud

import (
	"image/color"

	"tinygo.org/x/drivers"

	"facet/facetgl"
)

// Display lets tinyfont and tinyterm draw into a frame. It satisfies
// drivers.Displayer plus the scrolling and fill methods tinyterm needs.
type Display struct {
	f      *facetgl.Frame
	scroll int16
}

var _ drivers.Displayer = (*Display)(nil)

func NewDisplay(f *facetgl.Frame) *Display {
	return &Display{f: f}
}

// Frame returns the frame being drawn into.
func (d *Display) Frame() *facetgl.Frame { return d.f }

func (d *Display) Size() (x, y int16) {
	return int16(d.f.W), int16(d.f.H)
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	d.f.SetPixel(int(x), int(y), facetgl.Color{R: c.R, G: c.G, B: c.B, A: 0xFF})
}

func (d *Display) Display() error { return nil }

func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0, y0 := max(int(x), 0), max(int(y), 0)
	x1, y1 := min(int(x)+int(width), d.f.W), min(int(y)+int(height), d.f.H)
	col := facetgl.Color{R: c.R, G: c.G, B: c.B, A: 0xFF}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			d.f.SetPixel(px, py, col)
		}
	}
	return nil
}

// SetScroll records a hardware-style scroll offset: screen row r shows
// frame row (r+line) mod height. The pixels themselves are not moved.
func (d *Display) SetScroll(line int16) {
	if h := int16(d.f.H); h > 0 {
		line %= h
		if line < 0 {
			line += h
		}
	}
	d.scroll = line
}

// Scroll returns the offset set by SetScroll.
func (d *Display) Scroll() int16 { return d.scroll }

func (d *Display) SetScrollArea(topFixedArea, bottomFixedArea int16) {}

func (d *Display) StopScroll() { d.scroll = 0 }

func (d *Display) SetRotation(rotation drivers.Rotation) error {
	if rotation != drivers.Rotation0 {
		return ErrRotation
	}
	return nil
}
