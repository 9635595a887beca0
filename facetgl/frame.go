package facetgl

import (
	"image"

	"github.com/cespare/xxhash/v2"
)

// Frame is a color buffer: W*H pixels, row-major, top-left origin, four bytes
// per pixel in R,G,B,A order. Pixel (x, y) starts at (y*W + x)*4.
type Frame struct {
	W, H int
	Pix  []byte
}

func NewFrame(w, h int) *Frame {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Frame{W: w, H: h, Pix: make([]byte, w*h*4)}
}

func (f *Frame) Size() (w, h int) { return f.W, f.H }

func (f *Frame) Offset(x, y int) int { return (y*f.W + x) * 4 }

func (f *Frame) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return
	}
	off := f.Offset(x, y)
	p := f.Pix[off : off+4 : off+4]
	p[0] = c.R
	p[1] = c.G
	p[2] = c.B
	p[3] = c.A
}

// At returns the pixel at (x, y), or the zero Color outside the frame.
func (f *Frame) At(x, y int) Color {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return Color{}
	}
	off := f.Offset(x, y)
	return Color{R: f.Pix[off], G: f.Pix[off+1], B: f.Pix[off+2], A: f.Pix[off+3]}
}

func (f *Frame) Clear(c Color) {
	if len(f.Pix) < 4 {
		return
	}
	f.Pix[0], f.Pix[1], f.Pix[2], f.Pix[3] = c.R, c.G, c.B, c.A
	// Double the initialized prefix until the buffer is full.
	for n := 4; n < len(f.Pix); n *= 2 {
		copy(f.Pix[n:], f.Pix[:n])
	}
}

// CopyFrom copies src into f. Both frames must have the same size.
func (f *Frame) CopyFrom(src *Frame) {
	copy(f.Pix, src.Pix)
}

// Digest is a content hash of the pixels.
func (f *Frame) Digest() uint64 { return xxhash.Sum64(f.Pix) }

// Image wraps the pixels without copying.
func (f *Frame) Image() *image.RGBA {
	return &image.RGBA{Pix: f.Pix, Stride: f.W * 4, Rect: image.Rect(0, 0, f.W, f.H)}
}

// Count returns how many pixels equal c.
func (f *Frame) Count(c Color) int {
	n := 0
	for i := 0; i+3 < len(f.Pix); i += 4 {
		if f.Pix[i] == c.R && f.Pix[i+1] == c.G && f.Pix[i+2] == c.B && f.Pix[i+3] == c.A {
			n++
		}
	}
	return n
}
