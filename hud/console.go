package hud

import (
	"bytes"
	"sync"

	"tinygo.org/x/tinyterm"

	"facet/facetgl"
)

// Console is a scrolling text terminal rendered off-screen and composited
// over frames on demand. It is safe for concurrent use and can serve as a
// log sink.
type Console struct {
	mu    sync.Mutex
	sheet *facetgl.Frame
	disp  *Display
	term  *tinyterm.Terminal
	buf   bytes.Buffer
}

// NewConsole creates a w x h pixel console.
func NewConsole(w, h int) *Console {
	c := &Console{sheet: facetgl.NewFrame(w, h)}
	c.sheet.Clear(facetgl.RGB(0, 0, 0))
	c.disp = NewDisplay(c.sheet)
	c.term = tinyterm.NewTerminal(c.disp)
	c.term.Configure(&tinyterm.Config{
		Font:       Font,
		FontHeight: LineHeight,
		FontOffset: fontOffset,
	})
	return c
}

func (c *Console) Size() (w, h int) { return c.sheet.W, c.sheet.H }

// Write feeds text, including VT100 escapes, to the terminal. Bare line
// feeds also return the carriage.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.buf.Reset()
	for _, b := range p {
		if b == '\n' {
			c.buf.WriteByte('\r')
		}
		c.buf.WriteByte(b)
	}
	if _, err := c.term.Write(c.buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Sync lets the console act as a zapcore.WriteSyncer.
func (c *Console) Sync() error { return nil }

// Overlay composites the console onto dst with its top-left corner at
// (x, y). The covered area is darkened and lit console pixels are copied on
// top of it.
func (c *Console) Overlay(dst *facetgl.Frame, x, y int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, h := c.sheet.W, c.sheet.H
	Shade(dst, x, y, w, h)

	scroll := int(c.disp.Scroll())
	for r := 0; r < h; r++ {
		dy := y + r
		if dy < 0 || dy >= dst.H {
			continue
		}
		sy := (r + scroll) % h
		for sx := 0; sx < w; sx++ {
			dx := x + sx
			if dx < 0 || dx >= dst.W {
				continue
			}
			off := c.sheet.Offset(sx, sy)
			p := c.sheet.Pix[off : off+4 : off+4]
			if p[0]|p[1]|p[2] == 0 {
				continue
			}
			dst.SetPixel(dx, dy, facetgl.Color{R: p[0], G: p[1], B: p[2], A: 0xFF})
		}
	}
}
