package hud

import (
	"errors"
	"image/color"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"facet/facetgl"
)

var ErrRotation = errors.New("hud: rotation not supported")

// Font is the HUD and console font.
var Font = &proggy.TinySZ8pt7b

const (
	// LineHeight is the pixel pitch between text lines.
	LineHeight = 10
	// baseline offset from the top of a line
	fontOffset = 7
)

// DrawText writes one line with its top-left corner at (x, y).
func DrawText(f *facetgl.Frame, x, y int, s string, c facetgl.Color) {
	tinyfont.WriteLine(NewDisplay(f), Font, int16(x), int16(y+fontOffset), s, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

// DrawLines writes lines top to bottom starting at (x, y) and stops at the
// bottom of the frame. It returns the y below the last line written.
func DrawLines(f *facetgl.Frame, x, y int, lines []string, c facetgl.Color) int {
	for _, l := range lines {
		if y+LineHeight > f.H {
			break
		}
		DrawText(f, x, y, l, c)
		y += LineHeight
	}
	return y
}

// TextWidth returns the advance width of s in pixels.
func TextWidth(s string) int {
	_, w := tinyfont.LineWidth(Font, s)
	return int(w)
}

// Shade darkens a rectangle of f to a quarter of its brightness.
func Shade(f *facetgl.Frame, x, y, w, h int) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, f.W), min(y+h, f.H)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	for py := y0; py < y1; py++ {
		row := f.Pix[f.Offset(x0, py):f.Offset(x1, py)]
		for i := 0; i+3 < len(row); i += 4 {
			row[i] >>= 2
			row[i+1] >>= 2
			row[i+2] >>= 2
		}
	}
}

// PanicScreen paints a full-frame error report, wrapping long lines.
func PanicScreen(f *facetgl.Frame, title string, detail string) {
	f.Clear(facetgl.RGB(0x40, 0x00, 0x00))

	cols := max((f.W-8)/max(TextWidth("0"), 1), 1)
	lines := []string{title}
	for _, line := range strings.Split(detail, "\n") {
		line = strings.ReplaceAll(line, "\t", "  ")
		for len(line) > 0 {
			chunk, rest := takeRunes(line, cols)
			lines = append(lines, chunk)
			line = strings.TrimLeft(rest, " ")
		}
	}
	DrawLines(f, 4, 4, lines, facetgl.RGB(0xFF, 0xFF, 0xFF))
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}

// DrawPanel draws lines on a shaded box at (x, y) sized to fit them.
func DrawPanel(f *facetgl.Frame, x, y int, lines []string, c facetgl.Color) {
	w := 0
	for _, l := range lines {
		w = max(w, TextWidth(l))
	}
	Shade(f, x, y, w+6, len(lines)*LineHeight+4)
	DrawLines(f, x+3, y+2, lines, c)
}
