package mesh

import "facet/facetgl"

// DefaultPalette is used when no palette is configured.
var DefaultPalette = []facetgl.Color{
	facetgl.RGB(0xE6, 0x39, 0x46),
	facetgl.RGB(0xF1, 0xFA, 0xEE),
	facetgl.RGB(0xA8, 0xDA, 0xDC),
	facetgl.RGB(0x45, 0x7B, 0x9D),
	facetgl.RGB(0xFF, 0x99, 0x33),
	facetgl.RGB(0x2A, 0x9D, 0x8F),
}

// Colorize gives face i the color palette[i%len(palette)].
func Colorize(tris []facetgl.Triangle, palette []facetgl.Color) []facetgl.ColoredTriangle {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	out := make([]facetgl.ColoredTriangle, len(tris))
	for i, t := range tris {
		out[i] = facetgl.ColoredTriangle{Tri: t, Color: palette[i%len(palette)]}
	}
	return out
}
