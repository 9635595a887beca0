package facetgl

import (
	"errors"
	"fmt"
)

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// RenderMode selects the rasterization mode.
type RenderMode uint8

const (
	RenderSolid RenderMode = iota
	RenderWireframe
)

var ErrRenderMode = errors.New("facetgl: unknown render mode")

func (m RenderMode) String() string {
	switch m {
	case RenderWireframe:
		return "wireframe"
	default:
		return "solid"
	}
}

func (m RenderMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *RenderMode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "solid", "":
		*m = RenderSolid
	case "wireframe":
		*m = RenderWireframe
	default:
		return fmt.Errorf("%w: %q", ErrRenderMode, b)
	}
	return nil
}
