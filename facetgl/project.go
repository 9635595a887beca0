package facetgl

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrInvalidFOV is the panic value (wrapped) for a non-positive field of view.
var ErrInvalidFOV = errors.New("facetgl: field of view must be positive")

// Projected is a screen position plus the camera-space depth it came from.
type Projected struct {
	P Vec2
	Z float32
}

// Projector maps camera-space points onto a Width x Height screen.
//
// FOV is the vertical field of view in degrees.
type Projector struct {
	FOV    float32
	Width  int
	Height int
}

// Scale returns the pixels per world unit at distance 1.
//
// It panics if FOV <= 0: drawing with a degenerate scale is a programming
// error, not a condition to render around.
func (p Projector) Scale() float32 {
	if !(p.FOV > 0) {
		panic(fmt.Errorf("%w: %v", ErrInvalidFOV, p.FOV))
	}
	worldUnit := 2 * math32.Tan(radians(p.FOV)/2)
	return float32(p.Height) / worldUnit
}

// Project maps v to screen space. Only points with v.Z < 0 are meaningful;
// callers reject triangles with any other vertex before projecting.
func (p Projector) Project(v Vec3) Projected {
	return p.project(v, p.Scale())
}

func (p Projector) project(v Vec3, scale float32) Projected {
	if v.Z < 0 {
		// Dividing by a negative z also flips both screen axes.
		scale /= v.Z
	}
	return Projected{
		P: Vec2{
			X: float32(p.Width)/2 + v.X*scale,
			Y: float32(p.Height)/2 - v.Y*scale,
		},
		Z: v.Z,
	}
}
