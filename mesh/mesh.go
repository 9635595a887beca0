// Package mesh reads, generates and colors triangle meshes for facet.
package mesh

import (
	"errors"
	"fmt"

	"facet/facetgl"
)

// ErrFaceIndex reports a face that refers to a vertex that does not exist.
var ErrFaceIndex = errors.New("mesh: face index out of range")

// Mesh is an indexed triangle list. Face indices are 0-based.
type Mesh struct {
	Name     string
	Vertices []facetgl.Vec3
	Faces    [][3]int
}

// Triangles resolves every face to its three vertex positions.
//
// A face that refers to a missing vertex aborts construction: no default
// vertex is ever substituted.
func (m *Mesh) Triangles() ([]facetgl.Triangle, error) {
	out := make([]facetgl.Triangle, 0, len(m.Faces))
	for i, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(m.Vertices) {
				return nil, fmt.Errorf("%w: face %d refers to vertex %d of %d", ErrFaceIndex, i, idx, len(m.Vertices))
			}
		}
		out = append(out, facetgl.Triangle{
			A: m.Vertices[f[0]],
			B: m.Vertices[f[1]],
			C: m.Vertices[f[2]],
		})
	}
	return out, nil
}

// Bounds returns the axis-aligned box around all vertices.
func (m *Mesh) Bounds() (lo, hi facetgl.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lo = facetgl.V3(min(lo.X, v.X), min(lo.Y, v.Y), min(lo.Z, v.Z))
		hi = facetgl.V3(max(hi.X, v.X), max(hi.Y, v.Y), max(hi.Z, v.Z))
	}
	return lo, hi
}

// Normalize centers the mesh on the origin and scales it so that its largest
// extent is 2 (it fits in [-1, 1] on every axis).
func (m *Mesh) Normalize() {
	lo, hi := m.Bounds()
	center := lo.Add(hi).Mul(0.5)
	ext := max(hi.X-lo.X, hi.Y-lo.Y, hi.Z-lo.Z)
	s := float32(1)
	if ext > 0 {
		s = 2 / ext
	}
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Sub(center).Mul(s)
	}
}
