package mesh

import (
	"github.com/chewxy/math32"

	"facet/facetgl"
)

// Torus generates a torus around the Y axis with outward-facing triangles.
func Torus(major, minor float32, segU, segV int) *Mesh {
	if segU < 3 {
		segU = 3
	}
	if segV < 3 {
		segV = 3
	}

	m := &Mesh{
		Name:     "torus",
		Vertices: make([]facetgl.Vec3, 0, segU*segV),
		Faces:    make([][3]int, 0, segU*segV*2),
	}

	for u := 0; u < segU; u++ {
		theta := 2 * math32.Pi * float32(u) / float32(segU)
		st, ct := math32.Sincos(theta)
		for v := 0; v < segV; v++ {
			phi := 2 * math32.Pi * float32(v) / float32(segV)
			sp, cp := math32.Sincos(phi)

			r := major + minor*cp
			m.Vertices = append(m.Vertices, facetgl.V3(r*ct, minor*sp, r*st))
		}
	}

	idx := func(u, v int) int {
		return (u%segU)*segV + v%segV
	}
	for u := 0; u < segU; u++ {
		for v := 0; v < segV; v++ {
			i0 := idx(u, v)
			i1 := idx(u+1, v)
			i2 := idx(u+1, v+1)
			i3 := idx(u, v+1)

			m.Faces = append(m.Faces, [3]int{i0, i2, i1}, [3]int{i0, i3, i2})
		}
	}
	return m
}
