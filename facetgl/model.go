package facetgl

// Triangle is a face with exactly three vertices.
type Triangle struct {
	A, B, C Vec3
}

// Map returns the triangle with fn applied to every vertex.
func (t Triangle) Map(fn func(Vec3) Vec3) Triangle {
	return Triangle{A: fn(t.A), B: fn(t.B), C: fn(t.C)}
}

// ColoredTriangle is the drawable unit: one face, one flat color.
type ColoredTriangle struct {
	Tri   Triangle
	Color Color
}

// Transform is the rigid transform applied to every vertex of a model.
//
// Direction.X is yaw and Direction.Y is pitch, both in radians.
// Direction.Z is unused.
type Transform struct {
	Position  Vec3
	Direction Vec3
}

func (t Transform) Basis() Basis { return NewBasis(t.Direction.X, t.Direction.Y) }

// Apply rotates v by the transform's basis and then translates it.
func (t Transform) Apply(v Vec3) Vec3 {
	return Rotate(v, t.Basis()).Add(t.Position)
}

// Model is a flat list of colored triangles under one transform.
//
// The source triangles are never modified. Every frame derives a fresh
// transformed copy, so rotation never accumulates rounding error.
type Model struct {
	Transform Transform

	tris []ColoredTriangle
}

// NewModel copies tris into a new model.
func NewModel(tris []ColoredTriangle, tr Transform) *Model {
	src := make([]ColoredTriangle, len(tris))
	copy(src, tris)
	return &Model{Transform: tr, tris: src}
}

func (m *Model) Len() int { return len(m.tris) }

// Source returns a copy of the untransformed triangles.
func (m *Model) Source() []ColoredTriangle {
	out := make([]ColoredTriangle, len(m.tris))
	copy(out, m.tris)
	return out
}

// Transformed appends the camera-space triangles for the current transform
// to dst[:0] and returns the result.
func (m *Model) Transformed(dst []ColoredTriangle) []ColoredTriangle {
	dst = dst[:0]
	b := m.Transform.Basis()
	pos := m.Transform.Position
	apply := func(v Vec3) Vec3 { return Rotate(v, b).Add(pos) }
	for _, ct := range m.tris {
		dst = append(dst, ColoredTriangle{Tri: ct.Tri.Map(apply), Color: ct.Color})
	}
	return dst
}

// Rotate adds to the yaw and pitch accumulators.
func (m *Model) Rotate(dYaw, dPitch float32) {
	m.Transform.Direction.X += dYaw
	m.Transform.Direction.Y += dPitch
}
