package facetgl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelTransformedDoesNotMutateSource(t *testing.T) {
	src := []ColoredTriangle{scenarioTriangle(red), scenarioTriangle(blue)}
	m := NewModel(src, Transform{Position: V3(0, 0, -4)})
	src[0].Color = green // the model keeps its own copy

	before := m.Source()
	var out []ColoredTriangle
	for i := 0; i < 50; i++ {
		m.Rotate(0.1, 0.05)
		out = m.Transformed(out)
	}
	require.Equal(t, before, m.Source())
	require.Len(t, out, 2)
	assert.Equal(t, red, out[0].Color)
}

func TestModelTransformedMatchesApply(t *testing.T) {
	m := NewModel([]ColoredTriangle{scenarioTriangle(red)}, Transform{
		Position:  V3(1, 2, -5),
		Direction: V3(0.3, -0.2, 99),
	})
	got := m.Transformed(nil)[0].Tri
	src := m.Source()[0].Tri

	assert.Equal(t, m.Transform.Apply(src.A), got.A)
	assert.Equal(t, m.Transform.Apply(src.B), got.B)
	assert.Equal(t, m.Transform.Apply(src.C), got.C)
}

func TestModelIdentityTransformOnlyTranslates(t *testing.T) {
	m := NewModel([]ColoredTriangle{scenarioTriangle(red)}, Transform{Position: V3(0, 0, -3)})
	got := m.Transformed(nil)[0].Tri
	assert.Equal(t, V3(-0.5, -0.5, -5), got.A)
	assert.Equal(t, V3(0, 0.5, -5), got.C)
}

func TestModelFullTurnReturnsToStart(t *testing.T) {
	m := NewModel([]ColoredTriangle{scenarioTriangle(red)}, Transform{Position: V3(0, 0, -3)})
	start := m.Transformed(nil)[0].Tri

	// 2π in 1000 increments; the result is re-derived, not accumulated.
	for i := 0; i < 1000; i++ {
		m.Rotate(2*3.14159265/1000, 0)
	}
	end := m.Transformed(nil)[0].Tri
	assert.InDelta(t, start.A.X, end.A.X, 1e-3)
	assert.InDelta(t, start.A.Z, end.A.Z, 1e-3)
}

func TestModelTransformedReusesBuffer(t *testing.T) {
	m := NewModel([]ColoredTriangle{scenarioTriangle(red)}, Transform{})
	buf := make([]ColoredTriangle, 0, 4)
	out := m.Transformed(buf)
	assert.Equal(t, 4, cap(out))
}
