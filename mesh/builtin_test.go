package mesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facet/facetgl"
)

func TestBuiltinsFaceOutward(t *testing.T) {
	require.Equal(t, []string{"cube", "pyramid", "tetra", "torus"}, Builtins())

	for _, name := range Builtins() {
		t.Run(name, func(t *testing.T) {
			m, err := Load(BuiltinPrefix + name)
			require.NoError(t, err)
			assert.Equal(t, name, m.Name)

			tris, err := m.Triangles()
			require.NoError(t, err)
			require.NotEmpty(t, tris)

			for i, tri := range tris {
				n := facetgl.Cross(tri.B.Sub(tri.A), tri.C.Sub(tri.A))
				centroid := tri.A.Add(tri.B).Add(tri.C).Mul(1.0 / 3)
				out := centroid
				if name == "torus" {
					// Outward from the tube, not from the origin.
					ring := facetgl.V3(centroid.X, 0, centroid.Z)
					out = centroid.Sub(ring.Mul(1 / facetgl.Len(ring)))
				}
				require.Positive(t, facetgl.Dot(n, out), "face %d", i)
			}
		})
	}
}

func TestBuiltinUnknown(t *testing.T) {
	_, err := Load("builtin:teapot")
	require.ErrorIs(t, err, ErrUnknownBuiltin)
}

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tri.obj")
	require.NoError(t, os.WriteFile(p, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644))

	m, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "tri", m.Name)
	assert.Len(t, m.Faces, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.obj"))
	require.Error(t, err)
}

func TestColorizeCyclesPalette(t *testing.T) {
	m, err := Builtin("cube")
	require.NoError(t, err)
	tris, err := m.Triangles()
	require.NoError(t, err)

	pal := []facetgl.Color{facetgl.RGB(1, 0, 0), facetgl.RGB(0, 1, 0), facetgl.RGB(0, 0, 1)}
	cts := Colorize(tris, pal)
	require.Len(t, cts, 12)
	for i, ct := range cts {
		assert.Equal(t, pal[i%3], ct.Color)
		assert.Equal(t, tris[i], ct.Tri)
	}

	assert.Equal(t, DefaultPalette[0], Colorize(tris, nil)[0].Color)
}
