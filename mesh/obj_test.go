package mesh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facet/facetgl"
)

func TestParseOBJFaceForms(t *testing.T) {
	src := `# comment
o sample
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1 2 3
f 1/1 3/1 4/1
f 1//1 2//1 4//1
f 1/1/1 -3/1/1 -1/1/1
`
	m, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "sample", m.Name)
	require.Len(t, m.Vertices, 4)
	assert.Equal(t, [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 1, 3}, {0, 1, 3}}, m.Faces)
}

func TestParseOBJFansPolygons(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0.5 2 0\nv 0 1 0\nf 1 2 3 4 5\n"
	m, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}}, m.Faces)
}

func TestParseOBJSyntaxErrors(t *testing.T) {
	for _, src := range []string{
		"v 1 2\n",
		"v 1 2 x\n",
		"v 0 0 0\nv 1 0 0\nf 1 2\n",
		"v 0 0 0\nf 1 a 1\n",
	} {
		_, err := ParseOBJ(strings.NewReader(src))
		assert.ErrorIs(t, err, ErrSyntax, src)
	}
}

func TestFaceIndexOutOfRangeAbortsConstruction(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\nf 1 2 7\n"
	m, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)

	tris, err := m.Triangles()
	require.ErrorIs(t, err, ErrFaceIndex)
	assert.Nil(t, tris)

	_, err = ParseOBJ(strings.NewReader("v 0 0 0\nf 0 1 1\n"))
	require.ErrorIs(t, err, ErrFaceIndex)

	m, err = ParseOBJ(strings.NewReader("v 0 0 0\nf -1 -2 -1\n"))
	require.NoError(t, err)
	_, err = m.Triangles()
	require.ErrorIs(t, err, ErrFaceIndex)
}

func TestWriteOBJRoundTrip(t *testing.T) {
	want := Torus(1, 0.25, 8, 6)

	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, want))

	got, err := ParseOBJ(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNormalize(t *testing.T) {
	m := &Mesh{Vertices: []facetgl.Vec3{facetgl.V3(10, 10, 10), facetgl.V3(14, 11, 12)}}
	m.Normalize()
	lo, hi := m.Bounds()
	assert.Equal(t, facetgl.V3(-1, -0.25, -0.5), lo)
	assert.Equal(t, facetgl.V3(1, 0.25, 0.5), hi)
}
