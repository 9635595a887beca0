package facetgl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameLayout(t *testing.T) {
	f := NewFrame(5, 3)
	require.Len(t, f.Pix, 5*3*4)

	f.SetPixel(2, 1, RGBA(1, 2, 3, 4))
	off := (1*5 + 2) * 4
	assert.Equal(t, []byte{1, 2, 3, 4}, f.Pix[off:off+4])
	assert.Equal(t, RGBA(1, 2, 3, 4), f.At(2, 1))

	img := f.Image()
	r, g, b, a := img.At(2, 1).RGBA()
	assert.Equal(t, []uint32{0x0101, 0x0202, 0x0303, 0x0404}, []uint32{r, g, b, a})
}

func TestFrameClipsWrites(t *testing.T) {
	f := NewFrame(4, 4)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
		f.SetPixel(p[0], p[1], red)
	}
	assert.Zero(t, f.Count(red))
	assert.Equal(t, Color{}, f.At(9, 9))
}

func TestFrameClear(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 7}, {64, 33}} {
		f := NewFrame(size[0], size[1])
		f.Clear(bg)
		assert.Equal(t, size[0]*size[1], f.Count(bg))
	}
	NewFrame(0, 0).Clear(bg)
}

func TestFrameDigestTracksContent(t *testing.T) {
	a, b := NewFrame(8, 8), NewFrame(8, 8)
	require.Equal(t, a.Digest(), b.Digest())
	b.SetPixel(7, 7, red)
	require.NotEqual(t, a.Digest(), b.Digest())
	a.CopyFrom(b)
	require.Equal(t, a.Digest(), b.Digest())
}
