package facetgl

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBasisZeroIsIdentity(t *testing.T) {
	require.Equal(t, IdentityBasis, NewBasis(0, 0))

	for _, v := range []Vec3{{1, 2, 3}, {-0.5, 0.25, -8}, {0, 0, 0}, {1e6, -1e-6, 42}} {
		assert.Equal(t, v, Rotate(v, NewBasis(0, 0)))
	}
}

func TestNewBasisIsOrthonormal(t *testing.T) {
	for _, yp := range [][2]float32{{0.3, 0}, {0, 0.7}, {1.2, -0.4}, {-3, 2.5}, {10, 20}} {
		b := NewBasis(yp[0], yp[1])
		assert.InDelta(t, 1, Len(b.I), 1e-5)
		assert.InDelta(t, 1, Len(b.J), 1e-5)
		assert.InDelta(t, 1, Len(b.K), 1e-5)
		assert.InDelta(t, 0, Dot(b.I, b.J), 1e-5)
		assert.InDelta(t, 0, Dot(b.J, b.K), 1e-5)
		assert.InDelta(t, 0, Dot(b.K, b.I), 1e-5)

		// Right-handed: I x J = K.
		k := Cross(b.I, b.J)
		assert.InDelta(t, b.K.X, k.X, 1e-5)
		assert.InDelta(t, b.K.Y, k.Y, 1e-5)
		assert.InDelta(t, b.K.Z, k.Z, 1e-5)
	}
}

func TestNewBasisAppliesPitchThenYaw(t *testing.T) {
	yaw, pitch := float32(0.9), float32(-0.35)
	v := V3(0.2, -1.1, 0.6)

	got := Rotate(v, NewBasis(yaw, pitch))
	want := Rotate(Rotate(v, NewBasis(0, pitch)), NewBasis(yaw, 0))

	assert.InDelta(t, want.X, got.X, 1e-5)
	assert.InDelta(t, want.Y, got.Y, 1e-5)
	assert.InDelta(t, want.Z, got.Z, 1e-5)
}

func TestYawQuarterTurn(t *testing.T) {
	b := NewBasis(math32.Pi/2, 0)
	got := Rotate(V3(1, 0, 0), b)
	assert.InDelta(t, 0, got.X, 1e-6)
	assert.InDelta(t, 0, got.Y, 1e-6)
	assert.InDelta(t, 1, got.Z, 1e-6)

	// The vertical axis is unaffected by yaw.
	assert.Equal(t, V3(0, 1, 0), Rotate(V3(0, 1, 0), b))
}

func TestBasisIsPeriodic(t *testing.T) {
	a := NewBasis(0.4, 0.8)
	b := NewBasis(0.4+2*math32.Pi, 0.8-2*math32.Pi)
	assert.InDelta(t, a.I.X, b.I.X, 1e-5)
	assert.InDelta(t, a.J.Y, b.J.Y, 1e-5)
	assert.InDelta(t, a.K.Z, b.K.Z, 1e-5)
}
