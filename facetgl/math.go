package facetgl

import "github.com/chewxy/math32"

// Vec3 is a point or direction in 3D space.
type Vec3 struct {
	X, Y, Z float32
}

// Vec2 is a point in screen space.
type Vec2 struct {
	X, Y float32
}

func V3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3    { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3    { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func Dot(a, b Vec3) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func Cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func Len(v Vec3) float32 { return math32.Sqrt(Dot(v, v)) }

// Basis is an orthonormal frame. Rotating a vector expresses it in this frame.
type Basis struct {
	I, J, K Vec3
}

// IdentityBasis is the frame returned by NewBasis(0, 0).
var IdentityBasis = Basis{
	I: Vec3{1, 0, 0},
	J: Vec3{0, 1, 0},
	K: Vec3{0, 0, 1},
}

// NewBasis builds the frame for a yaw (about +Y) and pitch (about +X) pair.
//
// The pitch frame is expressed in the yaw frame, so the combined rotation
// applies pitch first and yaw second.
func NewBasis(yaw, pitch float32) Basis {
	sy, cy := math32.Sincos(yaw)
	yawed := Basis{
		I: Vec3{cy, 0, sy},
		J: Vec3{0, 1, 0},
		K: Vec3{-sy, 0, cy},
	}

	sp, cp := math32.Sincos(pitch)
	pitched := Basis{
		I: Vec3{1, 0, 0},
		J: Vec3{0, cp, -sp},
		K: Vec3{0, sp, cp},
	}

	return Basis{
		I: Rotate(pitched.I, yawed),
		J: Rotate(pitched.J, yawed),
		K: Rotate(pitched.K, yawed),
	}
}

// Rotate returns b.I*v.X + b.J*v.Y + b.K*v.Z.
func Rotate(v Vec3, b Basis) Vec3 {
	return b.I.Mul(v.X).Add(b.J.Mul(v.Y)).Add(b.K.Mul(v.Z))
}

func radians(deg float32) float32 { return deg * math32.Pi / 180 }
