package facetgl

import "math"

// DrawStats summarizes one Draw call.
type DrawStats struct {
	Triangles int // submitted
	Behind    int // rejected: a vertex has z >= 0
	Culled    int // rejected: projected area <= 0
	Drawn     int // rasterized
	Pixels    int // pixels written
}

func (s *DrawStats) Add(o DrawStats) {
	s.Triangles += o.Triangles
	s.Behind += o.Behind
	s.Culled += o.Culled
	s.Drawn += o.Drawn
	s.Pixels += o.Pixels
}

// Rasterizer is a fixed-pipeline triangle rasterizer with a depth buffer.
//
// Create it once per resolution and reuse it; the depth buffer is reset at
// the start of every Draw and is never shared between goroutines.
type Rasterizer struct {
	Mode RenderMode

	proj     Projector
	depthBuf []float32
}

// NewRasterizer creates a rasterizer for a w x h frame and a vertical field
// of view in degrees.
func NewRasterizer(w, h int, fov float32) *Rasterizer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Rasterizer{
		Mode:     RenderSolid,
		proj:     Projector{FOV: fov, Width: w, Height: h},
		depthBuf: make([]float32, w*h),
	}
}

func (r *Rasterizer) SetRenderMode(m RenderMode) { r.Mode = m }

func (r *Rasterizer) SetFOV(fov float32) { r.proj.FOV = fov }

func (r *Rasterizer) Projector() Projector { return r.proj }

// Depth returns the depth buffer value at (x, y) left by the last Draw.
func (r *Rasterizer) Depth(x, y int) float32 {
	if x < 0 || y < 0 || x >= r.proj.Width || y >= r.proj.Height {
		return -math.MaxFloat32
	}
	return r.depthBuf[y*r.proj.Width+x]
}

func (r *Rasterizer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = -math.MaxFloat32
	}
}

// Draw rasterizes tris into t and resolves visibility with a fresh depth
// buffer. Draw panics with ErrInvalidFOV before touching t if the field of
// view is not positive.
func (r *Rasterizer) Draw(t Target, tris []ColoredTriangle) DrawStats {
	var st DrawStats
	if r == nil || t == nil {
		return st
	}
	scale := r.proj.Scale()

	w, h := t.Size()
	w = min(w, r.proj.Width)
	h = min(h, r.proj.Height)

	if r.Mode == RenderSolid {
		r.clearDepth()
	}

	for i := range tris {
		st.Triangles++
		ct := &tris[i]
		if ct.Tri.A.Z >= 0 || ct.Tri.B.Z >= 0 || ct.Tri.C.Z >= 0 {
			st.Behind++
			continue
		}

		a := r.proj.project(ct.Tri.A, scale)
		b := r.proj.project(ct.Tri.B, scale)
		c := r.proj.project(ct.Tri.C, scale)

		area := orient(a.P, b.P, c.P)
		if !(area > 0) {
			st.Culled++
			continue
		}
		st.Drawn++

		switch r.Mode {
		case RenderWireframe:
			st.Pixels += drawLine(t, w, h, a.P, b.P, ct.Color)
			st.Pixels += drawLine(t, w, h, b.P, c.P, ct.Color)
			st.Pixels += drawLine(t, w, h, c.P, a.P, ct.Color)
		default:
			st.Pixels += r.fillTriangle(t, w, h, a, b, c, area, ct.Color)
		}
	}
	return st
}

func (r *Rasterizer) fillTriangle(t Target, w, h int, a, b, c Projected, area float32, col Color) int {
	minX, maxX := bounds(a.P.X, b.P.X, c.P.X, w)
	minY, maxY := bounds(a.P.Y, b.P.Y, c.P.Y, h)
	if minX > maxX || minY > maxY {
		return 0
	}

	e0 := newEdge(b.P, c.P)
	e1 := newEdge(c.P, a.P)
	e2 := newEdge(a.P, b.P)
	invArea := 1 / area

	written := 0
	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		row := y * r.proj.Width
		for x := minX; x <= maxX; x++ {
			p := Vec2{X: float32(x) + 0.5, Y: py}
			w0, ok0 := e0.eval(p)
			if !ok0 {
				continue
			}
			w1, ok1 := e1.eval(p)
			if !ok1 {
				continue
			}
			w2, ok2 := e2.eval(p)
			if !ok2 {
				continue
			}

			z := (w0*a.Z + w1*b.Z + w2*c.Z) * invArea
			idx := row + x
			if !(z > r.depthBuf[idx]) {
				continue
			}
			r.depthBuf[idx] = z
			t.SetPixel(x, y, col)
			written++
		}
	}
	return written
}

// orient is the signed area (doubled) of a, b, c. It is positive for the
// winding the rasterizer accepts.
func orient(a, b, c Vec2) float32 {
	return (c.X-a.X)*(b.Y-a.Y) - (c.Y-a.Y)*(b.X-a.X)
}

// edge evaluates orient(from, to, p) so that the shared edge of two
// neighbouring triangles yields exactly negated values in both.
type edge struct {
	p0, p1 Vec2 // canonical order
	flip   bool // true when p0, p1 is the reverse of from, to
	owns   bool // a sample exactly on the edge is inside (top-left rule)
}

func newEdge(from, to Vec2) edge {
	e := edge{p0: from, p1: to}
	if to.X < from.X || (to.X == from.X && to.Y < from.Y) {
		e.p0, e.p1, e.flip = to, from, true
	}
	// Partial derivatives of orient(from, to, p) with respect to p.
	dx := to.Y - from.Y
	dy := from.X - to.X
	e.owns = dx > 0 || (dx == 0 && dy > 0)
	return e
}

func (e edge) eval(p Vec2) (float32, bool) {
	v := orient(e.p0, e.p1, p)
	if e.flip {
		v = -v
	}
	if v > 0 {
		return v, true
	}
	if v == 0 {
		return 0, e.owns
	}
	return v, false
}

// bounds returns the inclusive pixel range whose centers may fall between
// the three coordinates, clamped to [0, limit).
func bounds(a, b, c float32, limit int) (int, int) {
	lo := min(a, b, c)
	hi := max(a, b, c)
	if !(hi >= 0) || !(lo < float32(limit)) {
		return 1, 0
	}
	lo = max(lo, 0)
	hi = min(hi, float32(limit-1))
	return int(lo), int(hi)
}

func drawLine(t Target, w, h int, from, to Vec2, c Color) int {
	// Far-off endpoints come from vertices almost on the camera plane.
	limit := float32(8 * (w + h + 1))
	if absF(from.X) > limit || absF(from.Y) > limit || absF(to.X) > limit || absF(to.Y) > limit {
		return 0
	}
	x0, y0 := int(math.Floor(float64(from.X))), int(math.Floor(float64(from.Y)))
	x1, y1 := int(math.Floor(float64(to.X))), int(math.Floor(float64(to.Y)))

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	n := 0
	err := dx + dy
	for {
		if x0 >= 0 && y0 >= 0 && x0 < w && y0 < h {
			t.SetPixel(x0, y0, c)
			n++
		}
		if x0 == x1 && y0 == y1 {
			return n
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func absF(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
