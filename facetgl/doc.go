// Package facetgl provides the software triangle pipeline used by facet.
//
// facetgl turns colored triangles in camera space into an RGBA frame. It is
// deliberately small: flat-shaded triangles, one rigid transform per model and
// a depth buffer for visibility. There is no lighting, texturing, anti-aliasing
// or clipping.
//
// Pipeline (fixed):
//
//	Model → Transform (yaw/pitch basis + position) → Projection → Rasterization → Frame.
//
// Camera space has the camera at the origin looking down -Z. A triangle is
// drawn only when every vertex has z < 0; greater z is closer to the camera.
//
// Fill rule:
//
// A pixel is sampled at its center. A center lying exactly on an edge belongs
// to the triangle whose interior continues towards +X of that edge, or towards
// +Y (down the screen) when the edge is horizontal. Two triangles that share an
// edge therefore never both paint, and never both skip, a center on that edge.
package facetgl
