package astro

import "math"

// DenomEpsilon bounds the stereographic divisor 1 − z away from zero so a
// star exactly at the projection point still maps to a finite coordinate.
const DenomEpsilon = 1e-6

// ScreenPoint is a position in screen space, Y growing downward.
type ScreenPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport is the visible screen rectangle [0, Width] × [0, Height].
type Viewport struct {
	Width  float64
	Height float64
}

// Center returns the middle of the viewport.
func (vp Viewport) Center() ScreenPoint {
	return ScreenPoint{X: vp.Width * 0.5, Y: vp.Height * 0.5}
}

// Contains reports whether p lies inside the viewport, edges included.
func (vp Viewport) Contains(p ScreenPoint) bool {
	return p.X >= 0 && p.X <= vp.Width && p.Y >= 0 && p.Y <= vp.Height
}

// Projector maps unit sky vectors to screen points for one frame.
// Build a new one whenever the view center, zoom or origin changes.
type Projector struct {
	Rotation Rotation
	Scale    float64     // pixels per unit of projected plane
	Origin   ScreenPoint // where the projection plane origin lands
}

// NewProjector orients the sphere on center and fixes scale and origin.
// center must be a unit vector.
func NewProjector(center Vec3, scale float64, origin ScreenPoint) Projector {
	return Projector{
		Rotation: Orient(center),
		Scale:    scale,
		Origin:   origin,
	}
}

// Project rotates v into the view frame and applies the stereographic
// divide. The bool is false when v lies on the far hemisphere (rotated
// z <= 0); the point is then meaningless and must not be drawn.
func (p Projector) Project(v Vec3) (ScreenPoint, bool) {
	r := p.Rotation.Apply(v)
	if r.Z <= 0 {
		return ScreenPoint{}, false
	}

	denom := math.Max(1-r.Z, DenomEpsilon)
	x := r.X / denom
	y := r.Y / denom

	return ScreenPoint{
		X: p.Origin.X + x*p.Scale,
		Y: p.Origin.Y - y*p.Scale, // screen Y grows downward
	}, true
}

// Unproject maps a screen point back to the sky direction that Project
// would place there. The bool mirrors Project's culling: it is false when
// the direction lies on the far hemisphere, which Project never draws.
func (p Projector) Unproject(pt ScreenPoint) (Vec3, bool) {
	x := (pt.X - p.Origin.X) / p.Scale
	y := (p.Origin.Y - pt.Y) / p.Scale

	// Inverse of x = r.X/(1-r.Z), y = r.Y/(1-r.Z) on the unit sphere.
	rho2 := x*x + y*y
	r := Vec3{X: 2 * x, Y: 2 * y, Z: rho2 - 1}.Scale(1 / (rho2 + 1))
	if r.Z <= 0 {
		return Vec3{}, false
	}
	return p.Rotation.Inverse().Apply(r), true
}

// Stereographic projects a single star vector for the view centered on
// center. Use a Projector when projecting many stars for the same frame.
func Stereographic(v, center Vec3, scale float64, origin ScreenPoint) (ScreenPoint, bool) {
	return NewProjector(center, scale, origin).Project(v)
}
