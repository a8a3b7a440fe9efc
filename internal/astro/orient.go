package astro

import "math"

// Rotation is an axis-angle rotation. The zero Angle means identity.
type Rotation struct {
	Axis  Vec3    // unit axis
	Angle float64 // radians

	degenerate bool
}

// Identity is the rotation that leaves every vector unchanged.
var Identity = Rotation{Axis: Pole}

// Orient returns the rotation that carries the unit view direction center
// onto Pole.
//
// When center is (anti)parallel to Pole the cross product vanishes and
// Identity is returned. That is exact for center == Pole but wrong for
// center == -Pole, where the view ends up looking away from the requested
// direction. Degenerate reports that case.
func Orient(center Vec3) Rotation {
	axis := center.Cross(Pole)
	if axis.Norm() < Epsilon {
		r := Identity
		r.degenerate = center.Dot(Pole) < 0
		return r
	}
	return Rotation{
		Axis:  axis.Normalized(),
		Angle: math.Acos(clamp(center.Dot(Pole), -1, 1)),
	}
}

// Apply rotates v.
func (r Rotation) Apply(v Vec3) Vec3 {
	if r.IsIdentity() {
		return v
	}
	return v.Rotate(r.Axis, r.Angle)
}

// Inverse returns the rotation undoing r.
func (r Rotation) Inverse() Rotation {
	r.Angle = -r.Angle
	return r
}

// IsIdentity reports whether r leaves vectors unchanged.
func (r Rotation) IsIdentity() bool {
	return r.Angle == 0
}

// Degenerate reports whether r came from a view center opposite Pole and
// fell back to Identity.
func (r Rotation) Degenerate() bool {
	return r.degenerate
}
