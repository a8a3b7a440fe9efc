// Package astro provides the sky geometry behind the star map: unit-sphere
// vectors, the rotation that re-centers the celestial sphere on the view
// direction, and the stereographic projection onto the screen.
package astro

import (
	"math"
)

// Epsilon is the threshold below which a vector length is treated as zero.
// It decides when the orientation axis is degenerate and when Normalized
// gives up.
const Epsilon = 1e-9

// Pole is the fixed reference direction the view center is rotated onto.
var Pole = Vec3{X: 0, Y: 0, Z: 1}

// Vec3 represents a 3D vector. With unit length it is a point on the
// celestial sphere.
type Vec3 struct {
	X, Y, Z float64
}

// Dot returns the scalar product of v and u.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the right-handed cross product v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns a unit vector in the same direction.
// Vectors shorter than Epsilon have no direction; the zero vector is
// returned for them and callers must not feed such input to the projector.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n < Epsilon {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Rotate turns v by theta radians about the unit axis k using Rodrigues'
// formula:
//
//	v·cosθ + (k×v)·sinθ + k·(k·v)·(1−cosθ)
//
// k must be unit length; the result is undefined otherwise.
func (v Vec3) Rotate(k Vec3, theta float64) Vec3 {
	cosT := math.Cos(theta)
	sinT := math.Sin(theta)

	return v.Scale(cosT).
		Add(k.Cross(v).Scale(sinT)).
		Add(k.Scale(k.Dot(v) * (1 - cosT)))
}

// AngleBetween returns the angle in radians between two unit vectors.
func AngleBetween(a, b Vec3) float64 {
	return math.Acos(clamp(a.Dot(b), -1, 1))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
