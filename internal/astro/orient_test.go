package astro

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrient_MapsCenterOntoPole(t *testing.T) {
	for ra := 0.0; ra < 360; ra += 30 {
		for dec := -85.0; dec <= 85; dec += 17 {
			center := UnitVector(ra, dec)
			r := Orient(center)

			assert.InDelta(t, 1.0, r.Axis.Norm(), 1e-12, "axis must be unit length")
			assertVecInDelta(t, Pole, r.Apply(center), 1e-9)
		}
	}
}

func TestOrient_AxisAndAngle(t *testing.T) {
	// Looking along +X: axis = X × Z = -Y, angle = 90°
	r := Orient(Vec3{1, 0, 0})

	assertVecInDelta(t, Vec3{0, -1, 0}, r.Axis, tol)
	assert.InDelta(t, math.Pi/2, r.Angle, tol)
	assert.False(t, r.IsIdentity())
	assert.False(t, r.Degenerate())
}

func TestOrient_CenterAtPole(t *testing.T) {
	r := Orient(Pole)

	assert.True(t, r.IsIdentity())
	assert.False(t, r.Degenerate())

	v := UnitVector(123, 45)
	assert.Equal(t, v, r.Apply(v))
}

func TestOrient_NearPoleIsIdentity(t *testing.T) {
	// |center × pole| below Epsilon
	center := Vec3{1e-10, 0, 1}.Normalized()
	r := Orient(center)

	assert.True(t, r.IsIdentity())
}

func TestOrient_AntiPoleFallsBackToIdentity(t *testing.T) {
	r := Orient(Pole.Scale(-1))

	assert.True(t, r.IsIdentity())
	assert.True(t, r.Degenerate(), "anti-pole fallback must be flagged")

	// The anti-pole is not moved onto the pole: it stays behind the viewer.
	assert.InDelta(t, -1.0, r.Apply(Pole.Scale(-1)).Z, tol)
}

func TestRotation_Inverse(t *testing.T) {
	r := Orient(UnitVector(200, -30))
	v := UnitVector(17, 63)

	assertVecInDelta(t, v, r.Inverse().Apply(r.Apply(v)), 1e-12)
}
