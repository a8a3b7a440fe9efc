package astro

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnitVector(t *testing.T) {
	tests := []struct {
		name    string
		ra, dec float64
		want    Vec3
	}{
		{"vernal equinox", 0, 0, Vec3{1, 0, 0}},
		{"RA 90", 90, 0, Vec3{0, 1, 0}},
		{"RA 180", 180, 0, Vec3{-1, 0, 0}},
		{"north pole", 0, 90, Vec3{0, 0, 1}},
		{"south pole", 250, -90, Vec3{0, 0, -1}},
		{"RA 90 Dec 45", 90, 45, Vec3{0, math.Sqrt2 / 2, math.Sqrt2 / 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnitVector(tt.ra, tt.dec)
			assertVecInDelta(t, tt.want, got, tol)
			assert.InDelta(t, 1.0, got.Norm(), tol)
		})
	}
}

func TestRADec_RoundTrip(t *testing.T) {
	for ra := 0.0; ra < 360; ra += 15 {
		for dec := -89.0; dec <= 89; dec += 11 {
			gotRA, gotDec := RADec(UnitVector(ra, dec))
			assert.InDelta(t, ra, gotRA, 1e-9)
			assert.InDelta(t, dec, gotDec, 1e-9)
		}
	}
}

func TestRADec_Zero(t *testing.T) {
	ra, dec := RADec(Vec3{})
	assert.Equal(t, 0.0, ra)
	assert.Equal(t, 0.0, dec)
}

func TestNormalizeRA(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{-0.5, 359.5},
		{725, 5},
		{-370, 350},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeRA(tt.in), 1e-9, "NormalizeRA(%v)", tt.in)
	}
}

func TestClampDec(t *testing.T) {
	assert.Equal(t, 90.0, ClampDec(95))
	assert.Equal(t, -90.0, ClampDec(-91))
	assert.Equal(t, 12.5, ClampDec(12.5))
}

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected float64
	}{
		{"J2000 epoch", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"Unix epoch", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 2440587.5},
		{"2024-01-01 00:00 UTC", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 2460310.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, julianDate(tt.time), 0.0001)
		})
	}
}

func TestGreenwichMeanSiderealTime(t *testing.T) {
	gmst := greenwichMeanSiderealTime(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))

	assert.InDelta(t, 280.46, gmst, 0.1)
	assert.GreaterOrEqual(t, gmst, 0.0)
	assert.Less(t, gmst, 360.0)
}

func TestLocalSiderealTime(t *testing.T) {
	testTime := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	gmst := greenwichMeanSiderealTime(testTime)

	assert.InDelta(t, gmst, localSiderealTime(testTime, 0), 0.001)
	assert.InDelta(t, math.Mod(gmst+90, 360), localSiderealTime(testTime, 90), 0.001)

	for lon := -180.0; lon <= 180; lon += 30 {
		lst := localSiderealTime(testTime, lon)
		assert.GreaterOrEqual(t, lst, 0.0)
		assert.Less(t, lst, 360.0)
	}
}

func TestZenith(t *testing.T) {
	observer := Observer{LatDeg: -35.4, LonDeg: 148.98} // Canberra
	testTime := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	z := Zenith(observer, testTime)

	assert.InDelta(t, observer.LatDeg, z.DecDeg, 1e-9)
	assert.InDelta(t, localSiderealTime(testTime, observer.LonDeg), z.RAdeg, 1e-9)
}
