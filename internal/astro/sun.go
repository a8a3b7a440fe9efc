package astro

import (
	"math"
	"time"
)

// SunPosition returns the apparent equatorial coordinates of the Sun at t,
// from the low-precision Astronomical Almanac series (about 0.01°).
func SunPosition(t time.Time) (raDeg, decDeg float64) {
	T := (julianDate(t) - 2451545.0) / 36525.0

	L0 := NormalizeRA(280.46646 + 36000.76983*T + 0.0003032*T*T)
	M := degToRad(NormalizeRA(357.52911 + 35999.05029*T - 0.0001537*T*T))

	// Equation of center
	C := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(M) +
		(0.019993-0.000101*T)*math.Sin(2*M) +
		0.000289*math.Sin(3*M)

	// Apparent longitude, corrected for aberration and nutation
	omega := degToRad(125.04 - 1934.136*T)
	lon := degToRad(L0 + C - 0.00569 - 0.00478*math.Sin(omega))

	eps0 := 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
	eps := degToRad(eps0 + 0.00256*math.Cos(omega))

	raDeg = NormalizeRA(radToDeg(math.Atan2(math.Cos(eps)*math.Sin(lon), math.Cos(lon))))
	decDeg = radToDeg(math.Asin(math.Sin(eps) * math.Sin(lon)))
	return raDeg, decDeg
}

// SunVector returns the Sun's direction at t as a unit vector.
func SunVector(t time.Time) Vec3 {
	return UnitVector(SunPosition(t))
}

// AngularSeparation returns the great-circle distance in degrees between two
// RA/Dec positions.
func AngularSeparation(ra1, dec1, ra2, dec2 float64) float64 {
	return radToDeg(AngleBetween(UnitVector(ra1, dec1), UnitVector(ra2, dec2)))
}
