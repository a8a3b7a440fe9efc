package astro

import (
	"math"
	"time"
)

// SkyCoord is a direction on the sky in equatorial coordinates.
type SkyCoord struct {
	RAdeg  float64 // Right Ascension in degrees (0-360)
	DecDeg float64 // Declination in degrees (-90 to +90)
}

// Observer represents a ground-based observer location.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
	Name   string
}

// UnitVector converts RA/Dec in degrees to a point on the unit sphere:
//
//	x = cos(dec)·cos(ra), y = cos(dec)·sin(ra), z = sin(dec)
func UnitVector(raDeg, decDeg float64) Vec3 {
	ra := degToRad(raDeg)
	dec := degToRad(decDeg)
	cosDec := math.Cos(dec)
	return Vec3{
		X: cosDec * math.Cos(ra),
		Y: cosDec * math.Sin(ra),
		Z: math.Sin(dec),
	}
}

// RADec converts a direction vector back to RA/Dec in degrees.
// RA is normalized to [0, 360).
func RADec(v Vec3) (raDeg, decDeg float64) {
	u := v.Normalized()
	if u == (Vec3{}) {
		return 0, 0
	}
	decDeg = radToDeg(math.Asin(clamp(u.Z, -1, 1)))
	raDeg = NormalizeRA(radToDeg(math.Atan2(u.Y, u.X)))
	return raDeg, decDeg
}

// NormalizeRA wraps an angle in degrees into [0, 360).
func NormalizeRA(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// ClampDec limits a declination to [-90, 90].
func ClampDec(deg float64) float64 {
	return clamp(deg, -90, 90)
}

// Zenith returns the equatorial direction straight above the observer at t.
// The zenith has Dec equal to the latitude and RA equal to local sidereal
// time.
func Zenith(obs Observer, t time.Time) SkyCoord {
	return SkyCoord{
		RAdeg:  localSiderealTime(t, obs.LonDeg),
		DecDeg: obs.LatDeg,
	}
}

// localSiderealTime returns LST in degrees for a UTC time and east longitude.
func localSiderealTime(t time.Time, lonDeg float64) float64 {
	return NormalizeRA(greenwichMeanSiderealTime(t) + lonDeg)
}

// greenwichMeanSiderealTime returns GMST in degrees (IAU 1982).
func greenwichMeanSiderealTime(t time.Time) float64 {
	jd := julianDate(t)
	T := (jd - 2451545.0) / 36525.0

	gmst := 280.46061837 +
		360.98564736629*(jd-2451545.0) +
		0.000387933*T*T -
		T*T*T/38710000.0

	return NormalizeRA(gmst)
}

// julianDate calculates the Julian Date for a given time.
func julianDate(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	dayFrac := (float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3600e9) / 24.0

	// January/February count as months 13/14 of the previous year
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian correction
	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + B - 1524.5
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
