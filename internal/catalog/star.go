// Package catalog holds the star catalog: star records with precomputed
// unit-sphere positions, the CSV loader, and a built-in bright star list.
package catalog

import (
	"fmt"

	"github.com/litescript/ls-skymap/internal/astro"
)

// Optional is a measurement that may be missing from the catalog.
// The zero value is absent.
type Optional struct {
	Value float64
	Valid bool
}

// Some returns a present Optional.
func Some(v float64) Optional {
	return Optional{Value: v, Valid: true}
}

// None returns an absent Optional.
func None() Optional {
	return Optional{}
}

func (o Optional) String() string {
	if !o.Valid {
		return "-"
	}
	return fmt.Sprintf("%.2f", o.Value)
}

// Star is one catalog entry.
type Star struct {
	ID     int      // catalog identifier (HIP number for Hipparcos data)
	Name   string   // display name, may be empty
	RAdeg  float64  // Right Ascension in degrees (J2000)
	DecDeg float64  // Declination in degrees (J2000)
	Mag    float64  // apparent visual magnitude (lower = brighter)
	BV     Optional // B-V color index
	TempK  Optional // effective temperature in Kelvin

	v astro.Vec3
}

// NewStar builds a star and computes its unit vector from RA/Dec.
func NewStar(id int, raDeg, decDeg, mag float64) Star {
	return Star{
		ID:     id,
		RAdeg:  raDeg,
		DecDeg: decDeg,
		Mag:    mag,
		v:      astro.UnitVector(raDeg, decDeg),
	}
}

// WithName returns a copy of s carrying name.
func (s Star) WithName(name string) Star {
	s.Name = name
	return s
}

// WithBV returns a copy of s carrying a B-V index.
func (s Star) WithBV(bv float64) Star {
	s.BV = Some(bv)
	return s
}

// WithTemperature returns a copy of s carrying a temperature in Kelvin.
func (s Star) WithTemperature(k float64) Star {
	s.TempK = Some(k)
	return s
}

// Vector returns the star's position on the unit sphere.
func (s Star) Vector() astro.Vec3 {
	return s.v
}

// Label returns the name, or "#<id>" for unnamed stars. The id is whatever
// the catalog file numbered the star with, so no catalog prefix is implied.
func (s Star) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("#%d", s.ID)
}
