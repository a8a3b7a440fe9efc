package appearance

import "math"

// Size defaults, in screen pixels at the reference zoom.
const (
	DefaultBaseSize = 3.0
	DefaultMinSize  = 0.4
	DefaultRefZoom  = 300.0
)

// SizeConfig controls the magnitude-to-radius mapping.
type SizeConfig struct {
	BaseSize float64 `yaml:"base_size"` // radius of a magnitude 0 star
	MinSize  float64 `yaml:"min_size"`  // floor for faint stars
	RefZoom  float64 `yaml:"ref_zoom"`  // zoom at which sizes are unscaled
}

// DefaultSizeConfig returns the standard sizing.
func DefaultSizeConfig() SizeConfig {
	return SizeConfig{
		BaseSize: DefaultBaseSize,
		MinSize:  DefaultMinSize,
		RefZoom:  DefaultRefZoom,
	}
}

// Size returns the draw radius for a star of magnitude mag at zoom:
//
//	max(MinSize, BaseSize·10^(−0.2·mag)) · zoom/RefZoom
//
// Every star scales by the same factor, so relative sizes survive zooming.
func (c SizeConfig) Size(mag, zoom float64) float64 {
	size := math.Max(c.MinSize, c.BaseSize*math.Pow(10, -0.2*mag))
	if c.RefZoom > 0 {
		size *= zoom / c.RefZoom
	}
	return size
}

// Size applies DefaultSizeConfig.
func Size(mag, zoom float64) float64 {
	return DefaultSizeConfig().Size(mag, zoom)
}

// Intensity returns a brightness in [0.2, 1] following the flux ratio
// 10^(−0.4·mag). Stars brighter than magnitude 0 saturate at 1.
func Intensity(mag float64) float64 {
	return clamp(math.Pow(10, -0.4*mag), 0.2, 1.0)
}

// Glyph picks a terminal character for a star drawn with radius size.
func Glyph(size float64) rune {
	switch {
	case size >= 1.5:
		return '✶'
	case size >= 0.75:
		return '✸'
	case size >= 0.47:
		return '•'
	default:
		return '·'
	}
}
