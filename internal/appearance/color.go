// Package appearance maps star properties to how they are drawn: a size
// from magnitude and zoom, a brightness, and a color from one of three
// interchangeable policies.
package appearance

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

// Blend mixes c toward other by t in [0, 1] in RGB space.
func (c RGB) Blend(other RGB, t float64) RGB {
	return fromColorful(c.colorful().BlendRgb(other.colorful(), clamp(t, 0, 1)))
}

// Dim scales the color toward black by intensity in [0, 1].
func (c RGB) Dim(intensity float64) RGB {
	return Black.Blend(c, intensity)
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Magnitude palette.
var (
	White      = RGB{255, 255, 255}
	BlueWhite  = RGB{200, 200, 255}
	PaleYellow = RGB{255, 255, 200}
	PaleRed    = RGB{255, 180, 180}
	Black      = RGB{0, 0, 0}
)

// Spectral palette shared by the temperature and B-V policies, hottest first.
var (
	SpectralBlue   = RGB{170, 191, 255}
	SpectralWhite  = RGB{255, 250, 240}
	SpectralYellow = RGB{255, 230, 160}
	SpectralOrange = RGB{255, 180, 100}
	SpectralRed    = RGB{255, 120, 90}
)

// ColorFromMagnitude bands apparent magnitude into four tints:
// <= 2 white, <= 4 blue-white, <= 6 pale yellow, fainter pale red.
func ColorFromMagnitude(mag float64) RGB {
	switch {
	case mag <= 2.0:
		return White
	case mag <= 4.0:
		return BlueWhite
	case mag <= 6.0:
		return PaleYellow
	default:
		return PaleRed
	}
}

// Temperature range accepted by ColorFromTemperature, in Kelvin.
const (
	MinTemperature = 2500.0
	MaxTemperature = 40000.0
)

// normalizedTemp maps Kelvin onto [0, 1] over the accepted range.
func normalizedTemp(k float64) float64 {
	k = clamp(k, MinTemperature, MaxTemperature)
	return (k - MinTemperature) / (MaxTemperature - MinTemperature)
}

// Band edges on the normalized temperature scale.
var (
	tempBlue   = normalizedTemp(10000)
	tempWhite  = normalizedTemp(5500)
	tempYellow = normalizedTemp(4500)
	tempOrange = normalizedTemp(3500)
)

// ColorFromTemperature bands an effective temperature in Kelvin, clamped to
// [MinTemperature, MaxTemperature], from blue (hot) to red (cool).
func ColorFromTemperature(k float64) RGB {
	t := normalizedTemp(k)
	switch {
	case t >= tempBlue:
		return SpectralBlue
	case t >= tempWhite:
		return SpectralWhite
	case t >= tempYellow:
		return SpectralYellow
	case t >= tempOrange:
		return SpectralOrange
	default:
		return SpectralRed
	}
}

// ColorFromBV bands a B-V color index from blue (negative) to red (>= 1.5).
func ColorFromBV(bv float64) RGB {
	switch {
	case bv < 0.0:
		return SpectralBlue
	case bv < 0.5:
		return SpectralWhite
	case bv < 1.0:
		return SpectralYellow
	case bv < 1.5:
		return SpectralOrange
	default:
		return SpectralRed
	}
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
