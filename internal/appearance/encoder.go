package appearance

import (
	"fmt"
	"strings"

	"github.com/litescript/ls-skymap/internal/catalog"
)

// Mode selects the color policy.
type Mode int

const (
	// ModeAuto prefers temperature, then B-V, then magnitude.
	ModeAuto Mode = iota
	ModeMagnitude
	ModeTemperature
	ModeBV
)

var modeNames = map[Mode]string{
	ModeAuto:        "auto",
	ModeMagnitude:   "mag",
	ModeTemperature: "temp",
	ModeBV:          "bv",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// Next cycles through the modes in declaration order.
func (m Mode) Next() Mode {
	return (m + 1) % (ModeBV + 1)
}

// ParseMode parses a mode name as printed by String. A few long forms are
// accepted too.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "mag", "magnitude":
		return ModeMagnitude, nil
	case "temp", "temperature":
		return ModeTemperature, nil
	case "bv", "b-v":
		return ModeBV, nil
	default:
		return ModeAuto, fmt.Errorf("unknown color mode %q (want auto, mag, temp or bv)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Source names the datum a color was derived from.
type Source string

const (
	SourceMagnitude   Source = "mag"
	SourceTemperature Source = "temp"
	SourceBV          Source = "bv"
)

// Color picks a star's color under mode. Forced modes fall back to
// magnitude when the star lacks the datum.
func Color(s catalog.Star, mode Mode) (RGB, Source) {
	switch mode {
	case ModeAuto:
		if s.TempK.Valid {
			return ColorFromTemperature(s.TempK.Value), SourceTemperature
		}
		if s.BV.Valid {
			return ColorFromBV(s.BV.Value), SourceBV
		}
	case ModeTemperature:
		if s.TempK.Valid {
			return ColorFromTemperature(s.TempK.Value), SourceTemperature
		}
	case ModeBV:
		if s.BV.Valid {
			return ColorFromBV(s.BV.Value), SourceBV
		}
	}
	return ColorFromMagnitude(s.Mag), SourceMagnitude
}

// Style is the complete visual encoding of one star.
type Style struct {
	Size      float64 `json:"size"`
	Color     RGB     `json:"-"`
	Hex       string  `json:"color"`
	Source    Source  `json:"color_source"`
	Intensity float64 `json:"intensity"`
}

// Encoder turns stars into styles.
type Encoder struct {
	Mode  Mode
	Sizes SizeConfig
}

// NewEncoder returns an encoder with default sizing.
func NewEncoder(mode Mode) Encoder {
	return Encoder{Mode: mode, Sizes: DefaultSizeConfig()}
}

// Encode computes size, color and intensity for s at zoom.
func (e Encoder) Encode(s catalog.Star, zoom float64) Style {
	c, src := Color(s, e.Mode)
	return Style{
		Size:      e.Sizes.Size(s.Mag, zoom),
		Color:     c,
		Hex:       c.Hex(),
		Source:    src,
		Intensity: Intensity(s.Mag),
	}
}
