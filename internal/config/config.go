// Package config loads the YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-skymap/internal/appearance"
	"github.com/litescript/ls-skymap/internal/state"
)

// Config is the complete runtime configuration. Command-line flags
// override whatever is loaded here.
type Config struct {
	Catalog      string `yaml:"catalog"`        // CSV path, empty for the built-in list
	ZeroBVAbsent bool   `yaml:"zero_bv_absent"` // treat B-V 0.0 as missing

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	Center    Center          `yaml:"center"`
	ColorMode appearance.Mode `yaml:"color_mode"`

	View  state.Config          `yaml:"view"`
	Sizes appearance.SizeConfig `yaml:"sizes"`

	Width   float64 `yaml:"width"` // headless canvas size in pixels
	Height  float64 `yaml:"height"`
	Workers int     `yaml:"workers"`
}

// Center is the initial view direction.
type Center struct {
	RA  float64 `yaml:"ra"`
	Dec float64 `yaml:"dec"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "info",
		ColorMode: appearance.ModeAuto,
		View:      state.DefaultConfig(),
		Sizes:     appearance.DefaultSizeConfig(),
		Width:     1200,
		Height:    800,
		Workers:   1,
	}
}

// Load reads path over DefaultConfig. Keys missing from the file keep their
// defaults; unknown keys are an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML from r over DefaultConfig and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges that would make the view unusable.
func (c Config) Validate() error {
	v := c.View
	for _, f := range []struct {
		name string
		val  float64
	}{
		{"center.ra", c.Center.RA},
		{"center.dec", c.Center.Dec},
		{"view.min_zoom", v.MinZoom},
		{"view.max_zoom", v.MaxZoom},
		{"view.initial_zoom", v.InitialZoom},
		{"view.zoom_in", v.ZoomIn},
		{"view.zoom_out", v.ZoomOut},
		{"view.pan_step", v.PanStep},
		{"view.mag_limit", v.MagLimit},
		{"view.mag_step", v.MagStep},
		{"view.min_mag_limit", v.MinMagLimit},
		{"view.max_mag_limit", v.MaxMagLimit},
		{"sizes.base_size", c.Sizes.BaseSize},
		{"sizes.min_size", c.Sizes.MinSize},
		{"sizes.ref_zoom", c.Sizes.RefZoom},
		{"width", c.Width},
		{"height", c.Height},
	} {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return fmt.Errorf("%s must be a finite number, got %g", f.name, f.val)
		}
	}

	switch {
	case v.MinZoom <= 0 || v.MaxZoom < v.MinZoom:
		return fmt.Errorf("invalid zoom range [%g, %g]", v.MinZoom, v.MaxZoom)
	case v.ZoomIn <= 1 || v.ZoomOut <= 0 || v.ZoomOut >= 1:
		return fmt.Errorf("invalid zoom factors in=%g out=%g", v.ZoomIn, v.ZoomOut)
	case v.MaxMagLimit < v.MinMagLimit:
		return fmt.Errorf("invalid magnitude range [%g, %g]", v.MinMagLimit, v.MaxMagLimit)
	case c.Sizes.MinSize < 0 || c.Sizes.BaseSize <= 0:
		return fmt.Errorf("invalid star sizes base=%g min=%g", c.Sizes.BaseSize, c.Sizes.MinSize)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid canvas %gx%g", c.Width, c.Height)
	case c.Workers < 0:
		return fmt.Errorf("invalid worker count %d", c.Workers)
	}
	return nil
}

// InitialView builds the starting view from the configuration.
func (c Config) InitialView() state.View {
	v := c.View.NewView(c.Center.RA, c.Center.Dec)
	v.ColorMode = c.ColorMode
	return v
}
