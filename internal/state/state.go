// Package state holds the sky view state and its transitions.
//
// View is a plain value and every transition on Config is a pure function,
// so the UI, the headless writers and the tests all share the same rules.
// Manager wraps a View for callers that share it across goroutines.
package state

import (
	"math"
	"sync"

	"github.com/litescript/ls-skymap/internal/appearance"
	"github.com/litescript/ls-skymap/internal/astro"
)

// View is what the renderer needs to draw one frame.
type View struct {
	CenterRA  float64         `json:"center_ra"`  // degrees, [0, 360)
	CenterDec float64         `json:"center_dec"` // degrees, [-90, 90]
	Zoom      float64         `json:"zoom"`       // pixels per unit of projected plane
	MagLimit  float64         `json:"mag_limit"`  // stars fainter than this are skipped
	ColorMode appearance.Mode `json:"color_mode"`
}

// CenterVector returns the view center on the unit sphere.
func (v View) CenterVector() astro.Vec3 {
	return astro.UnitVector(v.CenterRA, v.CenterDec)
}

// Config holds the limits and step sizes for view transitions.
type Config struct {
	MinZoom     float64 `yaml:"min_zoom"`
	MaxZoom     float64 `yaml:"max_zoom"`
	InitialZoom float64 `yaml:"initial_zoom"`
	ZoomIn      float64 `yaml:"zoom_in"`  // factor per zoom-in step
	ZoomOut     float64 `yaml:"zoom_out"` // factor per zoom-out step

	PanStep float64 `yaml:"pan_step"` // degrees per pan step

	MagLimit    float64 `yaml:"mag_limit"` // initial cutoff
	MagStep     float64 `yaml:"mag_step"`
	MinMagLimit float64 `yaml:"min_mag_limit"`
	MaxMagLimit float64 `yaml:"max_mag_limit"`

	HistoryLen int `yaml:"history_len"` // centers remembered for Back
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MinZoom:     50,
		MaxZoom:     2000,
		InitialZoom: 300,
		ZoomIn:      1.15,
		ZoomOut:     0.85,
		PanStep:     0.5,
		MagLimit:    9.0,
		MagStep:     0.5,
		MinMagLimit: -2,
		MaxMagLimit: 15,
		HistoryLen:  16,
	}
}

// NewView returns the initial view centered on ra/dec.
func (c Config) NewView(raDeg, decDeg float64) View {
	return View{
		CenterRA:  astro.NormalizeRA(raDeg),
		CenterDec: astro.ClampDec(decDeg),
		Zoom:      c.clampZoom(c.InitialZoom),
		MagLimit:  c.clampMag(c.MagLimit),
		ColorMode: appearance.ModeAuto,
	}
}

// Pan moves the center by the given number of steps. Positive dRA moves
// east (increasing RA), positive dDec moves north. RA wraps, Dec clamps.
func (c Config) Pan(v View, dRA, dDec float64) View {
	v.CenterRA = astro.NormalizeRA(v.CenterRA + dRA*c.PanStep)
	v.CenterDec = astro.ClampDec(v.CenterDec + dDec*c.PanStep)
	return v
}

// SetCenter points the view at ra/dec.
func (c Config) SetCenter(v View, raDeg, decDeg float64) View {
	v.CenterRA = astro.NormalizeRA(raDeg)
	v.CenterDec = astro.ClampDec(decDeg)
	return v
}

// Zoom applies one zoom step: in when steps > 0, out when steps < 0.
// Mouse wheels deliver several steps at once.
func (c Config) Zoom(v View, steps int) View {
	for ; steps > 0; steps-- {
		v.Zoom *= c.ZoomIn
	}
	for ; steps < 0; steps++ {
		v.Zoom *= c.ZoomOut
	}
	v.Zoom = c.clampZoom(v.Zoom)
	return v
}

// SetZoom sets the zoom, clamped to [MinZoom, MaxZoom].
func (c Config) SetZoom(v View, zoom float64) View {
	v.Zoom = c.clampZoom(zoom)
	return v
}

// AdjustMagLimit moves the magnitude cutoff by steps of MagStep.
func (c Config) AdjustMagLimit(v View, steps int) View {
	v.MagLimit = c.clampMag(v.MagLimit + float64(steps)*c.MagStep)
	return v
}

// SetMagLimit sets the magnitude cutoff.
func (c Config) SetMagLimit(v View, limit float64) View {
	v.MagLimit = c.clampMag(limit)
	return v
}

// CycleColorMode advances to the next color policy.
func (c Config) CycleColorMode(v View) View {
	v.ColorMode = v.ColorMode.Next()
	return v
}

// SetColorMode selects a color policy.
func (c Config) SetColorMode(v View, mode appearance.Mode) View {
	v.ColorMode = mode
	return v
}

func (c Config) clampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return c.InitialZoom
	}
	return math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

func (c Config) clampMag(m float64) float64 {
	return math.Max(c.MinMagLimit, math.Min(c.MaxMagLimit, m))
}

// Manager handles the shared view with thread-safe access.
type Manager struct {
	mu  sync.RWMutex
	cfg Config

	view View

	// Recently left centers (ring buffer), newest at writeAt-1.
	history []View
	writeAt int
	count   int
}

// NewManager creates a manager starting at view.
func NewManager(cfg Config, view View) *Manager {
	n := cfg.HistoryLen
	if n <= 0 {
		n = DefaultConfig().HistoryLen
	}
	return &Manager{
		cfg:     cfg,
		view:    view,
		history: make([]View, n),
	}
}

// Config returns the transition limits.
func (m *Manager) Config() Config {
	return m.cfg
}

// View returns the current view.
func (m *Manager) View() View {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.view
}

// Apply replaces the view with f(current) and returns the result.
func (m *Manager) Apply(f func(Config, View) View) View {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view = f(m.cfg, m.view)
	return m.view
}

// Jump recenters the view on ra/dec and remembers the previous center so
// Back can return to it.
func (m *Manager) Jump(raDeg, decDeg float64) View {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history[m.writeAt] = m.view
	m.writeAt = (m.writeAt + 1) % len(m.history)
	if m.count < len(m.history) {
		m.count++
	}

	m.view = m.cfg.SetCenter(m.view, raDeg, decDeg)
	return m.view
}

// Back restores the center saved by the most recent Jump. Zoom, cutoff and
// color mode are left as they are. It reports false when there is no
// history.
func (m *Manager) Back() (View, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.count == 0 {
		return m.view, false
	}
	m.writeAt = (m.writeAt - 1 + len(m.history)) % len(m.history)
	m.count--

	prev := m.history[m.writeAt]
	m.view = m.cfg.SetCenter(m.view, prev.CenterRA, prev.CenterDec)
	return m.view, true
}

// HistoryLen returns how many Back steps are available.
func (m *Manager) HistoryLen() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.count
}
