// Package menu implements the info menu: three boxed items that grow when
// hovered and show an explanation when clicked.
//
// All coordinates are in screen pixels with Y growing downward. The hover
// animation is a pure transition, Step(state, mouse, dt), so it can be
// driven by any event loop and tested without one.
package menu

import (
	"math"

	"github.com/litescript/ls-skymap/internal/appearance"
)

// Point is a screen position.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Center returns the middle of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Scaled grows r about its center by s.
func (r Rect) Scaled(s float64) Rect {
	c := r.Center()
	w, h := r.W*s, r.H*s
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// Item is one menu entry.
type Item struct {
	Title string
	Info  string
	Color appearance.RGB
	Mode  appearance.Mode // color policy the item explains
}

// Items returns the standard entries.
func Items() []Item {
	return []Item{
		{
			Title: "Stellar magnitude",
			Info:  "Magnitude measures apparent brightness: low values are brighter stars, high values dimmer ones.",
			Color: appearance.RGB{R: 40, G: 80, B: 160},
			Mode:  appearance.ModeMagnitude,
		},
		{
			Title: "Temperature",
			Info:  "Surface temperature sets a star's color: hot stars look blue or white, cool stars yellow or red.",
			Color: appearance.RGB{R: 180, G: 100, B: 40},
			Mode:  appearance.ModeTemperature,
		},
		{
			Title: "B-V index",
			Info:  "The B-V index relates color to temperature: low B-V stars are blue, high B-V stars are red.",
			Color: appearance.RGB{R: 70, G: 150, B: 80},
			Mode:  appearance.ModeBV,
		},
	}
}

// Layout positions the item boxes in a vertical stack.
type Layout struct {
	Origin  Point   // top-left of the first box
	Width   float64 // box width
	Height  float64 // box height
	Spacing float64 // distance between box tops
}

// DefaultLayout returns the standard box geometry.
func DefaultLayout() Layout {
	return Layout{
		Origin:  Point{X: 20, Y: 20},
		Width:   280,
		Height:  48,
		Spacing: 70,
	}
}

// Animation constants.
const (
	HoverScale = 1.05     // scale a hovered box eases toward
	EaseRate   = 0.15     // fraction of the remaining distance covered per frame
	FrameTime  = 1.0 / 60 // seconds per reference frame
	HoverBlend = 0.25     // how far a hovered box's color moves toward white
)

// Menu is the static menu definition.
type Menu struct {
	Items  []Item
	Layout Layout
}

// New returns the standard menu.
func New() Menu {
	return Menu{Items: Items(), Layout: DefaultLayout()}
}

// Box returns the unscaled box of item i.
func (m Menu) Box(i int) Rect {
	l := m.Layout
	return Rect{
		X: l.Origin.X,
		Y: l.Origin.Y + float64(i)*l.Spacing,
		W: l.Width,
		H: l.Height,
	}
}

// Bounds returns the rectangle covering every box.
func (m Menu) Bounds() Rect {
	if len(m.Items) == 0 {
		return Rect{X: m.Layout.Origin.X, Y: m.Layout.Origin.Y}
	}
	last := m.Box(len(m.Items) - 1)
	return Rect{
		X: m.Layout.Origin.X,
		Y: m.Layout.Origin.Y,
		W: m.Layout.Width,
		H: last.Y + last.H - m.Layout.Origin.Y,
	}
}

// HitTest returns the item under p. Hit-testing uses the unscaled boxes so
// a growing box never steals hover from its neighbor.
func (m Menu) HitTest(p Point) (int, bool) {
	for i := range m.Items {
		if m.Box(i).Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// State is the mutable part of the menu.
type State struct {
	Scales   []float64 // current scale per item
	Hover    int       // hovered item, -1 for none
	Selected int       // last clicked item, -1 for none
}

// NewState returns the resting state.
func (m Menu) NewState() State {
	scales := make([]float64, len(m.Items))
	for i := range scales {
		scales[i] = 1
	}
	return State{Scales: scales, Hover: -1, Selected: -1}
}

// Step advances the hover animation by dt seconds with the mouse at mouse.
// Each box eases toward HoverScale while hovered and back to 1 otherwise,
// covering EaseRate of the remaining distance per FrameTime. s is not
// modified.
func (m Menu) Step(s State, mouse Point, dt float64) State {
	next := State{
		Scales:   make([]float64, len(m.Items)),
		Hover:    -1,
		Selected: s.Selected,
	}
	if i, ok := m.HitTest(mouse); ok {
		next.Hover = i
	}

	k := 0.0
	if dt > 0 {
		k = 1 - math.Pow(1-EaseRate, dt/FrameTime)
	}
	for i := range next.Scales {
		cur := 1.0
		if i < len(s.Scales) {
			cur = s.Scales[i]
		}
		target := 1.0
		if i == next.Hover {
			target = HoverScale
		}
		next.Scales[i] = cur + (target-cur)*k
	}
	return next
}

// Click selects the item under p. It reports false, leaving s unchanged,
// when p misses every box.
func (m Menu) Click(s State, p Point) (State, bool) {
	i, ok := m.HitTest(p)
	if !ok {
		return s, false
	}
	s.Selected = i
	return s, true
}

// Info returns the explanation for the selected item, or "" if none.
func (m Menu) Info(s State) string {
	if s.Selected < 0 || s.Selected >= len(m.Items) {
		return ""
	}
	return m.Items[s.Selected].Info
}

// Color returns the fill of item i: its base color, lifted toward white
// while hovered.
func (m Menu) Color(s State, i int) appearance.RGB {
	base := m.Items[i].Color
	if i == s.Hover {
		return base.Blend(appearance.White, HoverBlend)
	}
	return base
}

// Scale returns the current scale of item i.
func (s State) Scale(i int) float64 {
	if i < 0 || i >= len(s.Scales) {
		return 1
	}
	return s.Scales[i]
}
