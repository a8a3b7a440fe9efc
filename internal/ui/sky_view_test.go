package ui

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-skymap/internal/appearance"
	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/catalog"
	"github.com/litescript/ls-skymap/internal/logging"
	"github.com/litescript/ls-skymap/internal/skymap"
	"github.com/litescript/ls-skymap/internal/state"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0, 0},
		{180, 180},
		{-180, -180},
		{360, 0},
		{-360, 0},
		{350, -10},   // wraps to -10
		{370, 10},    // wraps to 10
		{-190, 170},  // wraps to 170
		{540, 180},   // multiple wraps
		{-540, -180}, // multiple wraps
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, normalizeAngle(tt.input), 0.001, "normalizeAngle(%v)", tt.input)
	}
}

func TestLerpAngle_ShortestPath(t *testing.T) {
	tests := []struct {
		from     float64
		to       float64
		t        float64
		expected float64
	}{
		{0, 90, 0.5, 45},
		{0, 180, 0.5, 90},

		// Wrap-around: 350 to 10 should go +20, not -340
		{350, 10, 0.5, 360},
		{350, 10, 0.0, 350},
		{350, 10, 1.0, 370},

		// Other direction: 10 to 350 should go -20
		{10, 350, 0.5, 0},
		{10, 350, 1.0, -10},
	}

	for _, tt := range tests {
		got := lerpAngle(tt.from, tt.to, tt.t)
		diff := math.Abs(normalizeAngle(got) - normalizeAngle(tt.expected))
		if diff > 180 {
			diff = 360 - diff
		}
		assert.Less(t, diff, 0.001, "lerpAngle(%v, %v, %v) = %v", tt.from, tt.to, tt.t, got)
	}
}

// fakeClock hands out a fixed time that tests advance by hand.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestSky(t *testing.T, cat *catalog.Catalog, ra, dec float64) (SkyViewModel, *state.Manager, *fakeClock) {
	t.Helper()
	cfg := state.DefaultConfig()
	mgr := state.NewManager(cfg, cfg.NewView(ra, dec))
	clock := &fakeClock{t: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}

	m := NewSkyViewModel(mgr, skymap.NewRenderer(cat), logging.Discard())
	m.now = clock.now
	return m.SetSize(100, 40), mgr, clock
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m SkyViewModel, s string) SkyViewModel {
	for _, r := range s {
		m, _ = m.Update(key(string(r)))
	}
	return m
}

func TestSkyView_Navigation(t *testing.T) {
	m, mgr, _ := newTestSky(t, catalog.New(), 10, 10)

	tests := []struct {
		key   string
		check func(v state.View)
	}{
		{"d", func(v state.View) { assert.Equal(t, 10.5, v.CenterRA) }},
		{"left", func(v state.View) { assert.Equal(t, 10.0, v.CenterRA) }},
		{"w", func(v state.View) { assert.Equal(t, 10.5, v.CenterDec) }},
		{"up", func(v state.View) { assert.Equal(t, 11.0, v.CenterDec) }},
		{"s", func(v state.View) { assert.Equal(t, 10.5, v.CenterDec) }},
		{"+", func(v state.View) { assert.InDelta(t, 345, v.Zoom, 1e-9) }},
		{"-", func(v state.View) { assert.InDelta(t, 345*0.85, v.Zoom, 1e-9) }},
		{"c", func(v state.View) { assert.Equal(t, appearance.ModeMagnitude, v.ColorMode) }},
		{"]", func(v state.View) { assert.Equal(t, 9.5, v.MagLimit) }},
		{"[", func(v state.View) { assert.Equal(t, 9.0, v.MagLimit) }},
	}

	for _, tt := range tests {
		m, _ = m.Update(key(tt.key))
		tt.check(mgr.View())
	}
}

func TestSkyView_MouseWheelZooms(t *testing.T) {
	m, mgr, _ := newTestSky(t, catalog.New(), 0, 0)

	m, _ = m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.InDelta(t, 345, mgr.View().Zoom, 1e-9)

	_, _ = m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.InDelta(t, 345*0.85, mgr.View().Zoom, 1e-9)
}

func TestSkyView_GotoAnimatesToStar(t *testing.T) {
	m, mgr, clock := newTestSky(t, catalog.BrightStars(), 0, 0)

	m, _ = m.Update(key("g"))
	require.True(t, m.Searching())
	m = typeText(m, "vega")
	m, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd, "animation starts")
	assert.False(t, m.Searching())
	assert.True(t, m.animating)
	assert.Equal(t, 0.0, mgr.View().CenterRA, "view holds at the start until the first tick")

	clock.t = clock.t.Add(animDuration / 2)
	m, cmd = m.Update(animTickMsg{gen: m.animGen})
	require.NotNil(t, cmd)
	mid := mgr.View()
	assert.Greater(t, mid.CenterDec, 0.0)
	assert.Less(t, mid.CenterDec, 38.784)

	clock.t = clock.t.Add(animDuration)
	m, cmd = m.Update(animTickMsg{gen: m.animGen})
	assert.Nil(t, cmd)
	assert.False(t, m.animating)
	assert.InDelta(t, 279.235, mgr.View().CenterRA, 1e-9)
	assert.InDelta(t, 38.784, mgr.View().CenterDec, 1e-9)
	assert.Contains(t, m.status, "Vega")
}

func TestSkyView_GotoTakesShortWayRound(t *testing.T) {
	m, mgr, clock := newTestSky(t, catalog.BrightStars(), 350, 38.784)

	m, _ = m.Update(key("g"))
	m = typeText(m, "Vega")
	m, _ = m.Update(key("enter"))

	clock.t = clock.t.Add(animDuration / 2)
	_, _ = m.Update(animTickMsg{gen: m.animGen})

	ra := mgr.View().CenterRA
	assert.True(t, ra < 350 && ra > 279.235, "RA %v moves west through 300s", ra)
}

func TestSkyView_GotoUnknownStar(t *testing.T) {
	m, mgr, _ := newTestSky(t, catalog.BrightStars(), 0, 0)

	m, _ = m.Update(key("/"))
	m = typeText(m, "Krypton")
	m, cmd := m.Update(key("enter"))

	assert.Nil(t, cmd)
	assert.Contains(t, m.status, "Krypton")
	assert.Equal(t, 0.0, mgr.View().CenterRA)
}

func TestSkyView_SearchEditing(t *testing.T) {
	m, _, _ := newTestSky(t, catalog.BrightStars(), 0, 0)

	m, _ = m.Update(key("g"))
	m = typeText(m, "Alpha")
	m, _ = m.Update(key(" "))
	m = typeText(m, "Cx")
	m, _ = m.Update(key("backspace"))
	assert.Equal(t, "Alpha C", m.query)

	m, _ = m.Update(key("d"))
	assert.Equal(t, "Alpha Cd", m.query, "keys go to the prompt while searching")

	m, _ = m.Update(key("esc"))
	assert.False(t, m.Searching())
	assert.Empty(t, m.query)
}

func TestSkyView_Back(t *testing.T) {
	m, mgr, clock := newTestSky(t, catalog.BrightStars(), 0, 0)

	m, _ = m.Update(key("b"))
	assert.Contains(t, m.status, "Nothing")

	m, _ = m.Update(key("g"))
	m = typeText(m, "Sirius")
	m, _ = m.Update(key("enter"))
	clock.t = clock.t.Add(2 * animDuration)
	m, _ = m.Update(animTickMsg{gen: m.animGen})
	require.InDelta(t, 101.287, mgr.View().CenterRA, 1e-9)

	m, _ = m.Update(key("b"))
	clock.t = clock.t.Add(2 * animDuration)
	_, _ = m.Update(animTickMsg{gen: m.animGen})
	assert.InDelta(t, 0, mgr.View().CenterRA, 1e-9)
	assert.InDelta(t, 0, mgr.View().CenterDec, 1e-9)
}

func TestSkyView_PanCancelsAnimation(t *testing.T) {
	m, _, _ := newTestSky(t, catalog.BrightStars(), 0, 0)

	m, _ = m.Update(key("g"))
	m = typeText(m, "Rigel")
	m, _ = m.Update(key("enter"))
	require.True(t, m.animating)

	m, _ = m.Update(key("a"))
	assert.False(t, m.animating)
}

func TestSkyView_DrawSky(t *testing.T) {
	cat := catalog.New(
		catalog.NewStar(1, 0, 0, 0.0).WithName("Middle"),
		catalog.NewStar(2, 180, 0, 0.0).WithName("Behind"),
	)
	m, _, _ := newTestSky(t, cat, 0, 0)

	c := newCanvas(100, 30)
	f := m.drawSky(c)

	require.Len(t, f.Plots, 1)
	assert.Equal(t, 1, f.Behind)
	assert.Equal(t, '✶', c.runeAt(50, 15))
	assert.Equal(t, 'M', c.runeAt(52, 15), "label two cells right of the star")

	out := c.render()
	assert.NotContains(t, out, "Behind")
}

func TestSkyView_LabelsOff(t *testing.T) {
	cat := catalog.New(catalog.NewStar(1, 0, 0, 0.0).WithName("Middle"))
	m, _, _ := newTestSky(t, cat, 0, 0)
	m, _ = m.Update(key("l"))
	assert.Equal(t, LabelAll, m.labelMode)
	m, _ = m.Update(key("l"))
	require.Equal(t, LabelNone, m.labelMode)

	c := newCanvas(100, 30)
	m.drawSky(c)
	assert.Equal(t, ' ', c.runeAt(52, 15))
}

func TestSkyView_SunMarker(t *testing.T) {
	m, _, clock := newTestSky(t, catalog.New(), 0, 0)
	m, _ = m.Update(key("o"))
	require.True(t, m.showSun)

	// Point the view at the sun; it then sits exactly at the center.
	ra, dec := astro.SunPosition(clock.t)
	m.state.Apply(func(c state.Config, v state.View) state.View { return c.SetCenter(v, ra, dec) })

	c := newCanvas(100, 30)
	m.drawSky(c)
	assert.Equal(t, glyphSun, c.runeAt(50, 15))
}

func TestSkyView_Render(t *testing.T) {
	m, _, _ := newTestSky(t, catalog.BrightStars(), 0, 0)

	out := m.Render()
	assert.Contains(t, out, "zoom 300")
	assert.Contains(t, out, "color: auto")
	assert.Contains(t, out, "stars drawn")

	small := m.SetSize(10, 3)
	assert.Equal(t, "Sky view requires larger terminal", small.Render())
}

func TestSkyView_RenderFlagsAntiPole(t *testing.T) {
	m, _, _ := newTestSky(t, catalog.New(), 0, -90)
	assert.True(t, strings.Contains(m.Render(), "anti-pole"))
}

func TestSkyView_GotoByID(t *testing.T) {
	m, _, _ := newTestSky(t, catalog.BrightStars(), 0, 0)

	for _, q := range []string{"4", "#4", "HIP 4", "hip4"} {
		got, cmd := m.gotoStar(q)
		require.NotNil(t, cmd, q)
		assert.Contains(t, got.status, "Vega", q)
	}

	got, cmd := m.gotoStar("#9999")
	assert.Nil(t, cmd)
	assert.Equal(t, `No star "#9999"`, got.status)
}

func TestSkyView_GotoReportsDistance(t *testing.T) {
	m, _, _ := newTestSky(t, catalog.BrightStars(), 0, 0)

	m, _ = m.gotoStar("Vega")
	sep := astro.AngularSeparation(0, 0, 279.235, 38.784)
	assert.Contains(t, m.status, fmt.Sprintf("%.1f° away", sep))
}

func TestSkyView_GotoDuringAnimation(t *testing.T) {
	m, mgr, clock := newTestSky(t, catalog.BrightStars(), 0, 0)

	m, _ = m.gotoStar("Vega")
	firstGen := m.animGen
	clock.t = clock.t.Add(animDuration / 2)
	m, _ = m.Update(animTickMsg{gen: m.animGen})
	mid := mgr.View()

	m, cmd := m.gotoStar("Sirius")
	require.NotNil(t, cmd)
	assert.Equal(t, 2, mgr.HistoryLen())
	assert.Equal(t, mid.CenterRA, m.animStartRA, "the new animation starts where the view was")
	assert.Equal(t, mid.CenterDec, m.animStartDec)

	// A tick still in flight from the first animation is dropped.
	_, cmd = m.Update(animTickMsg{gen: firstGen})
	assert.Nil(t, cmd)
	assert.Equal(t, mid.CenterRA, mgr.View().CenterRA)

	clock.t = clock.t.Add(2 * animDuration)
	m, _ = m.Update(animTickMsg{gen: m.animGen})
	require.InDelta(t, 101.287, mgr.View().CenterRA, 1e-9)

	// Back goes to where the first goto was heading, not the midpoint.
	m, _ = m.Update(key("b"))
	clock.t = clock.t.Add(2 * animDuration)
	_, _ = m.Update(animTickMsg{gen: m.animGen})
	assert.InDelta(t, 279.235, mgr.View().CenterRA, 1e-9)
	assert.InDelta(t, 38.784, mgr.View().CenterDec, 1e-9)
}

func TestSkyView_RightClickRecenters(t *testing.T) {
	m, mgr, clock := newTestSky(t, catalog.New(), 0, 0)

	// 100x40 terminal: the canvas is 100x38 cells.
	vp := astro.Viewport{Width: 100 * cellW, Height: 38 * cellH}
	v, ok := skymap.ProjectorFor(mgr.View(), vp).Unproject(cellCenter(0, 0))
	require.True(t, ok)
	wantRA, wantDec := astro.RADec(v)

	m, cmd := m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	require.NotNil(t, cmd)
	assert.Contains(t, m.status, "Centering on RA")

	clock.t = clock.t.Add(2 * animDuration)
	m, _ = m.Update(animTickMsg{gen: m.animGen})
	assert.InDelta(t, wantRA, mgr.View().CenterRA, 1e-9)
	assert.InDelta(t, wantDec, mgr.View().CenterDec, 1e-9)
	assert.Contains(t, m.Render(), "back: 1")
}

func TestSkyView_RightClickMisses(t *testing.T) {
	m, mgr, _ := newTestSky(t, catalog.New(), 0, 0)

	// The middle of the canvas unprojects onto the culled hemisphere.
	got, cmd := m.Update(tea.MouseMsg{X: 50, Y: 19, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	assert.Nil(t, cmd)
	assert.Equal(t, "No sky is drawn there", got.status)

	// Rows above the canvas belong to the header.
	got, cmd = m.SetTop(3).Update(tea.MouseMsg{X: 0, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	assert.Nil(t, cmd)
	assert.Empty(t, got.status)

	assert.Equal(t, 0, mgr.HistoryLen())
}

func TestSkyView_ResetZoomAndCutoff(t *testing.T) {
	m, mgr, _ := newTestSky(t, catalog.New(), 0, 0)

	m, _ = m.Update(key("+"))
	m, _ = m.Update(key("]"))
	require.NotEqual(t, 300.0, mgr.View().Zoom)
	require.NotEqual(t, 9.0, mgr.View().MagLimit)

	_, _ = m.Update(key("r"))
	assert.Equal(t, 300.0, mgr.View().Zoom)
	assert.Equal(t, 9.0, mgr.View().MagLimit)
}
