package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skymap/internal/appearance"
	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/catalog"
	"github.com/litescript/ls-skymap/internal/export"
	"github.com/litescript/ls-skymap/internal/logging"
	"github.com/litescript/ls-skymap/internal/skymap"
	"github.com/litescript/ls-skymap/internal/state"
)

const (
	// Animation
	animDuration  = 400 * time.Millisecond
	animFrameRate = 30 * time.Millisecond

	glyphSun   = '☼'
	colorSun   = "#ffd75f"
	colorLabel = "#9a94c8"

	maxLabels = 12
)

// LabelMode controls which stars get name labels.
type LabelMode int

const (
	LabelNone   LabelMode = iota // No labels
	LabelBright                  // Brightest named stars
	LabelAll                     // Every named star in view
)

func (l LabelMode) String() string {
	switch l {
	case LabelBright:
		return "bright"
	case LabelAll:
		return "all"
	default:
		return "off"
	}
}

// SkyViewModel renders the projected star field and handles navigation.
type SkyViewModel struct {
	width  int
	height int
	top    int // terminal row of the first canvas row

	state    *state.Manager
	renderer *skymap.Renderer
	log      *logging.Logger

	labelMode LabelMode
	showSun   bool
	now       func() time.Time

	// Animation state. Ticks from an earlier animation carry an older
	// generation and are dropped.
	animating    bool
	animGen      int
	animStartRA  float64
	animStartDec float64
	animTargRA   float64
	animTargDec  float64
	animStart    time.Time

	// Goto prompt
	searching bool
	query     string
	status    string

	warnedDegenerate bool
}

// NewSkyViewModel creates a sky view over the renderer's catalog.
func NewSkyViewModel(mgr *state.Manager, r *skymap.Renderer, log *logging.Logger) SkyViewModel {
	return SkyViewModel{
		state:     mgr,
		renderer:  r,
		log:       log,
		labelMode: LabelBright,
		now:       time.Now,
	}
}

// SetSize updates the canvas size in cells.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// SetTop sets the terminal row where the canvas starts, for mouse mapping.
func (m SkyViewModel) SetTop(top int) SkyViewModel {
	m.top = top
	return m
}

// canvasSize returns the star canvas size in cells; two rows go to the
// header and status lines.
func (m SkyViewModel) canvasSize() (int, int) {
	return m.width, m.height - 2
}

// animTickMsg is sent during animation
type animTickMsg struct{ gen int }

func animTick(gen int) tea.Cmd {
	return tea.Tick(animFrameRate, func(time.Time) tea.Msg {
		return animTickMsg{gen: gen}
	})
}

// apply runs a view transition and logs when the new center is the one
// direction the orientation solver cannot handle.
func (m SkyViewModel) apply(f func(state.Config, state.View) state.View) SkyViewModel {
	v := m.state.Apply(f)
	degenerate := astro.Orient(v.CenterVector()).Degenerate()
	if degenerate && !m.warnedDegenerate {
		m.log.Debug("view center RA %.2f Dec %.2f is opposite the pole; using identity orientation",
			v.CenterRA, v.CenterDec)
	}
	m.warnedDegenerate = degenerate
	return m
}

// Update handles messages.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "w", "up":
			return m.pan(0, 1), nil
		case "s", "down":
			return m.pan(0, -1), nil
		case "a", "left":
			return m.pan(-1, 0), nil
		case "d", "right":
			return m.pan(1, 0), nil
		case "+", "=":
			return m.zoom(1), nil
		case "-", "_":
			return m.zoom(-1), nil
		case "c":
			return m.apply(func(c state.Config, v state.View) state.View { return c.CycleColorMode(v) }), nil
		case "]":
			return m.apply(func(c state.Config, v state.View) state.View { return c.AdjustMagLimit(v, 1) }), nil
		case "[":
			return m.apply(func(c state.Config, v state.View) state.View { return c.AdjustMagLimit(v, -1) }), nil
		case "l":
			m.labelMode = (m.labelMode + 1) % 3
		case "o":
			m.showSun = !m.showSun
		case "g", "/":
			m.searching = true
			m.query = ""
			m.status = ""
		case "b":
			return m.back()
		case "r":
			return m.apply(func(c state.Config, v state.View) state.View {
				return c.SetMagLimit(c.SetZoom(v, c.InitialZoom), c.MagLimit)
			}), nil
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			break
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m.zoom(1), nil
		case tea.MouseButtonWheelDown:
			return m.zoom(-1), nil
		case tea.MouseButtonRight:
			return m.recenterAt(msg.X, msg.Y)
		}

	case animTickMsg:
		if m.animating && msg.gen == m.animGen {
			return m.updateAnimation()
		}
	}

	return m, nil
}

func (m SkyViewModel) pan(dRA, dDec float64) SkyViewModel {
	m.animating = false
	return m.apply(func(c state.Config, v state.View) state.View { return c.Pan(v, dRA, dDec) })
}

func (m SkyViewModel) zoom(steps int) SkyViewModel {
	return m.apply(func(c state.Config, v state.View) state.View { return c.Zoom(v, steps) })
}

func (m SkyViewModel) updateSearch(msg tea.KeyMsg) (SkyViewModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.query = ""
	case tea.KeyEnter:
		m.searching = false
		return m.gotoStar(m.query)
	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.query += " "
	case tea.KeyRunes:
		m.query += string(msg.Runes)
	}
	return m, nil
}

// gotoStar animates the view toward a star given by name, or by catalog
// id as "123", "#123" or "HIP 123".
func (m SkyViewModel) gotoStar(query string) (SkyViewModel, tea.Cmd) {
	query = strings.TrimSpace(query)
	if query == "" {
		return m, nil
	}
	star, ok := m.findStar(query)
	if !ok {
		m.status = fmt.Sprintf("No star %q", query)
		return m, nil
	}

	from := m.state.View()
	dist := astro.AngularSeparation(from.CenterRA, from.CenterDec, star.RAdeg, star.DecDeg)
	m.status = fmt.Sprintf("Centering on %s (mag %.2f, %.1f° away)", star.Label(), star.Mag, dist)
	m.log.Debug("goto %s at RA %.3f Dec %.3f", star.Label(), star.RAdeg, star.DecDeg)
	return m.jumpTo(star.RAdeg, star.DecDeg)
}

func (m SkyViewModel) findStar(query string) (catalog.Star, bool) {
	cat := m.renderer.Catalog()
	idText := strings.TrimPrefix(query, "#")
	if len(idText) > 3 && strings.EqualFold(idText[:3], "hip") {
		idText = strings.TrimSpace(idText[3:])
	}
	if id, err := strconv.Atoi(idText); err == nil {
		return cat.ByID(id)
	}
	return cat.FindByName(query)
}

// recenterAt animates the view toward the sky under a terminal cell.
func (m SkyViewModel) recenterAt(col, row int) (SkyViewModel, tea.Cmd) {
	w, h := m.canvasSize()
	row -= m.top
	if col < 0 || row < 0 || col >= w || row >= h {
		return m, nil
	}

	vp := astro.Viewport{Width: float64(w) * cellW, Height: float64(h) * cellH}
	v, ok := skymap.ProjectorFor(m.state.View(), vp).Unproject(cellCenter(col, row))
	if !ok {
		m.status = "No sky is drawn there"
		return m, nil
	}
	ra, dec := astro.RADec(v)
	m.status = fmt.Sprintf("Centering on RA %.2f° Dec %+.2f°", ra, dec)
	return m.jumpTo(ra, dec)
}

// jumpTo records the current center for Back and animates to ra/dec. A
// running animation is settled first so history holds where it was going,
// not where it happened to be.
func (m SkyViewModel) jumpTo(ra, dec float64) (SkyViewModel, tea.Cmd) {
	from := m.state.View()
	if m.animating {
		m.animating = false
		m = m.setCenter(m.animTargRA, m.animTargDec)
	}
	m.state.Jump(ra, dec)
	return m.startAnimation(from.CenterRA, from.CenterDec, ra, dec)
}

// back returns to the center saved by the last goto.
func (m SkyViewModel) back() (SkyViewModel, tea.Cmd) {
	from := m.state.View()
	to, ok := m.state.Back()
	if !ok {
		m.status = "Nothing to go back to"
		return m, nil
	}
	m.status = ""
	return m.startAnimation(from.CenterRA, from.CenterDec, to.CenterRA, to.CenterDec)
}

func (m SkyViewModel) startAnimation(fromRA, fromDec, toRA, toDec float64) (SkyViewModel, tea.Cmd) {
	m.animating = true
	m.animGen++
	m.animStartRA = fromRA
	m.animStartDec = fromDec
	m.animTargRA = toRA
	m.animTargDec = toDec
	m.animStart = m.now()

	// Hold the view at the start until the first tick.
	m = m.setCenter(fromRA, fromDec)
	return m, animTick(m.animGen)
}

func (m SkyViewModel) updateAnimation() (SkyViewModel, tea.Cmd) {
	elapsed := m.now().Sub(m.animStart)
	t := float64(elapsed) / float64(animDuration)

	if t >= 1.0 {
		// Animation complete
		m.animating = false
		return m.setCenter(m.animTargRA, m.animTargDec), nil
	}

	// Ease-out cubic
	t = 1 - math.Pow(1-t, 3)

	// Interpolate RA with wrap-around handling
	m = m.setCenter(
		lerpAngle(m.animStartRA, m.animTargRA, t),
		lerp(m.animStartDec, m.animTargDec, t),
	)
	return m, animTick(m.animGen)
}

func (m SkyViewModel) setCenter(ra, dec float64) SkyViewModel {
	return m.apply(func(c state.Config, v state.View) state.View { return c.SetCenter(v, ra, dec) })
}

// Render draws the sky view. Overlays paint onto the canvas after the
// stars, so they sit on top.
func (m SkyViewModel) Render(overlays ...func(*canvas)) string {
	if m.width < 20 || m.height < 6 {
		return "Sky view requires larger terminal"
	}

	c := newCanvas(m.canvasSize())
	f := m.drawSky(c)
	for _, draw := range overlays {
		draw(c)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(f))
	b.WriteString("\n")
	b.WriteString(c.render())
	b.WriteString("\n")
	b.WriteString(m.renderStatus(f))
	return b.String()
}

// drawSky draws stars, labels and the sun marker onto c.
func (m SkyViewModel) drawSky(c *canvas) skymap.Frame {
	f := m.renderer.Frame(m.state.View(), c.viewport())

	// Faint stars first so bright ones win shared cells.
	plots := export.Brightest(f, 0)
	for i := len(plots) - 1; i >= 0; i-- {
		p := plots[i]
		x, y, ok := c.cellAt(p.Point)
		if !ok {
			continue
		}
		c.set(x, y, appearance.Glyph(p.Style.Size), starColor(p.Style))
	}

	m.drawLabels(c, plots)

	if m.showSun {
		if p, ok := f.Locate(astro.SunVector(m.now())); ok {
			if x, y, ok := c.cellAt(p); ok {
				c.set(x, y, glyphSun, colorSun)
			}
		}
	}
	return f
}

func starColor(s appearance.Style) lipgloss.Color {
	return lipgloss.Color(s.Color.Dim(0.5 + 0.5*s.Intensity).Hex())
}

// drawLabels writes star names to the right of their glyphs. Brighter
// stars claim cells first; a label that would overwrite another star or
// label is skipped.
func (m SkyViewModel) drawLabels(c *canvas, plots []skymap.Plot) {
	if m.labelMode == LabelNone {
		return
	}

	claimed := make(map[[2]int]bool)
	for _, p := range plots {
		if x, y, ok := c.cellAt(p.Point); ok {
			claimed[[2]int{x, y}] = true
		}
	}

	drawn := 0
	for _, p := range plots {
		if p.Star.Name == "" {
			continue
		}
		if m.labelMode == LabelBright && drawn >= maxLabels {
			break
		}
		x, y, ok := c.cellAt(p.Point)
		if !ok {
			continue
		}

		label := []rune(p.Star.Name)
		start := x + 2
		if start+len(label) > c.w {
			continue
		}
		free := true
		for i := range label {
			if claimed[[2]int{start + i, y}] {
				free = false
				break
			}
		}
		if !free {
			continue
		}

		c.text(start, y, p.Star.Name, colorLabel)
		for i := range label {
			claimed[[2]int{start + i, y}] = true
		}
		drawn++
	}
}

func (m SkyViewModel) renderHeader(f skymap.Frame) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135")) // violet
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))               // muted purple
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#d0c8ff"))       // soft purple

	v := f.View
	parts := []string{
		titleStyle.Render("Sky"),
		accentStyle.Render(fmt.Sprintf("RA %6.2f° Dec %+6.2f°", v.CenterRA, v.CenterDec)),
		dimStyle.Render(fmt.Sprintf("zoom %.0f", v.Zoom)),
		dimStyle.Render(fmt.Sprintf("mag ≤ %.1f", v.MagLimit)),
		accentStyle.Render("color: " + v.ColorMode.String()),
		dimStyle.Render("labels: " + m.labelMode.String()),
	}
	if n := m.state.HistoryLen(); n > 0 {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("back: %d", n)))
	}
	if f.Degenerate() {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27")).Render("anti-pole"))
	}
	return strings.Join(parts, dimStyle.Render(" | "))
}

func (m SkyViewModel) renderStatus(f skymap.Frame) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))

	if m.searching {
		return accentStyle.Render("Go to star: " + m.query + "▏")
	}
	if m.status != "" {
		return accentStyle.Render(m.status)
	}
	return dimStyle.Render(fmt.Sprintf("%d stars drawn, %d behind, %d off screen",
		len(f.Plots), f.Behind, f.Offscreen))
}

// normalizeAngle wraps angle to -180..+180 range
func normalizeAngle(a float64) float64 {
	for a > 180 {
		a -= 360
	}
	for a < -180 {
		a += 360
	}
	return a
}

// lerpAngle interpolates between angles, taking shortest path
func lerpAngle(a, b, t float64) float64 {
	diff := normalizeAngle(b - a)
	return a + diff*t
}

// lerp linear interpolation
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Searching reports whether the goto prompt has focus.
func (m SkyViewModel) Searching() bool {
	return m.searching
}

// Init returns nil cmd
func (m SkyViewModel) Init() tea.Cmd {
	return nil
}
