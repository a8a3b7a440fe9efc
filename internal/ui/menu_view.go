package ui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skymap/internal/menu"
)

// MenuModel is the info menu overlay. Mouse positions arrive in cells and
// are converted to virtual pixels before hit-testing.
type MenuModel struct {
	menu  menu.Menu
	state menu.State

	visible bool
	mouse   menu.Point
	last    time.Time

	// Row of the canvas top within the terminal.
	top int
}

// NewMenuModel creates a visible menu at rest.
func NewMenuModel() MenuModel {
	m := menu.New()
	return MenuModel{menu: m, state: m.NewState(), visible: true, mouse: menu.Point{X: -1, Y: -1}}
}

// SetTop records which terminal row the canvas starts on.
func (m MenuModel) SetTop(row int) MenuModel {
	m.top = row
	return m
}

// Toggle shows or hides the menu.
func (m MenuModel) Toggle() MenuModel {
	m.visible = !m.visible
	return m
}

// Visible reports whether the menu is drawn.
func (m MenuModel) Visible() bool {
	return m.visible
}

// toPixels converts a terminal cell to the virtual pixel at its center.
func (m MenuModel) toPixels(col, row int) menu.Point {
	p := cellCenter(col, row-m.top)
	return menu.Point{X: p.X, Y: p.Y}
}

// Covers reports whether a mouse event lands on the visible menu.
func (m MenuModel) Covers(mouse tea.MouseMsg) bool {
	return m.visible && m.menu.Bounds().Contains(m.toPixels(mouse.X, mouse.Y))
}

// Step advances the hover animation to now.
func (m MenuModel) Step(now time.Time) MenuModel {
	dt := 0.0
	if !m.last.IsZero() {
		dt = now.Sub(m.last).Seconds()
	}
	m.last = now
	mouse := m.mouse
	if !m.visible {
		mouse = menu.Point{X: -1, Y: -1}
	}
	m.state = m.menu.Step(m.state, mouse, dt)
	return m
}

// Update tracks the mouse. A click on an item selects it; the returned item
// index is -1 when nothing was clicked.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, int) {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok || !m.visible {
		return m, -1
	}

	m.mouse = m.toPixels(mouse.X, mouse.Y)
	if mouse.Action == tea.MouseActionPress && mouse.Button == tea.MouseButtonLeft {
		if s, hit := m.menu.Click(m.state, m.mouse); hit {
			m.state = s
			return m, s.Selected
		}
	}
	return m, -1
}

// Item returns menu item i.
func (m MenuModel) Item(i int) menu.Item {
	return m.menu.Items[i]
}

// Info returns the text of the selected item.
func (m MenuModel) Info() string {
	return m.menu.Info(m.state)
}

// Draw paints the boxes onto c, scaled by their hover state.
func (m MenuModel) Draw(c *canvas) {
	if !m.visible {
		return
	}
	for i, item := range m.menu.Items {
		box := m.menu.Box(i).Scaled(m.state.Scale(i))
		bg := lipgloss.Color(m.menu.Color(m.state, i).Hex())

		x0 := int(math.Round(box.X / cellW))
		y0 := int(math.Round(box.Y / cellH))
		x1 := int(math.Round((box.X + box.W) / cellW))
		y1 := int(math.Round((box.Y + box.H) / cellH))

		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				c.fill(x, y, bg)
			}
		}

		title := []rune(item.Title)
		if i == m.state.Selected {
			title = append([]rune("▸ "), title...)
		}
		tx := x0 + (x1-x0-len(title))/2
		ty := y0 + (y1-y0)/2
		for j, r := range title {
			if c.in(tx+j, ty) {
				c.cells[ty][tx+j].r = r
				c.cells[ty][tx+j].fg = lipgloss.Color("#ffffff")
			}
		}
	}
}
