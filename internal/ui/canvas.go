package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skymap/internal/astro"
)

// Terminal cells are drawn as blocks of virtual pixels so zoom values mean
// the same thing here as on a pixel display.
const (
	cellW = 8.0
	cellH = 16.0
)

const colorBackground = lipgloss.Color("#0b0b16")

type cell struct {
	r  rune
	fg lipgloss.Color
	bg lipgloss.Color
}

// canvas is a grid of styled cells.
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]cell, h)}
	for y := range c.cells {
		row := make([]cell, w)
		for x := range row {
			row[x] = cell{r: ' ', fg: colorBackground, bg: colorBackground}
		}
		c.cells[y] = row
	}
	return c
}

// viewport returns the canvas size in virtual pixels.
func (c *canvas) viewport() astro.Viewport {
	return astro.Viewport{Width: float64(c.w) * cellW, Height: float64(c.h) * cellH}
}

// cellCenter returns the virtual pixel at the middle of a cell.
func cellCenter(col, row int) astro.ScreenPoint {
	return astro.ScreenPoint{
		X: (float64(col) + 0.5) * cellW,
		Y: (float64(row) + 0.5) * cellH,
	}
}

// cellAt maps a virtual pixel to its cell.
func (c *canvas) cellAt(p astro.ScreenPoint) (int, int, bool) {
	x := int(p.X / cellW)
	y := int(p.Y / cellH)
	// The right and bottom edges belong to the last cell.
	x = min(x, c.w-1)
	y = min(y, c.h-1)
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	return x, y, true
}

func (c *canvas) in(x, y int) bool {
	return x >= 0 && x < c.w && y >= 0 && y < c.h
}

func (c *canvas) set(x, y int, r rune, fg lipgloss.Color) {
	if !c.in(x, y) {
		return
	}
	c.cells[y][x].r = r
	c.cells[y][x].fg = fg
}

func (c *canvas) fill(x, y int, bg lipgloss.Color) {
	if !c.in(x, y) {
		return
	}
	c.cells[y][x] = cell{r: ' ', fg: bg, bg: bg}
}

// text writes s starting at x, clipped to the canvas.
func (c *canvas) text(x, y int, s string, fg lipgloss.Color) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, fg)
	}
}

func (c *canvas) render() string {
	var b strings.Builder
	for y, row := range c.cells {
		for _, cl := range row {
			style := lipgloss.NewStyle().Foreground(cl.fg).Background(cl.bg)
			b.WriteString(style.Render(string(cl.r)))
		}
		if y < c.h-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
