package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/litescript/ls-skymap/internal/appearance"
	"github.com/litescript/ls-skymap/internal/skymap"
)

// MiniSkyConfig sizes the ASCII sky.
type MiniSkyConfig struct {
	Cols   int // inner width in characters
	Rows   int // inner height in lines
	Legend int // number of bright stars to label
}

// DefaultMiniSkyConfig returns a 60x20 sky with 9 labels.
func DefaultMiniSkyConfig() MiniSkyConfig {
	return MiniSkyConfig{Cols: 60, Rows: 20, Legend: 9}
}

// WriteMiniSky draws the frame into a character grid. Brighter stars
// overwrite fainter ones sharing a cell, and the brightest Legend stars are
// marked 1..9 and listed below the box.
func WriteMiniSky(w io.Writer, f skymap.Frame, cfg MiniSkyConfig) {
	if cfg.Cols < 2 || cfg.Rows < 2 {
		cfg = DefaultMiniSkyConfig()
	}
	if len(f.Plots) == 0 {
		fmt.Fprintln(w, "No stars in view")
		return
	}

	grid := make([][]rune, cfg.Rows)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", cfg.Cols))
	}

	// Faintest first so bright stars win shared cells.
	plots := Brightest(f, 0)
	for i := len(plots) - 1; i >= 0; i-- {
		x, y := cell(f, plots[i], cfg)
		grid[y][x] = appearance.Glyph(plots[i].Style.Size)
	}

	legend := cfg.Legend
	if legend > 9 {
		legend = 9
	}
	if legend > len(plots) {
		legend = len(plots)
	}
	for i := 0; i < legend; i++ {
		x, y := cell(f, plots[i], cfg)
		grid[y][x] = rune('1' + i)
	}

	fmt.Fprintf(w, "┌%s┐\n", strings.Repeat("─", cfg.Cols))
	for _, row := range grid {
		fmt.Fprintf(w, "│%s│\n", string(row))
	}
	fmt.Fprintf(w, "└%s┘\n", strings.Repeat("─", cfg.Cols))

	for i := 0; i < legend; i++ {
		s := plots[i].Star
		fmt.Fprintf(w, " %d %-16s mag %5.2f\n", i+1, truncateStr(s.Label(), 16), s.Mag)
	}
}

func cell(f skymap.Frame, p skymap.Plot, cfg MiniSkyConfig) (int, int) {
	x := int(p.Point.X / f.Viewport.Width * float64(cfg.Cols))
	y := int(p.Point.Y / f.Viewport.Height * float64(cfg.Rows))
	return min(max(x, 0), cfg.Cols-1), min(max(y, 0), cfg.Rows-1)
}
