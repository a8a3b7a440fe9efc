// Package export writes frames for headless use: a JSON snapshot, a text
// table of the brightest visible stars, and an ASCII mini sky.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/litescript/ls-skymap/internal/catalog"
	"github.com/litescript/ls-skymap/internal/skymap"
	"github.com/litescript/ls-skymap/internal/state"
)

// FrameExport is the JSON-serializable representation of a frame.
type FrameExport struct {
	Timestamp  time.Time    `json:"timestamp"`
	View       state.View   `json:"view"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Degenerate bool         `json:"degenerate,omitempty"`
	Considered int          `json:"considered"`
	Behind     int          `json:"behind"`
	Offscreen  int          `json:"offscreen"`
	Stars      []StarExport `json:"stars"`
}

// StarExport is a JSON-friendly plotted star.
type StarExport struct {
	ID          int      `json:"id"`
	Name        string   `json:"name,omitempty"`
	RA          float64  `json:"ra"`
	Dec         float64  `json:"dec"`
	Mag         float64  `json:"mag"`
	BV          *float64 `json:"bv,omitempty"`
	TempK       *float64 `json:"temp_k,omitempty"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Size        float64  `json:"size"`
	Color       string   `json:"color"`
	ColorSource string   `json:"color_source"`
	Intensity   float64  `json:"intensity"`
}

// ExportFrame converts a frame to an exportable form.
func ExportFrame(f skymap.Frame, at time.Time) *FrameExport {
	export := &FrameExport{
		Timestamp:  at,
		View:       f.View,
		Width:      f.Viewport.Width,
		Height:     f.Viewport.Height,
		Degenerate: f.Degenerate(),
		Considered: f.Considered,
		Behind:     f.Behind,
		Offscreen:  f.Offscreen,
		Stars:      make([]StarExport, 0, len(f.Plots)),
	}

	for _, p := range f.Plots {
		export.Stars = append(export.Stars, StarExport{
			ID:          p.Star.ID,
			Name:        p.Star.Name,
			RA:          p.Star.RAdeg,
			Dec:         p.Star.DecDeg,
			Mag:         p.Star.Mag,
			BV:          optional(p.Star.BV),
			TempK:       optional(p.Star.TempK),
			X:           p.Point.X,
			Y:           p.Point.Y,
			Size:        p.Style.Size,
			Color:       p.Style.Hex,
			ColorSource: string(p.Style.Source),
			Intensity:   p.Style.Intensity,
		})
	}
	return export
}

func optional(o catalog.Optional) *float64 {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// WriteJSON writes the frame as indented JSON.
func (e *FrameExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// Brightest returns up to n plots ordered by magnitude, brightest first.
// Ties keep catalog order. n <= 0 returns all.
func Brightest(f skymap.Frame, n int) []skymap.Plot {
	plots := make([]skymap.Plot, len(f.Plots))
	copy(plots, f.Plots)
	sort.SliceStable(plots, func(i, j int) bool {
		return plots[i].Star.Mag < plots[j].Star.Mag
	})
	if n > 0 && len(plots) > n {
		plots = plots[:n]
	}
	return plots
}

// WriteSummaryTable writes the brightest limit visible stars as a text table.
func WriteSummaryTable(w io.Writer, f skymap.Frame, limit int, at time.Time) {
	v := f.View
	fmt.Fprintf(w, "Sky @ %s  center RA %.2f° Dec %+.2f°  zoom %.0f  mag ≤ %.1f  color %s\n",
		at.Format(time.RFC3339), v.CenterRA, v.CenterDec, v.Zoom, v.MagLimit, v.ColorMode)
	fmt.Fprintln(w, strings.Repeat("─", 86))

	if f.Degenerate() {
		fmt.Fprintln(w, "warning: view center is opposite the pole; orientation fell back to identity")
	}

	rows := Brightest(f, limit)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No stars in view")
		return
	}

	fmt.Fprintf(w, "%-8s %-16s %7s %7s %5s %5s %6s %7s %7s %-8s\n",
		"ID", "Name", "RA", "Dec", "Mag", "B-V", "Temp", "X", "Y", "Color")
	fmt.Fprintln(w, strings.Repeat("─", 86))

	for _, p := range rows {
		s := p.Star
		temp := "-"
		if s.TempK.Valid {
			temp = fmt.Sprintf("%.0f", s.TempK.Value)
		}
		fmt.Fprintf(w, "%-8d %-16s %7.2f %+7.2f %5.2f %5s %6s %7.1f %7.1f %-8s\n",
			s.ID,
			truncateStr(s.Name, 16),
			s.RAdeg,
			s.DecDeg,
			s.Mag,
			s.BV.String(),
			temp,
			p.Point.X,
			p.Point.Y,
			p.Style.Hex,
		)
	}

	fmt.Fprintf(w, "\nShowing %d of %d visible stars (%d above cutoff, %d behind, %d off screen)\n",
		len(rows), len(f.Plots), f.Considered, f.Behind, f.Offscreen)
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
