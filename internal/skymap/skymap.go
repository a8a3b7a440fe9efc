// Package skymap runs the per-frame pipeline: magnitude cutoff, orientation,
// stereographic projection, viewport culling and visual encoding.
package skymap

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-skymap/internal/appearance"
	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/catalog"
	"github.com/litescript/ls-skymap/internal/state"
)

// Plot is a star ready to draw.
type Plot struct {
	Star  catalog.Star
	Point astro.ScreenPoint
	Style appearance.Style
}

// Frame is the result of one pass over the catalog.
type Frame struct {
	View      state.View
	Viewport  astro.Viewport
	Projector astro.Projector
	Plots     []Plot // in catalog order

	Considered int // stars that passed the magnitude cutoff
	Behind     int // culled on the far hemisphere
	Offscreen  int // projected outside the viewport
}

// Degenerate reports whether the view center was opposite the pole and the
// orientation fell back to identity.
func (f Frame) Degenerate() bool {
	return f.Projector.Rotation.Degenerate()
}

// Locate projects an arbitrary sky direction with the frame's projector and
// reports whether it lands inside the viewport.
func (f Frame) Locate(v astro.Vec3) (astro.ScreenPoint, bool) {
	p, ok := f.Projector.Project(v)
	if !ok || !f.Viewport.Contains(p) {
		return astro.ScreenPoint{}, false
	}
	return p, true
}

// Renderer projects a read-only catalog.
type Renderer struct {
	cat   *catalog.Catalog
	sizes appearance.SizeConfig
}

// NewRenderer returns a renderer over cat with default sizing.
func NewRenderer(cat *catalog.Catalog) *Renderer {
	return &Renderer{cat: cat, sizes: appearance.DefaultSizeConfig()}
}

// WithSizes returns a copy of r using sizes.
func (r *Renderer) WithSizes(sizes appearance.SizeConfig) *Renderer {
	return &Renderer{cat: r.cat, sizes: sizes}
}

// Catalog returns the catalog being drawn.
func (r *Renderer) Catalog() *catalog.Catalog {
	return r.cat
}

// outcome of one star in a pass
type outcome uint8

const (
	outcomeSkipped outcome = iota // fainter than the cutoff
	outcomeBehind
	outcomeOffscreen
	outcomePlotted
)

type pass struct {
	view state.View
	vp   astro.Viewport
	proj astro.Projector
	enc  appearance.Encoder
}

// ProjectorFor returns the projector a frame of view on vp uses: oriented
// on the view center, scaled by zoom, with the origin mid-viewport.
func ProjectorFor(view state.View, vp astro.Viewport) astro.Projector {
	return astro.NewProjector(view.CenterVector(), view.Zoom, vp.Center())
}

func (r *Renderer) newPass(view state.View, vp astro.Viewport) pass {
	return pass{
		view: view,
		vp:   vp,
		proj: ProjectorFor(view, vp),
		enc:  appearance.Encoder{Mode: view.ColorMode, Sizes: r.sizes},
	}
}

func (p pass) star(s catalog.Star) (Plot, outcome) {
	if s.Mag > p.view.MagLimit {
		return Plot{}, outcomeSkipped
	}
	pt, ok := p.proj.Project(s.Vector())
	if !ok {
		return Plot{}, outcomeBehind
	}
	if !p.vp.Contains(pt) {
		return Plot{}, outcomeOffscreen
	}
	return Plot{Star: s, Point: pt, Style: p.enc.Encode(s, p.view.Zoom)}, outcomePlotted
}

func (p pass) frame() Frame {
	return Frame{View: p.view, Viewport: p.vp, Projector: p.proj}
}

func (f *Frame) tally(o outcome) {
	switch o {
	case outcomeBehind:
		f.Behind++
	case outcomeOffscreen:
		f.Offscreen++
	}
	if o != outcomeSkipped {
		f.Considered++
	}
}

// Frame runs the pipeline over every star in catalog order.
func (r *Renderer) Frame(view state.View, vp astro.Viewport) Frame {
	p := r.newPass(view, vp)
	f := p.frame()

	for _, s := range r.cat.Stars() {
		plot, o := p.star(s)
		f.tally(o)
		if o == outcomePlotted {
			f.Plots = append(f.Plots, plot)
		}
	}
	return f
}

// FrameParallel is Frame with the star slice split across workers. Each
// worker writes only its own slots, and the result is identical to Frame.
// workers <= 0 means GOMAXPROCS.
func (r *Renderer) FrameParallel(ctx context.Context, view state.View, vp astro.Viewport, workers int) (Frame, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	stars := r.cat.Stars()
	if workers == 1 || len(stars) < 2*workers {
		return r.Frame(view, vp), nil
	}

	p := r.newPass(view, vp)
	plots := make([]Plot, len(stars))
	outcomes := make([]outcome, len(stars))

	chunk := (len(stars) + workers - 1) / workers
	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(stars); lo += chunk {
		lo := lo
		hi := min(lo+chunk, len(stars))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if (i-lo)%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				plots[i], outcomes[i] = p.star(stars[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Frame{}, fmt.Errorf("project frame: %w", err)
	}

	f := p.frame()
	for i, o := range outcomes {
		f.tally(o)
		if o == outcomePlotted {
			f.Plots = append(f.Plots, plots[i])
		}
	}
	return f, nil
}
