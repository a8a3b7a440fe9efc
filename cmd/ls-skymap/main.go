// Command ls-skymap is a terminal star map using a stereographic projection.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-skymap/internal/appearance"
	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/catalog"
	"github.com/litescript/ls-skymap/internal/config"
	"github.com/litescript/ls-skymap/internal/export"
	"github.com/litescript/ls-skymap/internal/logging"
	"github.com/litescript/ls-skymap/internal/skymap"
	"github.com/litescript/ls-skymap/internal/state"
	"github.com/litescript/ls-skymap/internal/ui"
	"github.com/litescript/ls-skymap/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode  bool
	snapshotPath string
	miniSkyMode  bool
	summaryLimit int
)

const defaultSummaryLimit = 20

func main() {
	cfgPath := flag.String("config", "", "YAML config file")
	catalogPath := flag.String("catalog", "", "Star catalog CSV (.csv, .gz, .zst, .lz4); default is the built-in list")
	zeroBV := flag.Bool("zero-bv-absent", false, "Treat a B-V of 0.0 as missing")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Write logs to this file while the TUI runs")
	ra := flag.Float64("ra", 0, "View center right ascension in degrees")
	dec := flag.Float64("dec", 0, "View center declination in degrees")
	zoom := flag.Float64("zoom", 0, "Initial zoom (pixels per projected unit)")
	magLimit := flag.Float64("mag-limit", 0, "Hide stars fainter than this magnitude")
	colorMode := flag.String("color", "", "Color policy (auto, mag, temp, bv)")
	width := flag.Float64("width", 0, "Headless canvas width in pixels")
	height := flag.Float64("height", 0, "Headless canvas height in pixels")
	zenith := flag.String("zenith", "", "Center on the zenith of an observer at LAT,LON")
	workers := flag.Int("workers", 0, "Projection workers (0 = one per CPU)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.IntVar(&summaryLimit, "summary-limit", defaultSummaryLimit, "Stars listed by --summary")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON frame to file (use - for stdout)")
	flag.BoolVar(&miniSkyMode, "mini-sky", false, "Show ASCII mini sky view")
	flag.Parse()

	if *showVersion {
		fmt.Println("ls-skymap", version.String())
		return
	}

	logger := logging.New(logging.LevelInfo)

	cfg := config.DefaultConfig()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fatal(err)
		}
	}

	// Flags given explicitly win over the config file.
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "catalog":
			cfg.Catalog = *catalogPath
		case "zero-bv-absent":
			cfg.ZeroBVAbsent = *zeroBV
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-file":
			cfg.LogFile = *logFile
		case "ra":
			cfg.Center.RA = *ra
		case "dec":
			cfg.Center.Dec = *dec
		case "zoom":
			cfg.View.InitialZoom = *zoom
		case "mag-limit":
			cfg.View.MagLimit = *magLimit
		case "color":
			mode, err := appearance.ParseMode(*colorMode)
			if err != nil {
				flagErr = errors.Join(flagErr, err)
			}
			cfg.ColorMode = mode
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "workers":
			cfg.Workers = *workers
		}
	})
	if flagErr != nil {
		fatal(flagErr)
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	if *zenith != "" {
		obs, err := parseObserver(*zenith)
		if err != nil {
			fatal(err)
		}
		z := astro.Zenith(obs, time.Now())
		cfg.Center.RA, cfg.Center.Dec = z.RAdeg, z.DecDeg
	}

	headless := summaryMode || snapshotPath != "" || miniSkyMode

	// Set up logging. The TUI owns the terminal, so logs go to a file or nowhere.
	logger.SetLevel(logging.ParseLevel(cfg.LogLevel))
	if !headless {
		if cfg.LogFile == "" {
			logger = logging.Discard()
		} else {
			f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				fatal(fmt.Errorf("open log file: %w", err))
			}
			defer f.Close()
			logger.SetOutput(f)
		}
	}

	// Create context with cancellation on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *cfgPath != "" {
		logger.Debug("Config loaded from %s", *cfgPath)
	}

	cat, err := loadCatalog(cfg, logger.With("component", "catalog"))
	if err != nil {
		fatal(err)
	}

	renderer := skymap.NewRenderer(cat).WithSizes(cfg.Sizes)
	stateMgr := state.NewManager(cfg.View, cfg.InitialView())

	if headless {
		if err := runHeadless(ctx, os.Stdout, renderer, stateMgr.View(), cfg, logger); err != nil {
			fatal(err)
		}
		return
	}

	model := ui.New(stateMgr, renderer, logger.With("component", "ui"))
	p := tea.NewProgram(model, programOptions(ctx)...)

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// programOptions configures the TUI. All-motion mouse reporting is needed
// for menu hover: cell motion only reports movement while a button is held.
func programOptions(ctx context.Context) []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "ls-skymap: %v\n", err)
	os.Exit(1)
}

func loadCatalog(cfg config.Config, logger *logging.Logger) (*catalog.Catalog, error) {
	if cfg.Catalog == "" {
		cat := catalog.BrightStars()
		logger.Debug("Using built-in catalog: %d stars", cat.Len())
		return cat, nil
	}

	start := time.Now()
	cat, err := catalog.Load(cfg.Catalog, catalog.LoadOptions{ZeroBVAbsent: cfg.ZeroBVAbsent})
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded %d stars from %s in %v", cat.Len(), cfg.Catalog, time.Since(start).Round(time.Millisecond))
	return cat, nil
}

// runHeadless renders one frame and writes the requested outputs to w.
func runHeadless(ctx context.Context, w io.Writer, r *skymap.Renderer, view state.View, cfg config.Config, logger *logging.Logger) error {
	vp := astro.Viewport{Width: cfg.Width, Height: cfg.Height}
	frame, err := r.FrameParallel(ctx, view, vp, cfg.Workers)
	if err != nil {
		return err
	}
	now := time.Now()
	logger.Debug("Projected %d stars: %d plotted, %d behind, %d offscreen",
		frame.Considered, len(frame.Plots), frame.Behind, frame.Offscreen)
	if frame.Degenerate() {
		logger.Warn("View center is the south celestial pole; orientation is the identity")
	}

	// Export JSON if requested
	if snapshotPath != "" {
		exp := export.ExportFrame(frame, now)
		if snapshotPath == "-" {
			if err := exp.WriteJSON(w); err != nil {
				return fmt.Errorf("write JSON to stdout: %w", err)
			}
		} else {
			f, err := os.Create(snapshotPath)
			if err != nil {
				return fmt.Errorf("create snapshot file: %w", err)
			}
			defer f.Close()
			if err := exp.WriteJSON(f); err != nil {
				return fmt.Errorf("write JSON to file: %w", err)
			}
		}
	}

	if summaryMode {
		export.WriteSummaryTable(w, frame, summaryLimit, now)
	}

	if miniSkyMode {
		fmt.Fprintln(w)
		export.WriteMiniSky(w, frame, miniSkyConfig())
	}
	return nil
}

// miniSkyConfig sizes the mini sky to the terminal when stdout is one.
func miniSkyConfig() export.MiniSkyConfig {
	cfg := export.DefaultMiniSkyConfig()
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return cfg
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return cfg
	}
	// Leave room for the border, legend and prompt.
	cfg.Cols = min(max(cols-2, 20), 160)
	cfg.Rows = min(max(rows-cfg.Legend-6, 8), 60)
	return cfg
}

// parseObserver parses "LAT,LON" in degrees, north and east positive.
func parseObserver(s string) (astro.Observer, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return astro.Observer{}, fmt.Errorf("zenith %q: want LAT,LON", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return astro.Observer{}, fmt.Errorf("zenith latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return astro.Observer{}, fmt.Errorf("zenith longitude: %w", err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 360 {
		return astro.Observer{}, fmt.Errorf("zenith %q out of range", s)
	}
	return astro.Observer{LatDeg: lat, LonDeg: lon, Name: "observer"}, nil
}
