package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/particletext/config"
	"github.com/pthm-cable/particletext/game"
	"github.com/pthm-cable/particletext/glyph"
	"github.com/pthm-cable/particletext/scene"
	"github.com/pthm-cable/particletext/systems"
	"github.com/pthm-cable/particletext/telemetry"
	"github.com/pthm-cable/particletext/terminal"
	"github.com/pthm-cable/particletext/theme"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	textFlag := flag.String("text", "", "Text to display (empty = use config)")
	static := flag.Bool("static", false, "Start with animation off")
	themeName := flag.String("theme", "", "Active theme (empty = use config)")
	headless := flag.Bool("headless", false, "Render offscreen without a window")
	term := flag.Bool("terminal", false, "Render in the terminal")
	viewportWidth := flag.Float64("viewport-width", 0, "Viewport width for headless runs (0 = screen.width)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, frames and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *textFlag != "" {
		cfg.Text.Value = *textFlag
	}
	if *static {
		cfg.Animation.Enabled = false
	}
	if *themeName != "" {
		cfg.Theme.Active = *themeName
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "dir", *outputDir, "error", err)
		os.Exit(1)
	}
	defer output.Close()

	// The terminal owns stdout, so logs go to a file or nowhere
	logOut := io.Writer(os.Stdout)
	if *term {
		logOut = io.Discard
		if *outputDir != "" {
			f, err := os.Create(filepath.Join(*outputDir, "run.log"))
			if err != nil {
				slog.Error("failed to create log file", "error", err)
				os.Exit(1)
			}
			defer f.Close()
			logOut = f
		}
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil))
	slog.SetDefault(logger)
	gg.SetLogger(logger)

	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	font, err := glyph.LoadFont(cfg.Text.FontFamily)
	if err != nil {
		slog.Error("failed to load font", "family", cfg.Text.FontFamily, "error", err)
		os.Exit(1)
	}
	defer font.Close()

	themes, err := theme.NewSwitcher(cfg.Theme.Themes, cfg.Theme.Active)
	if err != nil {
		slog.Error("failed to load themes", "error", err, "available", cfg.Derived.ThemeNames)
		os.Exit(1)
	}

	s := scene.New(scene.Options{
		Text: cfg.Text.Value,
		Font: font,
		Sizing: glyph.Sizing{
			Fraction: cfg.Text.FontFraction,
			MinSize:  cfg.Text.MinFontSize,
			MaxSize:  cfg.Text.MaxFontSize,
			Padding:  cfg.Text.Padding,
		},
		Params:      systems.ParamsFromConfig(cfg),
		Animated:    cfg.Animation.Enabled,
		Themes:      themes,
		Rng:         rand.New(rand.NewSource(rngSeed)),
		StatsWindow: cfg.Telemetry.StatsWindow,
		PerfWindow:  cfg.Telemetry.PerfWindow,
		Output:      output,
		LogStats:    *logStats,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting",
		"text", cfg.Text.Value,
		"font", font.Name(),
		"theme", themes.Active(),
		"animated", cfg.Animation.Enabled,
		"seed", rngSeed,
		"max_frames", *maxFrames,
	)

	switch {
	case *headless:
		// Headless mode - software canvas only, no raylib needed
		width := *viewportWidth
		if width <= 0 {
			width = float64(cfg.Screen.Width)
		}
		h := scene.NewHeadless(*maxFrames, int64(cfg.Output.FrameInterval), output)
		defer h.Close()

		s.Resize(width)
		err = s.Run(ctx, h)
		slog.Info("headless run finished", "frames", s.FrameCount(), "saved", h.Saved())

	case *term:
		t, terr := terminal.New(terminal.Options{
			CellWidth: cfg.Terminal.CellWidth,
			TargetFPS: cfg.Terminal.TargetFPS,
			MaxFrames: *maxFrames,
		})
		if terr != nil {
			slog.Error("failed to open terminal", "error", terr)
			os.Exit(1)
		}
		defer t.Close()

		s.Resize(t.ViewportWidth())
		err = s.Run(ctx, t)

	default:
		// Graphical mode
		g := game.New(game.Options{
			Width:     cfg.Screen.Width,
			Height:    cfg.Screen.Height,
			TargetFPS: cfg.Screen.TargetFPS,
			Resizable: cfg.Screen.Resizable,
			MaxFrames: *maxFrames,
			Output:    output,
		})
		defer g.Close()

		err = s.Run(ctx, g)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run failed", "frame", s.FrameCount(), "error", err)
		output.Close()
		os.Exit(1)
	}
	slog.Info("final stats", "stats", s.Stats())
}
