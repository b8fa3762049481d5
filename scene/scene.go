// Package scene ties the glyph mask, the particle field and the active theme
// together and drives them one frame at a time.
package scene

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/particletext/glyph"
	"github.com/pthm-cable/particletext/systems"
	"github.com/pthm-cable/particletext/telemetry"
	"github.com/pthm-cable/particletext/theme"
)

// emptyStreakWarn is the number of consecutive empty surfaces after which a
// warning is logged.
const emptyStreakWarn = 2

const emptySurfaceMsg = "text surface has no area"

// Options configures a Scene.
type Options struct {
	Text     string
	Font     *glyph.Font
	Sizing   glyph.Sizing
	Params   systems.Params
	Animated bool
	Themes   *theme.Switcher
	Rng      *rand.Rand

	// Telemetry
	StatsWindow   int
	PerfWindow    int
	Output        *telemetry.OutputManager // nil disables CSV output
	LogStats      bool
	StatsCallback func(telemetry.FieldStats)
}

// Driver paces frames for a frontend and presents what was painted.
type Driver interface {
	// Next blocks until the next frame is due. It returns false once the
	// frontend is done. Resize events are applied to the scene here.
	Next(ctx context.Context, s *Scene) bool
	// Painter returns the painter for the coming frame.
	Painter(s *Scene) systems.Painter
	// Present shows or stores the frame just painted.
	Present(s *Scene) error
}

// Scene owns the field and everything needed to rebuild its mask.
type Scene struct {
	text          string
	font          *glyph.Font
	sizing        glyph.Sizing
	themes        *theme.Switcher
	rng           *rand.Rand
	field         *systems.Field
	viewportWidth float64
	surface       glyph.Surface

	frame       int64
	resets      int
	emptyStreak int

	collector     *telemetry.Collector
	bookmarks     *telemetry.BookmarkDetector
	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.FieldStats)
}

// New creates a scene. The field stays empty until the first Resize.
func New(opts Options) *Scene {
	rng := opts.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	field := systems.NewField(opts.Params, rng)
	field.SetAnimated(opts.Animated)

	return &Scene{
		text:          opts.Text,
		font:          opts.Font,
		sizing:        opts.Sizing,
		themes:        opts.Themes,
		rng:           rng,
		field:         field,
		collector:     telemetry.NewCollector(opts.StatsWindow),
		bookmarks:     telemetry.NewBookmarkDetector(10),
		perf:          telemetry.NewPerfCollector(opts.PerfWindow),
		output:        opts.Output,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
}

// Field returns the particle field.
func (s *Scene) Field() *systems.Field { return s.field }

// Surface returns the current drawing surface.
func (s *Scene) Surface() glyph.Surface { return s.surface }

// FrameCount returns the number of frames painted so far.
func (s *Scene) FrameCount() int64 { return s.frame }

// Resets returns how many times the field has been reseeded.
func (s *Scene) Resets() int { return s.resets }

// ViewportWidth returns the width the surface was last laid out for.
func (s *Scene) ViewportWidth() float64 { return s.viewportWidth }

// Text returns the displayed string.
func (s *Scene) Text() string { return s.text }

// Sizing returns the active sizing parameters.
func (s *Scene) Sizing() glyph.Sizing { return s.sizing }

// Label returns the accessible description of what is displayed.
func (s *Scene) Label() string {
	return "Particle text displaying: " + s.text
}

// Perf returns the frame timing collector.
func (s *Scene) Perf() *telemetry.PerfCollector { return s.perf }

// Resize lays the text out for a new viewport width and reseeds the field.
func (s *Scene) Resize(viewportWidth float64) glyph.Surface {
	s.viewportWidth = viewportWidth
	return s.rebuild("resize")
}

// SetText replaces the string and reseeds.
func (s *Scene) SetText(text string) {
	if text == s.text {
		return
	}
	s.text = text
	s.rebuild("text")
}

// SetFont replaces the font and reseeds.
func (s *Scene) SetFont(f *glyph.Font) {
	s.font = f
	s.rebuild("font")
}

// SetSizing replaces the sizing parameters and reseeds.
func (s *Scene) SetSizing(sz glyph.Sizing) {
	if sz == s.sizing {
		return
	}
	s.sizing = sz
	s.rebuild("sizing")
}

// SetParams replaces the field with one using params and reseeds it on the
// current mask. The animation mode is kept.
func (s *Scene) SetParams(params systems.Params) {
	animated := s.field.Animated()
	mask := s.field.Mask()

	s.field = systems.NewField(params, s.rng)
	s.field.SetAnimated(animated)
	s.reseed(mask, "params")
}

// SetAnimated switches animation on or off from the next frame. The
// population is kept.
func (s *Scene) SetAnimated(animated bool) {
	s.field.SetAnimated(animated)
}

// Animated reports whether animation is on.
func (s *Scene) Animated() bool {
	return s.field.Animated()
}

// ToggleTheme switches to the next theme and returns its name. The new
// colors apply from the next frame.
func (s *Scene) ToggleTheme() string {
	if s.themes == nil {
		return ""
	}
	name := s.themes.Toggle()
	slog.Debug("theme", "active", name, "frame", s.frame)
	return name
}

// SelectTheme activates a named theme.
func (s *Scene) SelectTheme(name string) error {
	if s.themes == nil {
		return fmt.Errorf("selecting theme %q: %w", name, theme.ErrUnknownTheme)
	}
	return s.themes.Select(name)
}

// ThemeName returns the active theme name.
func (s *Scene) ThemeName() string {
	if s.themes == nil {
		return ""
	}
	return s.themes.Active()
}

// Theme returns the active property source. It may be nil.
func (s *Scene) Theme() theme.Source {
	if s.themes == nil {
		return nil
	}
	return s.themes
}

// Palette reads the base colors from the active theme.
func (s *Scene) Palette() theme.Palette {
	return theme.Read(s.Theme())
}

func (s *Scene) rebuild(reason string) glyph.Surface {
	surf := glyph.Layout(s.font, s.text, s.viewportWidth, s.sizing)
	s.surface = surf

	if surf.Empty() {
		s.emptyStreak++
		if s.emptyStreak == emptyStreakWarn {
			slog.Warn(emptySurfaceMsg,
				"width", surf.Width,
				"height", surf.Height,
				"resizes", s.emptyStreak,
			)
		}
	} else {
		s.emptyStreak = 0
	}

	s.reseed(glyph.Rasterize(s.font, s.text, surf), reason)
	return surf
}

func (s *Scene) reseed(mask *glyph.Mask, reason string) {
	threshold := s.field.Params().Threshold
	if mask.Width() > 0 && mask.VisibleCount(threshold) == 0 {
		slog.Debug("mask has no visible pixels",
			"width", mask.Width(),
			"height", mask.Height(),
			"threshold", threshold,
		)
	}

	population := s.field.Reset(mask)
	s.resets++
	s.collector.RecordReset(s.field.LastEvents())

	slog.Debug("reset",
		"reason", reason,
		"width", s.surface.Width,
		"height", s.surface.Height,
		"font_size", s.surface.FontSize,
		"population", population,
		"target", s.field.TargetCount(),
	)
}

// Frame paints one frame with the active palette.
func (s *Scene) Frame(painter systems.Painter) systems.FrameEvents {
	s.perf.StartPhase(telemetry.PhaseTheme)
	palette := s.Palette()

	s.perf.StartPhase(telemetry.PhaseParticles)
	ev := s.field.Step(palette, painter)
	s.collector.RecordFrame(ev)
	s.frame++

	return ev
}

// Run drives frames until the driver stops or ctx is cancelled. The context
// is checked before every frame; a cancelled context returns ctx.Err().
func (s *Scene) Run(ctx context.Context, d Driver) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Next(ctx, s) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		s.perf.StartFrame()
		s.Frame(d.Painter(s))

		s.perf.StartPhase(telemetry.PhasePresent)
		if err := d.Present(s); err != nil {
			return fmt.Errorf("presenting frame %d: %w", s.frame, err)
		}

		s.perf.StartPhase(telemetry.PhaseTelemetry)
		s.flushTelemetry()
		s.perf.EndFrame()
	}
}
