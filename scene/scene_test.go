package scene

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"testing"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/particletext/glyph"
	"github.com/pthm-cable/particletext/systems"
	"github.com/pthm-cable/particletext/telemetry"
	"github.com/pthm-cable/particletext/theme"
)

type countingPainter struct {
	squares int
	colors  map[gg.RGBA]int
}

func (p *countingPainter) Clear() {
	p.squares = 0
	p.colors = make(map[gg.RGBA]int)
}

func (p *countingPainter) FillSquare(cx, cy, size float64, c gg.RGBA) {
	p.squares++
	p.colors[c]++
}

// scriptedDriver runs a fixed number of frames, optionally cancelling.
type scriptedDriver struct {
	frames     int
	cancelAt   int
	cancel     context.CancelFunc
	presentErr error

	painter  countingPainter
	nexts    int
	presents int
}

func (d *scriptedDriver) Next(ctx context.Context, s *Scene) bool {
	d.nexts++
	if d.cancel != nil && d.nexts == d.cancelAt {
		d.cancel()
	}
	return d.nexts <= d.frames
}

func (d *scriptedDriver) Painter(s *Scene) systems.Painter { return &d.painter }

func (d *scriptedDriver) Present(s *Scene) error {
	d.presents++
	return d.presentErr
}

var testSizing = glyph.Sizing{Fraction: 8, MinSize: 30, MaxSize: 120, Padding: 15}

func newTestScene(t *testing.T, text string) *Scene {
	t.Helper()

	f, err := glyph.LoadFont("go-bold")
	if err != nil {
		t.Fatalf("loading font: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	themes, err := theme.NewSwitcher(map[string]map[string]string{
		"dark":  {theme.PropPrimary: "210 90% 60%", theme.PropAccent: "330 80% 65%"},
		"light": {theme.PropPrimary: "220 80% 50%", theme.PropAccent: "280 70% 60%"},
	}, "dark")
	if err != nil {
		t.Fatalf("building themes: %v", err)
	}

	return New(Options{
		Text:        text,
		Font:        f,
		Sizing:      testSizing,
		Params:      systems.DefaultParams(),
		Animated:    true,
		Themes:      themes,
		Rng:         rand.New(rand.NewSource(11)),
		StatsWindow: 30,
		PerfWindow:  30,
	})
}

func TestResizeSeedsField(t *testing.T) {
	s := newTestScene(t, "Hello")

	surf := s.Resize(1000)

	if surf.FontSize != 80 {
		t.Errorf("font size = %v, want 80", surf.FontSize)
	}
	if surf.Height != 110 {
		t.Errorf("surface height = %d, want 110", surf.Height)
	}
	mask := s.Field().Mask()
	if mask.Width() != surf.Width || mask.Height() != surf.Height {
		t.Errorf("mask %dx%d does not match surface %dx%d", mask.Width(), mask.Height(), surf.Width, surf.Height)
	}
	if got, target := len(s.Field().Particles()), s.Field().TargetCount(); got != target || got == 0 {
		t.Errorf("population = %d, want target %d", got, target)
	}
	if s.Resets() != 1 {
		t.Errorf("resets = %d, want 1", s.Resets())
	}
}

func TestResizeClampsFontSize(t *testing.T) {
	s := newTestScene(t, "Hello")

	if surf := s.Resize(3000); surf.FontSize != 120 {
		t.Errorf("font size = %v, want 120", surf.FontSize)
	}
	if surf := s.Resize(100); surf.FontSize != 30 {
		t.Errorf("font size = %v, want 30", surf.FontSize)
	}
}

func TestResizeDiscardsPopulation(t *testing.T) {
	s := newTestScene(t, "Hi")
	s.Resize(1000)

	p := &countingPainter{}
	for i := 0; i < 50; i++ {
		s.Frame(p)
	}

	s.Resize(1000)
	for _, pt := range s.Field().Particles() {
		if pt.Life != pt.MaxLife {
			t.Fatalf("particle survived reset: life %d of %d", pt.Life, pt.MaxLife)
		}
	}
	if s.Resets() != 2 {
		t.Errorf("resets = %d, want 2", s.Resets())
	}
}

func TestParameterChangesReset(t *testing.T) {
	s := newTestScene(t, "Hi")
	s.Resize(1000)
	before := s.Surface()

	s.SetText("Hello world")
	if s.Surface().Width <= before.Width {
		t.Errorf("longer text should widen the surface: %d <= %d", s.Surface().Width, before.Width)
	}

	// Same text is not a change
	resets := s.Resets()
	s.SetText("Hello world")
	if s.Resets() != resets {
		t.Error("setting the same text should not reset")
	}

	sz := testSizing
	sz.Padding = 30
	s.SetSizing(sz)
	if got := s.Surface().Height; got != 140 {
		t.Errorf("surface height with padding 30 = %d, want 140", got)
	}

	params := systems.DefaultParams()
	params.Count = 100
	s.SetParams(params)
	if got := len(s.Field().Particles()); got > 100 {
		t.Errorf("population %d exceeds new count 100", got)
	}
	if s.Resets() != resets+2 {
		t.Errorf("resets = %d, want %d", s.Resets(), resets+2)
	}
}

func TestSetParamsKeepsAnimationMode(t *testing.T) {
	s := newTestScene(t, "Hi")
	s.Resize(1000)
	s.SetAnimated(false)

	s.SetParams(systems.DefaultParams())
	if s.Animated() {
		t.Error("animation mode should survive a parameter change")
	}
}

func TestAnimatedToggleKeepsPopulation(t *testing.T) {
	s := newTestScene(t, "Hi")
	s.Resize(1000)
	before := len(s.Field().Particles())
	resets := s.Resets()

	s.SetAnimated(false)
	p := &countingPainter{}
	s.Frame(p)

	if s.Resets() != resets {
		t.Error("toggling animation should not reset")
	}
	if len(s.Field().Particles()) != before {
		t.Errorf("population changed from %d to %d", before, len(s.Field().Particles()))
	}
	// Static frames use a single color
	if len(p.colors) != 1 {
		t.Errorf("static frame used %d colors, want 1", len(p.colors))
	}
}

func TestThemeToggleRecolorsNextFrame(t *testing.T) {
	s := newTestScene(t, "Hi")
	s.Resize(1000)
	s.SetAnimated(false)

	p := &countingPainter{}
	s.Frame(p)
	darkColors := p.colors

	if name := s.ToggleTheme(); name != "light" {
		t.Fatalf("toggled to %q, want light", name)
	}
	s.Frame(p)

	for c := range p.colors {
		if _, ok := darkColors[c]; ok {
			t.Errorf("color %v unchanged after theme toggle", c)
		}
	}
	if s.Palette().Primary != (theme.HSL{H: 220, S: 80, L: 50}) {
		t.Errorf("palette primary = %v, want 220 80%% 50%%", s.Palette().Primary)
	}
}

func TestSelectUnknownTheme(t *testing.T) {
	s := newTestScene(t, "Hi")
	if err := s.SelectTheme("sepia"); !errors.Is(err, theme.ErrUnknownTheme) {
		t.Errorf("got %v, want ErrUnknownTheme", err)
	}
}

// recordingHandler keeps every record at or above Debug.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) count(level slog.Level, msg string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.records {
		if r.Level == level && r.Message == msg {
			n++
		}
	}
	return n
}

// captureLogs routes the default logger to a recorder for the test.
func captureLogs(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	prev := slog.Default()
	slog.SetDefault(slog.New(h))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return h
}

func TestEmptySurface(t *testing.T) {
	logs := captureLogs(t)
	s := newTestScene(t, "")
	sz := testSizing
	sz.Padding = 0
	s.SetSizing(sz)

	for i := 0; i < 3; i++ {
		if surf := s.Resize(800); !surf.Empty() {
			t.Fatalf("surface = %+v, want empty", surf)
		}
	}
	// SetSizing already laid out one empty surface
	if s.emptyStreak != 4 {
		t.Errorf("empty streak = %d, want 4", s.emptyStreak)
	}
	if n := logs.count(slog.LevelWarn, emptySurfaceMsg); n != 1 {
		t.Errorf("got %d %q warnings for a streak of 4, want 1", n, emptySurfaceMsg)
	}

	p := &countingPainter{}
	ev := s.Frame(p)
	if p.squares != 0 || len(s.Field().Particles()) != 0 {
		t.Errorf("empty surface painted %d squares", p.squares)
	}
	if ev.Spawned != 0 {
		t.Errorf("spawned %d on empty surface", ev.Spawned)
	}

	s.SetText("A")
	if s.emptyStreak != 0 {
		t.Errorf("empty streak = %d after a real surface, want 0", s.emptyStreak)
	}

	// A new streak warns again
	s.SetText("")
	s.Resize(800)
	if n := logs.count(slog.LevelWarn, emptySurfaceMsg); n != 2 {
		t.Errorf("got %d %q warnings after a second streak, want 2", n, emptySurfaceMsg)
	}
}

func TestLabel(t *testing.T) {
	s := newTestScene(t, "Hello")
	if got, want := s.Label(), "Particle text displaying: Hello"; got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
}

func TestRunStopsWhenDriverDone(t *testing.T) {
	s := newTestScene(t, "Hi")
	s.Resize(1000)

	d := &scriptedDriver{frames: 10}
	if err := s.Run(context.Background(), d); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if s.FrameCount() != 10 || d.presents != 10 {
		t.Errorf("frames = %d presents = %d, want 10 each", s.FrameCount(), d.presents)
	}
	if d.painter.squares == 0 {
		t.Error("expected painted squares")
	}

	perf := s.Perf().Stats()
	for _, phase := range []string{telemetry.PhaseTheme, telemetry.PhaseParticles, telemetry.PhasePresent, telemetry.PhaseTelemetry} {
		if _, ok := perf.PhaseAvg[phase]; !ok {
			t.Errorf("perf has no %q phase", phase)
		}
	}
}

func TestRunCancellation(t *testing.T) {
	s := newTestScene(t, "Hi")
	s.Resize(1000)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := &scriptedDriver{frames: 1000, cancelAt: 6, cancel: cancel}
	err := s.Run(ctx, d)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	// Cancelled during the sixth Next: five frames were painted, none after
	if s.FrameCount() != 5 {
		t.Errorf("frames = %d, want 5", s.FrameCount())
	}
}

func TestRunCancelledBeforeStart(t *testing.T) {
	s := newTestScene(t, "Hi")
	s.Resize(1000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := &scriptedDriver{frames: 10}
	if err := s.Run(ctx, d); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if d.nexts != 0 || s.FrameCount() != 0 {
		t.Errorf("cancelled run still scheduled %d frames", d.nexts)
	}
}

func TestRunPresentError(t *testing.T) {
	s := newTestScene(t, "Hi")
	s.Resize(1000)

	boom := errors.New("boom")
	d := &scriptedDriver{frames: 10, presentErr: boom}
	if err := s.Run(context.Background(), d); !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want wrapped boom", err)
	}
	if s.FrameCount() != 1 {
		t.Errorf("frames = %d, want 1", s.FrameCount())
	}
}

func TestStatsCallback(t *testing.T) {
	s := newTestScene(t, "Hi")
	var windows []telemetry.FieldStats
	s.statsCallback = func(st telemetry.FieldStats) { windows = append(windows, st) }
	s.Resize(1000)

	if err := s.Run(context.Background(), &scriptedDriver{frames: 90}); err != nil {
		t.Fatal(err)
	}
	if len(windows) != 3 {
		t.Fatalf("got %d stats windows, want 3", len(windows))
	}
	if windows[0].Resets != 1 || windows[1].Resets != 0 {
		t.Errorf("resets per window = %d, %d, want 1, 0", windows[0].Resets, windows[1].Resets)
	}
	if windows[2].WindowEndFrame != 90 {
		t.Errorf("last window ends at %d, want 90", windows[2].WindowEndFrame)
	}
}
