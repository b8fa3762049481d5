// Package game is the raylib window frontend. It implements scene.Driver.
package game

import (
	"context"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particletext/camera"
	"github.com/pthm-cable/particletext/canvas"
	"github.com/pthm-cable/particletext/renderer"
	"github.com/pthm-cable/particletext/scene"
	"github.com/pthm-cable/particletext/systems"
	"github.com/pthm-cable/particletext/telemetry"
	"github.com/pthm-cable/particletext/ui"
)

// Panel layout
const (
	panelWidth = 300
)

// Options configures the window.
type Options struct {
	Width     int
	Height    int
	TargetFPS int
	Resizable bool
	MaxFrames int64                    // 0 = until the window is closed
	Output    *telemetry.OutputManager // Snapshot target, may be nil
}

// Game holds the window state.
type Game struct {
	opts Options

	camera   *camera.Camera
	canvas   *canvas.Painter
	surface  *renderer.SurfaceRenderer
	hud      *ui.HUD
	controls *ui.ControlsPanel

	screenWidth, screenHeight float32
	title                     string
	started                   bool
	fit                       bool // Refit the camera when the surface changes
}

// New opens the window. Call Close when done.
func New(opts Options) *Game {
	if opts.TargetFPS <= 0 {
		opts.TargetFPS = 60
	}
	if opts.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(opts.Width), int32(opts.Height), "Particle Text")
	rl.SetTargetFPS(int32(opts.TargetFPS))

	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())

	return &Game{
		opts:         opts,
		camera:       camera.New(w, h, 0, 0),
		canvas:       canvas.New(0, 0),
		surface:      renderer.NewSurfaceRenderer(),
		hud:          ui.NewHUD(),
		controls:     ui.NewControlsPanel(panelWidth),
		screenWidth:  w,
		screenHeight: h,
		fit:          true,
	}
}

// Next implements scene.Driver. The first call lays the scene out for the
// window width.
func (g *Game) Next(ctx context.Context, s *scene.Scene) bool {
	if rl.WindowShouldClose() {
		return false
	}
	if g.opts.MaxFrames > 0 && s.FrameCount() >= g.opts.MaxFrames {
		slog.Info("max frames reached", "frame", s.FrameCount())
		return false
	}

	if !g.started {
		g.started = true
		g.relayout(s)
	}
	g.handleInput(s)
	return true
}

// Painter implements scene.Driver. The canvas stays transparent; the theme
// background is cleared by raylib underneath it.
func (g *Game) Painter(s *scene.Scene) systems.Painter {
	surf := s.Surface()
	g.canvas.Resize(surf.Width, surf.Height)
	return g.canvas
}

// Present implements scene.Driver.
func (g *Game) Present(s *scene.Scene) error {
	if err := g.canvas.Err(); err != nil {
		slog.Error("failed to paint frame", "frame", s.FrameCount(), "error", err)
	}
	if g.canvas.Width() > 0 {
		g.surface.Update(g.canvas.RGBA())
	}

	if label := s.Label(); label != g.title {
		g.title = label
		rl.SetWindowTitle(label)
	}

	g.draw(s)
	return nil
}

// Close frees GPU resources and closes the window.
func (g *Game) Close() {
	g.surface.Unload()
	_ = g.canvas.Close()
	rl.CloseWindow()
}

// relayout resizes the scene for the current window width and points the
// camera at the new surface.
func (g *Game) relayout(s *scene.Scene) {
	surf := s.Resize(float64(g.screenWidth))
	g.camera.SetSurface(float32(surf.Width), float32(surf.Height))
	if g.fit {
		g.camera.Fit()
	}
}
