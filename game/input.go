package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particletext/controls"
	"github.com/pthm-cable/particletext/scene"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput(s *scene.Scene) {
	// Window resize propagation
	g.handleResize(s)

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyA) {
		s.SetAnimated(!s.Animated())
	}
	if rl.IsKeyPressed(rl.KeyT) {
		s.ToggleTheme()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.relayout(s)
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.hud.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.snapshot(s)
	}

	// Camera controls
	g.handleCameraInput()
}

// handleResize checks for window resize and re-lays the text out for the new
// width.
func (g *Game) handleResize(s *scene.Scene) {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.relayout(s)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / g.camera.Zoom

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Zoom toward the cursor
	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 {
		mouse := rl.GetMousePosition()
		g.camera.ZoomAt(mouse.X, mouse.Y, 1+wheelMove*0.1)
		g.fit = false
	}

	// Keyboard zoom with +/- (= and - keys)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
		g.fit = false
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
		g.fit = false
	}

	if rl.IsKeyPressed(rl.KeyF) {
		g.camera.Fit()
		g.fit = true
	}
	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
		g.fit = false
	}
}

// applyControls applies the control panel's changes to the scene.
func (g *Game) applyControls(s *scene.Scene, ev controls.Events) {
	if ev.ToggleAnimated {
		s.SetAnimated(!s.Animated())
	}
	if ev.ToggleTheme {
		s.ToggleTheme()
	}
	if ev.Reseed {
		g.relayout(s)
	}
	if ev.Fit {
		g.camera.Fit()
		g.fit = true
	}

	if ev.SizingChanged {
		sz := s.Sizing()
		sz.Fraction = float64(ev.State.FontFraction)
		sz.Padding = float64(ev.State.Padding)
		s.SetSizing(sz)
		g.camera.SetSurface(float32(s.Surface().Width), float32(s.Surface().Height))
		if g.fit {
			g.camera.Fit()
		}
	}
	if ev.ParamsChanged {
		params := s.Field().Params()
		params.Count = ev.State.Count
		params.Size = float64(ev.State.ParticleSize)
		s.SetParams(params)
	}
}

// controlState reads the values the control panel edits. Values may lie
// outside the slider ranges; the panel clamps them for display only.
func controlState(s *scene.Scene) controls.State {
	sz := s.Sizing()
	params := s.Field().Params()
	return controls.State{
		Animated:     s.Animated(),
		Theme:        s.ThemeName(),
		FontFraction: float32(sz.Fraction),
		Padding:      float32(sz.Padding),
		Count:        params.Count,
		ParticleSize: float32(params.Size),
	}
}

// snapshot writes the current frame to the output directory.
func (g *Game) snapshot(s *scene.Scene) {
	if g.opts.Output == nil {
		slog.Info("snapshot skipped, no output directory")
		return
	}
	path, err := g.opts.Output.WriteFrame(s.FrameCount(), g.canvas)
	if err != nil {
		slog.Error("failed to write snapshot", "frame", s.FrameCount(), "error", err)
		return
	}
	slog.Info("snapshot saved", "frame", s.FrameCount(), "path", path)
}
