package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gogpu/gg"

	"github.com/pthm-cable/particletext/scene"
	"github.com/pthm-cable/particletext/systems"
	"github.com/pthm-cable/particletext/theme"
	"github.com/pthm-cable/particletext/ui"
)

const controlsLegend = "[A] animate  [T] theme  [R] reseed  [F] fit  [Home] reset view  [P] snapshot  [H] HUD  [Tab] panel"

// draw renders the frame.
func (g *Game) draw(s *scene.Scene) {
	bg := background(s.Theme())
	text := textColor(bg)

	rl.BeginDrawing()
	rl.ClearBackground(bg)

	g.surface.Draw(g.camera)

	g.hud.Draw(g.hudData(s), text)
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend, text)

	ev := g.controls.Draw(int32(g.screenWidth), controlState(s))

	rl.EndDrawing()

	g.applyControls(s, ev)
}

// hudData collects the HUD values for the current frame.
func (g *Game) hudData(s *scene.Scene) ui.HUDData {
	palette := s.Palette()
	field := s.Field()

	return ui.HUDData{
		Label:      s.Label(),
		Population: len(field.Particles()),
		Target:     field.TargetCount(),
		Frame:      s.FrameCount(),
		FPS:        rl.GetFPS(),
		FrameTime:  s.Perf().Stats().AvgFrameDuration,
		Zoom:       g.camera.Zoom,
		Theme:      s.ThemeName(),
		Animated:   s.Animated(),
		Swatches: []ui.Swatch{
			{Label: "Primary", Color: toColor(systems.ToRGBA(palette.Primary, 1)), Value: palette.Primary.String()},
			{Label: "Accent", Color: toColor(systems.ToRGBA(palette.Accent, 1)), Value: palette.Accent.String()},
			{Label: "Foreground", Color: toColor(systems.ToRGBA(palette.Foreground, 1)), Value: palette.Foreground.String()},
		},
	}
}

// background returns the theme's background color, black when unset.
func background(src theme.Source) rl.Color {
	if src == nil {
		return rl.Black
	}
	v, ok := src.Lookup(theme.PropBackground)
	if !ok {
		return rl.Black
	}
	return toColor(gg.Hex(v))
}

// textColor picks a legible overlay color for a background.
func textColor(bg rl.Color) rl.Color {
	luma := 0.299*float32(bg.R) + 0.587*float32(bg.G) + 0.114*float32(bg.B)
	if luma > 128 {
		return rl.DarkGray
	}
	return rl.RayWhite
}

// toColor converts a straight-alpha gg color to a raylib color.
func toColor(c gg.RGBA) rl.Color {
	return rl.Color{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: channel(c.A),
	}
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
