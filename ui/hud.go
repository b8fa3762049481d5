package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Swatch is one palette entry shown in the HUD.
type Swatch struct {
	Label string
	Color rl.Color
	Value string
}

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Label      string
	Population int
	Target     int
	Frame      int64
	FPS        int32
	FrameTime  time.Duration // Average CPU time per frame
	Zoom       float32
	Theme      string
	Animated   bool
	Swatches   []Swatch
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	visible  bool
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer(), visible: true}
}

// Toggle switches HUD visibility.
func (h *HUD) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData, color rl.Color) {
	if !h.visible {
		return
	}
	r := h.renderer

	rl.DrawText(data.Label, 10, 10, 20, color)

	mode := "animated"
	if !data.Animated {
		mode = "static"
	}
	rl.DrawText(
		fmt.Sprintf("Frame: %d | FPS: %d | Zoom: %.2fx | Theme: %s | %s", data.Frame, data.FPS, data.Zoom, data.Theme, mode),
		10, 35, 16, color,
	)

	y := int32(60)
	var fill float32
	if data.Target > 0 {
		fill = float32(data.Population) / float32(data.Target)
	}
	y = r.DrawLabelValue(10, y, "Particles", fmt.Sprintf("%d / %d", data.Population, data.Target))
	y = r.DrawBar(10, y, "Fill", fill, 0.9, 260)
	y = r.DrawLabelValue(10, y, "Frame", fmt.Sprintf("%.2f ms", float64(data.FrameTime.Microseconds())/1000))
	for _, s := range data.Swatches {
		y = r.DrawColorSwatch(10, y, s.Label, s.Color, s.Value)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string, color rl.Color) {
	if !h.visible {
		return
	}
	rl.DrawText(controls, 10, screenHeight-25, 14, color)
}
