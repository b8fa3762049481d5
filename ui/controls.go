package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particletext/controls"
)

// ControlsPanel renders the right-side control panel.
type ControlsPanel struct {
	renderer *Renderer
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		width:    width,
		visible:  true,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Draw renders the panel at the right edge of the screen and returns the
// user's changes. Sliders show state clamped to their ranges.
func (c *ControlsPanel) Draw(screenWidth int32, state controls.State) controls.Events {
	ev := controls.Events{State: state}
	if !c.visible {
		return ev
	}
	shown := state.Clamped()

	r := c.renderer
	pad := r.Style.Padding
	h := r.Style.ControlHeight
	x := screenWidth - c.width - pad
	y := pad
	panelHeight := int32(9*h) + pad*8

	r.DrawPanel(x, y, c.width, panelHeight)
	y = r.DrawSectionHeader(x+pad, y+pad, "Controls")

	bx := float32(x + pad)
	bw := float32(c.width-pad*3) / 2
	rowY := func() float32 { return float32(y) }

	if gui.Button(rl.Rectangle{X: bx, Y: rowY(), Width: bw, Height: h}, toggleText(state.Animated, "Freeze", "Animate")) {
		ev.ToggleAnimated = true
	}
	if gui.Button(rl.Rectangle{X: bx + bw + float32(pad), Y: rowY(), Width: bw, Height: h}, "Theme: "+state.Theme) {
		ev.ToggleTheme = true
	}
	y += int32(h) + 6

	if gui.Button(rl.Rectangle{X: bx, Y: rowY(), Width: bw, Height: h}, "Reseed") {
		ev.Reseed = true
	}
	if gui.Button(rl.Rectangle{X: bx + bw + float32(pad), Y: rowY(), Width: bw, Height: h}, "Fit") {
		ev.Fit = true
	}
	y += int32(h) + 10

	sx := bx + float32(r.Style.LabelWidth)
	sw := float32(c.width) - float32(r.Style.LabelWidth) - float32(pad)*2 - 40

	style := r.Style
	slider := func(label string, value float32, rng controls.Range, format string) float32 {
		rl.DrawText(label, int32(bx), y+4, style.FontSize, style.LabelColor)
		v := gui.SliderBar(
			rl.Rectangle{X: sx, Y: rowY(), Width: sw, Height: h},
			"", fmt.Sprintf(format, value),
			value, rng.Min, rng.Max,
		)
		y += int32(h) + 6
		return v
	}

	moved := controls.Resolve(state, shown, controls.Sliders{
		FontFraction: slider("Font %", shown.FontFraction, controls.FontFraction, "%.1f"),
		Padding:      slider("Padding", shown.Padding, controls.Padding, "%.0f"),
		Count:        slider("Count", float32(shown.Count), controls.Count, "%.0f"),
		ParticleSize: slider("Size", shown.ParticleSize, controls.ParticleSize, "%.2f"),
	})
	moved.ToggleAnimated = ev.ToggleAnimated
	moved.ToggleTheme = ev.ToggleTheme
	moved.Reseed = ev.Reseed
	moved.Fit = ev.Fit
	return moved
}

// toggleText returns onText when on, otherwise offText.
func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
