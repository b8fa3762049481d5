// Glyph mask preview tool - interactive view of the sampling mask with sliders.
//
// Usage: go run ./cmd/maskpreview -text "Hello"
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particletext/config"
	"github.com/pthm-cable/particletext/glyph"
	"github.com/pthm-cable/particletext/systems"
)

const (
	windowWidth  = 1100
	windowHeight = 640
	previewWidth = 700
	panelWidth   = windowWidth - previewWidth - 30
)

// MaskParams holds the values that shape the mask.
type MaskParams struct {
	ViewportWidth float32
	Fraction      float32
	Padding       float32
	Threshold     float32
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	textFlag := flag.String("text", "", "Text to preview (empty = use config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	str := cfg.Text.Value
	if *textFlag != "" {
		str = *textFlag
	}

	font, err := glyph.LoadFont(cfg.Text.FontFamily)
	if err != nil {
		slog.Error("failed to load font", "family", cfg.Text.FontFamily, "error", err)
		os.Exit(1)
	}
	defer font.Close()

	rl.InitWindow(windowWidth, windowHeight, "Glyph Mask Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	defaults := MaskParams{
		ViewportWidth: float32(cfg.Screen.Width),
		Fraction:      float32(cfg.Text.FontFraction),
		Padding:       float32(cfg.Text.Padding),
		Threshold:     float32(cfg.Particles.AlphaThreshold),
	}
	params := defaults
	particleParams := systems.ParamsFromConfig(cfg)

	var (
		texture    rl.Texture2D
		haveTex    bool
		surf       glyph.Surface
		mask       *glyph.Mask
		visible    int
		needsRegen = true
	)
	defer func() {
		if haveTex {
			rl.UnloadTexture(texture)
		}
	}()

	for !rl.WindowShouldClose() {
		if needsRegen {
			sz := glyph.Sizing{
				Fraction: float64(params.Fraction),
				MinSize:  cfg.Text.MinFontSize,
				MaxSize:  cfg.Text.MaxFontSize,
				Padding:  float64(params.Padding),
			}
			surf = glyph.Layout(font, str, float64(params.ViewportWidth), sz)
			mask = glyph.Rasterize(font, str, surf)
			visible = mask.VisibleCount(uint8(params.Threshold))

			if haveTex {
				rl.UnloadTexture(texture)
				haveTex = false
			}
			if !surf.Empty() {
				texture = maskTexture(mask, uint8(params.Threshold))
				haveTex = true
			}
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview, scaled down to fit
		if haveTex {
			scale := float32(1)
			if w := float32(surf.Width); w > previewWidth {
				scale = previewWidth / w
			}
			rl.DrawTexturePro(
				texture,
				rl.Rectangle{X: 0, Y: 0, Width: float32(surf.Width), Height: float32(surf.Height)},
				rl.Rectangle{X: 10, Y: 10, Width: float32(surf.Width) * scale, Height: float32(surf.Height) * scale},
				rl.Vector2{X: 0, Y: 0},
				0,
				rl.White,
			)
			rl.DrawRectangleLines(10, 10, int32(float32(surf.Width)*scale), int32(float32(surf.Height)*scale), rl.DarkGray)
		} else {
			rl.DrawText("Empty surface", 15, 15, 20, rl.Maroon)
		}

		// Draw stats
		coverage := float32(0)
		if area := surf.Area(); area > 0 {
			coverage = float32(visible) / float32(area) * 100
		}

		statsY := int32(windowHeight - 90)
		rl.DrawText(fmt.Sprintf("Text: %q", str), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Surface: %dx%d  Font size: %.1f", surf.Width, surf.Height, surf.FontSize), 15, statsY+20, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Visible: %d (%.1f%%)  Target particles: %d", visible, coverage, systems.TargetCount(particleParams, surf.Width, surf.Height)), 15, statsY+40, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewWidth + 20)
		panelY := float32(10)

		rl.DrawText("Mask Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label string, value, lo, hi float32, format string) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
				value, lo, hi,
			)
			rl.DrawText(fmt.Sprintf(format, value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			panelY += 35
			return v
		}

		if v := slider("Viewport width", params.ViewportWidth, 200, 3000, "%.0f"); v != params.ViewportWidth {
			params.ViewportWidth = v
			needsRegen = true
		}
		if v := slider("Font size (% of viewport)", params.Fraction, 2, 20, "%.1f"); v != params.Fraction {
			params.Fraction = v
			needsRegen = true
		}
		if v := slider("Padding", params.Padding, 0, 60, "%.0f"); v != params.Padding {
			params.Padding = v
			needsRegen = true
		}
		if v := slider("Alpha threshold", params.Threshold, 0, 254, "%.0f"); v != params.Threshold {
			params.Threshold = v
			needsRegen = true
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		yaml := fmt.Sprintf("text:\n  font_fraction: %.1f\n  padding: %.0f\nparticles:\n  alpha_threshold: %.0f",
			params.Fraction, params.Padding, params.Threshold)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// maskTexture uploads the mask as grayscale, tinting pixels above the
// threshold.
func maskTexture(mask *glyph.Mask, threshold uint8) rl.Texture2D {
	w, h := mask.Width(), mask.Height()
	img := rl.GenImageColor(w, h, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	pixels := make([]color.RGBA, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := mask.Alpha(x, y)
			c := color.RGBA{R: a / 3, G: a / 3, B: a / 3, A: 255}
			if a > threshold {
				c = color.RGBA{R: 40, G: a, B: 120, A: 255}
			}
			pixels[y*w+x] = c
		}
	}
	rl.UpdateTexture(texture, pixels)
	return texture
}
