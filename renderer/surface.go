// Package renderer draws offscreen surfaces in the raylib window.
package renderer

import (
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particletext/camera"
)

// SurfaceRenderer uploads the offscreen particle surface to a GPU texture and
// draws it through the camera.
type SurfaceRenderer struct {
	surfaceTex rl.Texture2D
	texW, texH int
	pixels     []color.RGBA

	initialized bool
}

// NewSurfaceRenderer creates a new surface renderer.
func NewSurfaceRenderer() *SurfaceRenderer {
	return &SurfaceRenderer{}
}

// Init allocates a w x h texture (must be called after the raylib window is
// created). A size change reallocates.
func (r *SurfaceRenderer) Init(w, h int) {
	if r.initialized && w == r.texW && h == r.texH {
		return
	}
	r.Unload()
	if w <= 0 || h <= 0 {
		return
	}

	r.texW = w
	r.texH = h
	r.pixels = make([]color.RGBA, w*h)

	img := rl.GenImageColor(w, h, rl.Blank)
	r.surfaceTex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.surfaceTex, rl.FilterPoint)
	rl.UnloadImage(img)

	r.initialized = true
}

// Update uploads the surface pixels to the GPU texture.
func (r *SurfaceRenderer) Update(img *image.RGBA) {
	b := img.Bounds()
	r.Init(b.Dx(), b.Dy())
	if !r.initialized {
		return
	}

	for y := 0; y < r.texH; y++ {
		row := img.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < r.texW; x++ {
			i := row + x*4
			r.pixels[y*r.texW+x] = color.RGBA{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: img.Pix[i+3]}
		}
	}

	rl.UpdateTexture(r.surfaceTex, r.pixels)
}

// Draw renders the surface at the camera's position and zoom.
func (r *SurfaceRenderer) Draw(cam *camera.Camera) {
	if !r.initialized {
		return
	}

	ox, oy := cam.Origin()
	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(r.texW), Height: float32(r.texH)}
	dstRect := rl.Rectangle{X: ox, Y: oy, Width: float32(r.texW) * cam.Zoom, Height: float32(r.texH) * cam.Zoom}

	// Surface pixels are premultiplied
	rl.BeginBlendMode(rl.BlendAlphaPremultiply)
	rl.DrawTexturePro(r.surfaceTex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
	rl.EndBlendMode()
}

// Unload frees GPU resources.
func (r *SurfaceRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.surfaceTex)
	r.pixels = nil
	r.texW, r.texH = 0, 0
	r.initialized = false
}
