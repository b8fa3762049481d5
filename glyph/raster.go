package glyph

import (
	"image"
	"image/color"

	"github.com/gogpu/gg/text"
)

// Rasterize draws s centered on a surface-sized offscreen image and keeps
// only the alpha channel. The offscreen image is discarded; nothing drawn
// here is ever shown.
func Rasterize(f *Font, s string, surf Surface) *Mask {
	if surf.Empty() {
		return NewMask(0, 0, nil)
	}
	if f == nil || s == "" {
		return NewMask(surf.Width, surf.Height, nil)
	}

	img := image.NewRGBA(image.Rect(0, 0, surf.Width, surf.Height))
	face := f.Face(surf.FontSize)

	// Center horizontally on the advance and vertically on the em box middle.
	m := face.Metrics()
	x := (float64(surf.Width) - face.Advance(s)) / 2
	y := float64(surf.Height)/2 + (m.Ascent-m.Descent)/2

	text.Draw(img, s, face, x, y, color.White)

	alpha := make([]uint8, surf.Width*surf.Height)
	for i := range alpha {
		alpha[i] = img.Pix[i*4+3]
	}
	return NewMask(surf.Width, surf.Height, alpha)
}
