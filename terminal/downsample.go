package terminal

import (
	"image"
	"image/color"
)

// Grid is a downsampled, background-composited copy of a surface.
type Grid struct {
	W, H int
	Pix  []color.RGBA // row-major
}

// At returns the color at (x, y), or fallback outside the grid.
func (g Grid) At(x, y int, fallback color.RGBA) color.RGBA {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return fallback
	}
	return g.Pix[y*g.W+x]
}

// Downsample averages block x block tiles of a premultiplied RGBA image and
// composites each tile over bg. Partial tiles at the right and bottom edges
// average only the pixels they contain.
func Downsample(img *image.RGBA, block int, bg color.RGBA) Grid {
	if block < 1 {
		block = 1
	}
	b := img.Bounds()
	w := (b.Dx() + block - 1) / block
	h := (b.Dy() + block - 1) / block
	g := Grid{W: w, H: h, Pix: make([]color.RGBA, w*h)}

	for gy := 0; gy < h; gy++ {
		for gx := 0; gx < w; gx++ {
			var r, gr, bl, a, n uint32
			for y := gy * block; y < (gy+1)*block && y < b.Dy(); y++ {
				off := img.PixOffset(b.Min.X+gx*block, b.Min.Y+y)
				for x := gx * block; x < (gx+1)*block && x < b.Dx(); x++ {
					r += uint32(img.Pix[off])
					gr += uint32(img.Pix[off+1])
					bl += uint32(img.Pix[off+2])
					a += uint32(img.Pix[off+3])
					off += 4
					n++
				}
			}
			g.Pix[gy*w+gx] = over(r/n, gr/n, bl/n, a/n, bg)
		}
	}
	return g
}

// over composites a premultiplied color onto an opaque background.
func over(r, g, b, a uint32, bg color.RGBA) color.RGBA {
	inv := 255 - a
	return color.RGBA{
		R: uint8(min(255, r+(uint32(bg.R)*inv+127)/255)),
		G: uint8(min(255, g+(uint32(bg.G)*inv+127)/255)),
		B: uint8(min(255, b+(uint32(bg.B)*inv+127)/255)),
		A: 255,
	}
}
