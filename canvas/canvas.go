// Package canvas paints particle squares onto an offscreen gg surface.
package canvas

import (
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"
)

// Painter is a gg-backed surface the size of the text surface. Frames are
// composited from it by the window and written out by headless runs.
type Painter struct {
	dc            *gg.Context
	width, height int
	background    gg.RGBA
	opaque        bool

	err   error // first fill error since the last Clear
	fills int   // squares painted since the last Clear
}

// New creates a painter for a w x h surface. Empty dimensions are allowed;
// such a painter paints nothing.
func New(w, h int) *Painter {
	p := &Painter{}
	p.Resize(w, h)
	return p
}

// Resize reallocates the surface. Contents are discarded.
func (p *Painter) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		p.closeContext()
		p.width, p.height = 0, 0
		return
	}
	if p.dc != nil && p.width == w && p.height == h {
		return
	}
	p.closeContext()
	p.dc = gg.NewContext(w, h)
	p.width, p.height = w, h
}

// SetBackground makes Clear fill with c instead of transparency.
func (p *Painter) SetBackground(c gg.RGBA) {
	p.background = c
	p.opaque = true
}

// Width returns the surface width.
func (p *Painter) Width() int { return p.width }

// Height returns the surface height.
func (p *Painter) Height() int { return p.height }

// Clear wipes the surface.
func (p *Painter) Clear() {
	p.err = nil
	p.fills = 0
	if p.dc == nil {
		return
	}
	if p.opaque {
		p.dc.ClearWithColor(p.background)
	} else {
		p.dc.Clear()
	}
}

// FillSquare fills an axis-aligned square centered on (cx, cy).
func (p *Painter) FillSquare(cx, cy, size float64, c gg.RGBA) {
	if p.dc == nil || size <= 0 {
		return
	}
	p.dc.SetRGBA(c.R, c.G, c.B, c.A)
	p.dc.DrawRectangle(cx-size/2, cy-size/2, size, size)
	if err := p.dc.Fill(); err != nil && p.err == nil {
		p.err = fmt.Errorf("filling square at (%.1f, %.1f): %w", cx, cy, err)
		return
	}
	p.fills++
}

// Fills returns the number of squares painted since the last Clear.
func (p *Painter) Fills() int { return p.fills }

// Err returns the first fill error since the last Clear.
func (p *Painter) Err() error { return p.err }

// RGBA returns a copy of the surface pixels. An empty surface yields an
// empty image.
func (p *Painter) RGBA() *image.RGBA {
	if p.dc == nil {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	if img, ok := p.dc.Image().(*image.RGBA); ok {
		return img
	}
	src := p.dc.Image()
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, src.At(x, y))
		}
	}
	return dst
}

// EncodePNG writes the surface as PNG.
func (p *Painter) EncodePNG(w io.Writer) error {
	if p.dc == nil {
		return fmt.Errorf("encoding empty surface")
	}
	return p.dc.EncodePNG(w)
}

// Close releases the gg context.
func (p *Painter) Close() error {
	return p.closeContext()
}

func (p *Painter) closeContext() error {
	if p.dc == nil {
		return nil
	}
	err := p.dc.Close()
	p.dc = nil
	return err
}
