package glyph

import "math"

// Sizing holds the parameters that determine the drawing surface.
type Sizing struct {
	Fraction float64 // Font size as percent of viewport width
	MinSize  float64
	MaxSize  float64
	Padding  float64
}

// Surface is the drawing surface computed for one string at one viewport width.
type Surface struct {
	Width    int
	Height   int
	FontSize float64
}

// Empty reports whether the surface has no drawable area.
func (s Surface) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Area returns the surface area in pixels.
func (s Surface) Area() float64 {
	if s.Empty() {
		return 0
	}
	return float64(s.Width) * float64(s.Height)
}

// FontSize returns clamp(viewportWidth * fraction/100, min, max).
func FontSize(viewportWidth float64, sz Sizing) float64 {
	size := viewportWidth * (sz.Fraction / 100)
	return math.Min(math.Max(size, sz.MinSize), sz.MaxSize)
}

// Layout measures s at the responsive font size and returns the surface:
// (advance + 2*padding) by (fontSize + 2*padding), each rounded up.
func Layout(f *Font, s string, viewportWidth float64, sz Sizing) Surface {
	fontSize := FontSize(viewportWidth, sz)

	var width float64
	if f != nil && s != "" {
		width = f.Face(fontSize).Advance(s)
	}
	if math.IsNaN(width) || width < 0 {
		width = 0
	}

	return Surface{
		Width:    int(math.Ceil(width + sz.Padding*2)),
		Height:   int(math.Ceil(fontSize + sz.Padding*2)),
		FontSize: fontSize,
	}
}
