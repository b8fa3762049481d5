// Package camera maps the text surface onto the screen.
package camera

// Camera controls the viewport onto the text surface.
// Supports pan and zoom; the surface is centered by default.
type Camera struct {
	// Position is the camera center in surface coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Surface dimensions (offscreen text surface)
	SurfaceW, SurfaceH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the surface with 1:1 zoom.
func New(viewportW, viewportH, surfaceW, surfaceH float32) *Camera {
	return &Camera{
		X:         surfaceW / 2,
		Y:         surfaceH / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		SurfaceW:  surfaceW,
		SurfaceH:  surfaceH,
		MinZoom:   0.25,
		MaxZoom:   4.0,
	}
}

// SurfaceToScreen converts surface coordinates to screen coordinates.
func (c *Camera) SurfaceToScreen(x, y float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (x-c.X)*c.Zoom
	sy = c.ViewportH/2 + (y-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToSurface converts screen coordinates to surface coordinates.
func (c *Camera) ScreenToSurface(sx, sy float32) (x, y float32) {
	x = c.X + (sx-c.ViewportW/2)/c.Zoom
	y = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return x, y
}

// Origin returns the screen position of the surface's top-left corner.
func (c *Camera) Origin() (sx, sy float32) {
	return c.SurfaceToScreen(0, 0)
}

// IsVisible returns true if a square at (x, y) with the given half-size
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(x, y, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(x-c.X) <= halfW && absf(y-c.Y) <= halfH
}

// Resize updates viewport dimensions. The surface stays centered on the
// same point.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// SetSurface replaces the surface dimensions and recenters on it.
func (c *Camera) SetSurface(surfaceW, surfaceH float32) {
	c.SurfaceW = surfaceW
	c.SurfaceH = surfaceH
	c.X = surfaceW / 2
	c.Y = surfaceH / 2
}

// Pan moves the camera by the given delta in screen pixels.
// The camera center stays within the surface.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, 0, c.SurfaceW)
	c.Y = clamp(c.Y+dy/c.Zoom, 0, c.SurfaceH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the surface point under the screen
// position (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	x, y := c.ScreenToSurface(sx, sy)
	c.ZoomBy(factor)
	c.X = x - (sx-c.ViewportW/2)/c.Zoom
	c.Y = y - (sy-c.ViewportH/2)/c.Zoom
}

// Fit zooms out so the whole surface fits the viewport, never magnifying
// beyond 1:1, and recenters.
func (c *Camera) Fit() {
	c.X = c.SurfaceW / 2
	c.Y = c.SurfaceH / 2
	if c.SurfaceW <= 0 || c.SurfaceH <= 0 {
		c.Zoom = 1.0
		return
	}
	zoom := c.ViewportW / c.SurfaceW
	if z := c.ViewportH / c.SurfaceH; z < zoom {
		zoom = z
	}
	if zoom > 1 {
		zoom = 1
	}
	c.SetZoom(zoom)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.SurfaceW / 2
	c.Y = c.SurfaceH / 2
	c.Zoom = 1.0
}

// VisibleBounds returns the surface-coordinate bounds of the visible area.
func (c *Camera) VisibleBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
