package glyph

// DefaultThreshold is the alpha a pixel must exceed to be sample-eligible.
const DefaultThreshold uint8 = 128

// Mask is a per-pixel opacity field. It is read-only once built.
type Mask struct {
	width  int
	height int
	alpha  []uint8
}

// NewMask builds a mask from row-major alpha values. Missing values read as
// zero and extra values are ignored.
func NewMask(width, height int, alpha []uint8) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m := &Mask{
		width:  width,
		height: height,
		alpha:  make([]uint8, width*height),
	}
	copy(m.alpha, alpha)
	return m
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// Alpha returns the alpha at (x, y), or 0 outside the mask.
func (m *Mask) Alpha(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0
	}
	return m.alpha[y*m.width+x]
}

// Visible reports whether the alpha at (x, y) exceeds threshold.
func (m *Mask) Visible(x, y int, threshold uint8) bool {
	return m.Alpha(x, y) > threshold
}

// VisibleCount returns the number of pixels whose alpha exceeds threshold.
func (m *Mask) VisibleCount(threshold uint8) int {
	n := 0
	for _, a := range m.alpha {
		if a > threshold {
			n++
		}
	}
	return n
}

// Equal reports whether two masks have identical dimensions and alpha.
func (m *Mask) Equal(o *Mask) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.width != o.width || m.height != o.height {
		return false
	}
	for i := range m.alpha {
		if m.alpha[i] != o.alpha[i] {
			return false
		}
	}
	return true
}
