// Package theme reads the three base colors the particle field is tinted with.
//
// Colors come from named style properties ("--primary", "--accent",
// "--foreground") whose values have the shape "H S% L%". The field reads
// them once per frame through a Source, so swapping the active property set
// recolors the field on the next frame without a reset.
package theme

import (
	"errors"
	"fmt"
	"strings"
)

// Property names read each frame.
const (
	PropPrimary    = "--primary"
	PropAccent     = "--accent"
	PropForeground = "--foreground"

	// PropBackground holds a hex color for the page behind the field.
	// It is not part of the palette.
	PropBackground = "--background"
)

// ErrUnknownTheme is returned when a theme name has no property set.
var ErrUnknownTheme = errors.New("unknown theme")

// HSL is a color triple: hue in degrees, saturation and lightness in percent.
type HSL struct {
	H, S, L float64
}

// Fallback holds the per-component defaults for missing or unparsable values.
var Fallback = HSL{H: 220, S: 80, L: 50}

// Palette is the set of base colors for one frame.
type Palette struct {
	Primary    HSL
	Accent     HSL
	Foreground HSL
}

// Source looks up style property values by name.
type Source interface {
	Lookup(name string) (string, bool)
}

// Properties is a static property set.
type Properties map[string]string

// Lookup implements Source.
func (p Properties) Lookup(name string) (string, bool) {
	v, ok := p[name]
	return v, ok
}

// Read parses the three base colors from src. Absent properties fall back
// component-wise to Fallback; Read never fails.
func Read(src Source) Palette {
	return Palette{
		Primary:    lookupHSL(src, PropPrimary),
		Accent:     lookupHSL(src, PropAccent),
		Foreground: lookupHSL(src, PropForeground),
	}
}

func lookupHSL(src Source, name string) HSL {
	if src == nil {
		return Fallback
	}
	v, _ := src.Lookup(name)
	return ParseHSL(v)
}

// ParseHSL parses an "H S% L%" string. Each component is read as a leading
// integer (so "80%" and "80.5%" both read as 80). A component that is
// missing, unparsable, or zero takes the matching Fallback component.
func ParseHSL(s string) HSL {
	parts := strings.Fields(strings.TrimSpace(s))
	return HSL{
		H: component(parts, 0, Fallback.H),
		S: component(parts, 1, Fallback.S),
		L: component(parts, 2, Fallback.L),
	}
}

func component(parts []string, i int, fallback float64) float64 {
	if i >= len(parts) {
		return fallback
	}
	n, ok := leadingInt(parts[i])
	if !ok || n == 0 {
		return fallback
	}
	return float64(n)
}

// leadingInt parses an optionally signed run of digits at the start of s.
func leadingInt(s string) (int, bool) {
	neg := false
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	start := i
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i == start {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// String formats the color back into property form.
func (c HSL) String() string {
	return fmt.Sprintf("%g %g%% %g%%", c.H, c.S, c.L)
}
