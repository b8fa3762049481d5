// Package controls holds the values the window's control panel edits and
// decides when a slider actually moved.
package controls

import "math"

// Range is an inclusive slider range.
type Range struct {
	Min, Max float32
}

// Clamp returns v limited to the range.
func (r Range) Clamp(v float32) float32 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Slider ranges
var (
	FontFraction = Range{Min: 2, Max: 20}
	Padding      = Range{Min: 0, Max: 60}
	Count        = Range{Min: 100, Max: 10000}
	ParticleSize = Range{Min: 0.5, Max: 4}
)

// State is the set of values the panel edits.
type State struct {
	Animated     bool
	Theme        string
	FontFraction float32
	Padding      float32
	Count        int
	ParticleSize float32
}

// Clamped returns the state with every slider value inside its range. This
// is what the sliders show; configured values outside a range are left
// alone until the user moves that slider.
func (s State) Clamped() State {
	s.FontFraction = FontFraction.Clamp(s.FontFraction)
	s.Padding = Padding.Clamp(s.Padding)
	s.Count = int(Count.Clamp(float32(s.Count)))
	s.ParticleSize = ParticleSize.Clamp(s.ParticleSize)
	return s
}

// Sliders holds the raw values returned by the sliders this frame.
type Sliders struct {
	FontFraction float32
	Padding      float32
	Count        float32
	ParticleSize float32
}

// Events reports what the user changed this frame.
type Events struct {
	ToggleAnimated bool
	ToggleTheme    bool
	Reseed         bool
	Fit            bool
	SizingChanged  bool // FontFraction or Padding moved
	ParamsChanged  bool // Count or ParticleSize moved
	State          State
}

// Resolve compares slider output against the values the sliders were drawn
// with. Only a slider that moved replaces its field in the returned state;
// the rest keep the caller's unclamped values.
func Resolve(state State, shown State, sl Sliders) Events {
	ev := Events{State: state}

	padding := float32(math.Round(float64(sl.Padding)))
	if sl.FontFraction != shown.FontFraction {
		ev.SizingChanged = true
		ev.State.FontFraction = sl.FontFraction
	}
	if padding != shown.Padding {
		ev.SizingChanged = true
		ev.State.Padding = padding
	}

	if n := int(math.Round(float64(sl.Count))); n != shown.Count {
		ev.ParamsChanged = true
		ev.State.Count = n
	}
	if sl.ParticleSize != shown.ParticleSize {
		ev.ParamsChanged = true
		ev.State.ParticleSize = sl.ParticleSize
	}
	return ev
}
