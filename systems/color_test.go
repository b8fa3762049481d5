package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/particletext/theme"
)

func TestBandColorRanges(t *testing.T) {
	palette := theme.Palette{
		Primary: theme.HSL{H: 200, S: 10, L: 95},
		Accent:  theme.HSL{H: 300, S: 5, L: 5},
	}

	tests := []struct {
		band         Band
		minS         float64
		minL, maxL   float64
		baseH, swing float64
	}{
		{BandPrimary, 40, 30, 80, 200, 10},
		{BandAccent, 30, 25, 75, 300, 15},
		{BandNeutral, 20, 40, 70, 200, 30},
	}

	for _, tt := range tests {
		for step := 0; step < 1000; step++ {
			tm := float64(step) * 0.01
			for _, phase := range []float64{0, 1, math.Pi, 5} {
				c := BandColor(tt.band, palette, tm, phase)
				if c.S < tt.minS {
					t.Fatalf("band %d: saturation %v below %v", tt.band, c.S, tt.minS)
				}
				if c.L < tt.minL || c.L > tt.maxL {
					t.Fatalf("band %d: lightness %v outside [%v, %v]", tt.band, c.L, tt.minL, tt.maxL)
				}
				if math.Abs(c.H-tt.baseH) > tt.swing+1e-9 {
					t.Fatalf("band %d: hue %v more than %v from %v", tt.band, c.H, tt.swing, tt.baseH)
				}
			}
		}
	}
}

func TestBandColorAtZeroTime(t *testing.T) {
	palette := theme.Palette{
		Primary: theme.HSL{H: 210, S: 90, L: 60},
		Accent:  theme.HSL{H: 330, S: 80, L: 65},
	}

	got := BandColor(BandPrimary, palette, 0, 0)
	if got != palette.Primary {
		t.Errorf("primary band at t=0 = %+v, want base %+v", got, palette.Primary)
	}
	got = BandColor(BandAccent, palette, 0, 0)
	if got != palette.Accent {
		t.Errorf("accent band at t=0 = %+v, want base %+v", got, palette.Accent)
	}
	got = BandColor(BandNeutral, palette, 0, 0)
	want := theme.HSL{H: 210, S: 60, L: 55}
	if got != want {
		t.Errorf("neutral band at t=0 = %+v, want %+v", got, want)
	}
}

func TestPulseOpacity(t *testing.T) {
	tests := []struct {
		name            string
		base, tm, phase float64
		want            float64
	}{
		{"no pulse at zero", 0.6, 0, 0, 0.6},
		{"peak pulse", 0.6, math.Pi / 4, 0, 0.8},
		{"floored", 0.3, -math.Pi / 4, 0, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PulseOpacity(tt.base, tt.tm, tt.phase)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PulseOpacity(%v, %v, %v) = %v, want %v", tt.base, tt.tm, tt.phase, got, tt.want)
			}
		})
	}
}

func TestToRGBAClamps(t *testing.T) {
	c := ToRGBA(theme.HSL{H: 0, S: 150, L: 50}, 1.4)
	if c.A != 1 {
		t.Errorf("alpha = %v, want 1", c.A)
	}
	if c.R > 1 || c.G < 0 || c.B < 0 {
		t.Errorf("color out of range: %+v", c)
	}
	if math.Abs(c.R-1) > 1e-9 {
		t.Errorf("pure red at s=100%% l=50%%: R = %v, want 1", c.R)
	}
}
