package systems

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/particletext/theme"
)

// BandColor perturbs the band's base color with slow sinusoids of the
// animation time. Each band has its own frequencies and clamp ranges.
func BandColor(b Band, palette theme.Palette, t, phase float64) theme.HSL {
	switch b {
	case BandPrimary:
		base := palette.Primary
		return theme.HSL{
			H: base.H + math.Sin(t+phase)*10,
			S: math.Max(40, base.S+math.Sin(t*0.5+phase)*20),
			L: clamp(base.L+math.Sin(t*0.3+phase)*15, 30, 80),
		}
	case BandAccent:
		base := palette.Accent
		return theme.HSL{
			H: base.H + math.Sin(t*0.7+phase)*15,
			S: math.Max(30, base.S+math.Sin(t*0.4+phase)*25),
			L: clamp(base.L+math.Sin(t*0.6+phase)*20, 25, 75),
		}
	default:
		// Neutral band: primary hue swung wide, fixed mid saturation and lightness.
		return theme.HSL{
			H: palette.Primary.H + math.Sin(t*0.3+phase)*30,
			S: math.Max(20, 60+math.Sin(t*0.2+phase)*20),
			L: clamp(55+math.Sin(t*0.4+phase)*15, 40, 70),
		}
	}
}

// PulseOpacity adds the pulse sin(2t+phase)*0.2 to a base opacity and
// floors the result at 0.4.
func PulseOpacity(base, t, phase float64) float64 {
	return math.Max(0.4, base+math.Sin(t*2+phase)*0.2)
}

// StaticColor is the fill used when animation is off: the primary color,
// fully opaque.
func StaticColor(palette theme.Palette) gg.RGBA {
	return ToRGBA(palette.Primary, 1)
}

// ToRGBA converts a percent-based HSL color to RGBA. Saturation and
// lightness are clamped to [0, 100] and alpha to [0, 1].
func ToRGBA(c theme.HSL, alpha float64) gg.RGBA {
	rgba := gg.HSL(c.H, clamp(c.S, 0, 100)/100, clamp(c.L, 0, 100)/100)
	rgba.A = clamp(alpha, 0, 1)
	return rgba
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
