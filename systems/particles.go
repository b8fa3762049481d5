package systems

import (
	"math"
	"math/rand"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/particletext/config"
	"github.com/pthm-cable/particletext/glyph"
	"github.com/pthm-cable/particletext/theme"
)

// Band selects which base color a particle is tinted with.
type Band uint8

const (
	BandPrimary Band = iota
	BandAccent
	BandNeutral

	numBands = 3
)

// Particle is a point sampled from the glyph mask.
type Particle struct {
	X, Y             float64 // Current position, eases toward the anchor
	AnchorX, AnchorY int     // Mask pixel this particle was sampled from
	Size             float64
	Life             int32 // Remaining frames
	MaxLife          int32
	Band             Band
	Opacity          float64
	OpacityDrift     float64 // Per-frame opacity change
	Phase            float64 // Offset for all periodic modulation
}

// Params controls sampling, spawning and the per-frame step.
type Params struct {
	Count         int     // Target count at the reference area
	Size          float64 // Sizes are drawn from [0.5, 0.5+Size)
	ReferenceArea float64
	Threshold     uint8 // Mask alpha must exceed this
	MaxAttempts   int   // Rejection sampling bound
	LifeMin       int32 // Frames
	LifeMax       int32 // Frames, exclusive
	Ease          float64
	TimeStep      float64
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		Count:         3000,
		Size:          1,
		ReferenceArea: 800 * 200,
		Threshold:     glyph.DefaultThreshold,
		MaxAttempts:   100,
		LifeMin:       100,
		LifeMax:       300,
		Ease:          0.1,
		TimeStep:      0.01,
	}
}

// ParamsFromConfig builds Params from the particles section.
func ParamsFromConfig(cfg *config.Config) Params {
	pc := cfg.Particles
	return Params{
		Count:         pc.Count,
		Size:          pc.Size,
		ReferenceArea: cfg.Derived.ReferenceArea,
		Threshold:     pc.AlphaThreshold,
		MaxAttempts:   pc.MaxSampleAttempts,
		LifeMin:       int32(pc.LifeMin),
		LifeMax:       int32(pc.LifeMax),
		Ease:          pc.Ease,
		TimeStep:      pc.TimeStep,
	}
}

// Painter receives the squares produced by one frame.
type Painter interface {
	Clear()
	// FillSquare fills an axis-aligned square centered on (cx, cy).
	FillSquare(cx, cy, size float64, c gg.RGBA)
}

// FrameEvents counts population changes during one Step.
type FrameEvents struct {
	Respawned      int // Expired particles replaced in place
	Removed        int // Expired particles dropped because sampling failed
	Spawned        int // Particles appended while topping up
	SampleFailures int // Spawn attempts that found no visible pixel
}

// Field owns the mask and the particle population. It is not safe for
// concurrent use: one frame loop drives it.
type Field struct {
	params    Params
	rng       *rand.Rand
	mask      *glyph.Mask
	particles []Particle
	time      float64
	animated  bool
	events    FrameEvents
}

// NewField creates an empty field. Call Reset with a mask to populate it.
func NewField(params Params, rng *rand.Rand) *Field {
	if params.MaxAttempts < 1 {
		params.MaxAttempts = 1
	}
	if params.LifeMax <= params.LifeMin {
		params.LifeMax = params.LifeMin + 1
	}
	return &Field{
		params:   params,
		rng:      rng,
		mask:     glyph.NewMask(0, 0, nil),
		animated: true,
	}
}

// Params returns the active parameters.
func (f *Field) Params() Params {
	return f.params
}

// SetAnimated switches between animated and static rendering.
// It takes effect on the next Step and does not touch the population.
func (f *Field) SetAnimated(animated bool) {
	f.animated = animated
}

// Animated reports whether animation is enabled.
func (f *Field) Animated() bool {
	return f.animated
}

// Mask returns the mask particles are sampled from.
func (f *Field) Mask() *glyph.Mask {
	return f.mask
}

// Particles returns the live population. The slice is owned by the field
// and is only valid until the next Step or Reset.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Time returns the animation time accumulator.
func (f *Field) Time() float64 {
	return f.time
}

// LastEvents returns the population changes of the most recent Step or Reset.
func (f *Field) LastEvents() FrameEvents {
	return f.events
}

// TargetCount returns the population target for the current mask.
func (f *Field) TargetCount() int {
	return TargetCount(f.params, f.mask.Width(), f.mask.Height())
}

// TargetCount returns floor(Count * min(1, width*height / ReferenceArea)).
func TargetCount(params Params, width, height int) int {
	area := float64(width) * float64(height)
	if area <= 0 || params.ReferenceArea <= 0 {
		return 0
	}
	scale := math.Min(area/params.ReferenceArea, 1)
	return int(math.Floor(float64(params.Count) * scale))
}

// Reset replaces the mask, discards every particle and reseeds up to the
// target count. Sampling failures leave the population short.
func (f *Field) Reset(mask *glyph.Mask) int {
	if mask == nil {
		mask = glyph.NewMask(0, 0, nil)
	}
	f.mask = mask
	f.particles = f.particles[:0]
	f.events = FrameEvents{}
	f.replenish()
	return len(f.particles)
}

// Sample picks uniformly random pixels until one is visible, giving up after
// MaxAttempts. ok is false when no visible pixel was found.
func (f *Field) Sample() (x, y int, ok bool) {
	w, h := f.mask.Width(), f.mask.Height()
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	for attempt := 0; attempt < f.params.MaxAttempts; attempt++ {
		x = f.rng.Intn(w)
		y = f.rng.Intn(h)
		if f.mask.Visible(x, y, f.params.Threshold) {
			return x, y, true
		}
	}
	return 0, 0, false
}

// Spawn samples an anchor and draws the particle's fixed attributes.
// ok is false when sampling failed; that is not an error.
func (f *Field) Spawn() (Particle, bool) {
	x, y, ok := f.Sample()
	if !ok {
		f.events.SampleFailures++
		return Particle{}, false
	}

	lifeSpan := f.params.LifeMax - f.params.LifeMin
	maxLife := f.params.LifeMin + int32(f.rng.Float64()*float64(lifeSpan))

	return Particle{
		X:            float64(x),
		Y:            float64(y),
		AnchorX:      x,
		AnchorY:      y,
		Size:         f.rng.Float64()*f.params.Size + 0.5,
		Life:         maxLife,
		MaxLife:      maxLife,
		Band:         Band(f.rng.Intn(numBands)),
		Opacity:      f.rng.Float64()*0.6 + 0.4,
		OpacityDrift: (f.rng.Float64() - 0.5) * 0.01,
		Phase:        f.rng.Float64() * 2 * math.Pi,
	}, true
}

// Step advances one frame: every particle eases toward its anchor, is
// painted, and ages; expired particles are respawned in place or dropped;
// finally the population is topped up toward the target.
func (f *Field) Step(palette theme.Palette, painter Painter) FrameEvents {
	f.events = FrameEvents{}
	f.time += f.params.TimeStep
	painter.Clear()
	static := StaticColor(palette)

	alive := 0
	for i := range f.particles {
		p := &f.particles[i]

		p.X += (float64(p.AnchorX) - p.X) * f.params.Ease
		p.Y += (float64(p.AnchorY) - p.Y) * f.params.Ease

		if f.animated {
			f.paintAnimated(p, palette, painter)
		} else {
			painter.FillSquare(p.X, p.Y, p.Size, static)
		}

		p.Life--
		if p.Life <= 0 {
			np, ok := f.Spawn()
			if !ok {
				f.events.Removed++
				continue
			}
			*p = np
			f.events.Respawned++
		}

		f.particles[alive] = *p
		alive++
	}
	f.particles = f.particles[:alive]

	f.replenish()
	return f.events
}

// replenish appends particles until the target is reached. Each missing
// slot gets one spawn attempt, so a sparse mask leaves the population short.
func (f *Field) replenish() {
	for deficit := f.TargetCount() - len(f.particles); deficit > 0; deficit-- {
		np, ok := f.Spawn()
		if !ok {
			continue
		}
		f.particles = append(f.particles, np)
		f.events.Spawned++
	}
}

func (f *Field) paintAnimated(p *Particle, palette theme.Palette, painter Painter) {
	t := f.time

	p.Opacity = clamp(p.Opacity+p.OpacityDrift, 0.3, 0.9)
	opacity := PulseOpacity(p.Opacity, t, p.Phase)

	c := ToRGBA(BandColor(p.Band, palette, t, p.Phase), opacity)

	size := p.Size * (1 + math.Sin(t*1.5+p.Phase)*0.2)
	painter.FillSquare(p.X, p.Y, size, c)
}
