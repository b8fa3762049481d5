package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/particletext/systems"
)

// FieldStats holds aggregated statistics for one stats window.
type FieldStats struct {
	WindowStartFrame int64   `csv:"-"`
	WindowEndFrame   int64   `csv:"window_end"`
	AnimTime         float64 `csv:"anim_time"`

	// Population at window end
	Population int     `csv:"population"`
	Target     int     `csv:"target"`
	Fill       float64 `csv:"fill"` // Population / Target

	// Events during window
	Respawned      int `csv:"respawned"`
	Removed        int `csv:"removed"`
	Spawned        int `csv:"spawned"`
	SampleFailures int `csv:"sample_failures"`
	Resets         int `csv:"resets"`

	// Particle distribution (sampled at window end)
	ParticleStats

	// Mask
	MaskWidth     int `csv:"mask_width"`
	MaskHeight    int `csv:"mask_height"`
	VisiblePixels int `csv:"visible_pixels"`
}

// ParticleStats summarizes a population snapshot.
type ParticleStats struct {
	OpacityMean float64 `csv:"opacity_mean"`
	OpacityStd  float64 `csv:"opacity_std"`
	SizeMean    float64 `csv:"size_mean"`

	// Remaining life as a fraction of max life
	LifeP10 float64 `csv:"life_p10"`
	LifeP50 float64 `csv:"life_p50"`
	LifeP90 float64 `csv:"life_p90"`

	Primary int `csv:"band_primary"`
	Accent  int `csv:"band_accent"`
	Neutral int `csv:"band_neutral"`
}

// ComputeParticleStats summarizes the given particles. An empty population
// yields zero values.
func ComputeParticleStats(particles []systems.Particle) ParticleStats {
	var s ParticleStats
	n := len(particles)
	if n == 0 {
		return s
	}

	opacity := make([]float64, n)
	size := make([]float64, n)
	life := make([]float64, n)
	for i, p := range particles {
		opacity[i] = p.Opacity
		size[i] = p.Size
		if p.MaxLife > 0 {
			life[i] = float64(p.Life) / float64(p.MaxLife)
		}
		switch p.Band {
		case systems.BandPrimary:
			s.Primary++
		case systems.BandAccent:
			s.Accent++
		default:
			s.Neutral++
		}
	}

	s.OpacityMean, s.OpacityStd = stat.PopMeanStdDev(opacity, nil)
	s.SizeMean = stat.Mean(size, nil)

	sort.Float64s(life)
	s.LifeP10 = stat.Quantile(0.10, stat.Empirical, life, nil)
	s.LifeP50 = stat.Quantile(0.50, stat.Empirical, life, nil)
	s.LifeP90 = stat.Quantile(0.90, stat.Empirical, life, nil)

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s FieldStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("frame", s.WindowEndFrame),
		slog.Int("population", s.Population),
		slog.Int("target", s.Target),
		slog.Float64("fill", s.Fill),
		slog.Int("respawned", s.Respawned),
		slog.Int("removed", s.Removed),
		slog.Int("spawned", s.Spawned),
		slog.Int("sample_failures", s.SampleFailures),
		slog.Int("resets", s.Resets),
		slog.Float64("opacity_mean", s.OpacityMean),
		slog.Float64("life_p50", s.LifeP50),
	)
}
