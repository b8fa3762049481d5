package telemetry

import (
	"github.com/pthm-cable/particletext/systems"
)

// Collector accumulates field events within frame windows and produces FieldStats.
type Collector struct {
	windowFrames int64

	// Current window tracking
	windowStartFrame int64

	// Event counters for current window
	respawned      int
	removed        int
	spawned        int
	sampleFailures int
	resets         int
}

// NewCollector creates a collector with windows of windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{windowFrames: int64(windowFrames)}
}

// RecordFrame adds one frame's events.
func (c *Collector) RecordFrame(ev systems.FrameEvents) {
	c.respawned += ev.Respawned
	c.removed += ev.Removed
	c.spawned += ev.Spawned
	c.sampleFailures += ev.SampleFailures
}

// RecordReset records a full population reset and its seeding events.
func (c *Collector) RecordReset(ev systems.FrameEvents) {
	c.resets++
	c.spawned += ev.Spawned
	c.sampleFailures += ev.SampleFailures
}

// ShouldFlush reports whether the window ending at frame is complete.
func (c *Collector) ShouldFlush(frame int64) bool {
	return frame-c.windowStartFrame >= c.windowFrames
}

// Flush produces stats for the current window and starts a new one.
func (c *Collector) Flush(frame int64, field *systems.Field) FieldStats {
	particles := field.Particles()
	mask := field.Mask()
	target := field.TargetCount()

	stats := FieldStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   frame,
		AnimTime:         field.Time(),
		Population:       len(particles),
		Target:           target,
		Respawned:        c.respawned,
		Removed:          c.removed,
		Spawned:          c.spawned,
		SampleFailures:   c.sampleFailures,
		Resets:           c.resets,
		ParticleStats:    ComputeParticleStats(particles),
		MaskWidth:        mask.Width(),
		MaskHeight:       mask.Height(),
		VisiblePixels:    mask.VisibleCount(field.Params().Threshold),
	}
	if target > 0 {
		stats.Fill = float64(len(particles)) / float64(target)
	}

	c.reset(frame)
	return stats
}

func (c *Collector) reset(frame int64) {
	c.windowStartFrame = frame
	c.respawned = 0
	c.removed = 0
	c.spawned = 0
	c.sampleFailures = 0
	c.resets = 0
}
