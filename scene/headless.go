package scene

import (
	"context"
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/particletext/canvas"
	"github.com/pthm-cable/particletext/systems"
	"github.com/pthm-cable/particletext/telemetry"
	"github.com/pthm-cable/particletext/theme"
)

// Headless paints frames on a software canvas as fast as possible and saves
// a PNG every FrameInterval frames.
type Headless struct {
	MaxFrames     int64 // 0 = until cancelled
	FrameInterval int64 // 0 = never save frames
	Output        *telemetry.OutputManager

	canvas *canvas.Painter
	saved  int
}

// NewHeadless creates a headless driver.
func NewHeadless(maxFrames, frameInterval int64, output *telemetry.OutputManager) *Headless {
	return &Headless{
		MaxFrames:     maxFrames,
		FrameInterval: frameInterval,
		Output:        output,
		canvas:        canvas.New(0, 0),
	}
}

// Next implements Driver.
func (h *Headless) Next(ctx context.Context, s *Scene) bool {
	if h.MaxFrames > 0 && s.FrameCount() >= h.MaxFrames {
		slog.Info("max frames reached", "frame", s.FrameCount())
		return false
	}
	return true
}

// Painter implements Driver.
func (h *Headless) Painter(s *Scene) systems.Painter {
	surf := s.Surface()
	h.canvas.Resize(surf.Width, surf.Height)

	if v, ok := lookup(s.Theme(), theme.PropBackground); ok {
		h.canvas.SetBackground(gg.Hex(v))
	}
	return h.canvas
}

// Present implements Driver. Frame write failures are logged, not fatal.
func (h *Headless) Present(s *Scene) error {
	if err := h.canvas.Err(); err != nil {
		slog.Error("failed to paint frame", "frame", s.FrameCount(), "error", err)
	}
	if h.FrameInterval <= 0 || s.FrameCount()%h.FrameInterval != 0 {
		return nil
	}
	if h.canvas.Width() == 0 {
		return nil
	}

	path, err := h.Output.WriteFrame(s.FrameCount(), h.canvas)
	if err != nil {
		slog.Error("failed to write frame", "frame", s.FrameCount(), "error", err)
		return nil
	}
	if path != "" {
		h.saved++
		slog.Debug("frame saved", "frame", s.FrameCount(), "path", path)
	}
	return nil
}

// Saved returns the number of frames written.
func (h *Headless) Saved() int { return h.saved }

// Canvas returns the software canvas frames are painted on.
func (h *Headless) Canvas() *canvas.Painter { return h.canvas }

// Close releases the canvas.
func (h *Headless) Close() error { return h.canvas.Close() }

func lookup(src theme.Source, name string) (string, bool) {
	if src == nil {
		return "", false
	}
	return src.Lookup(name)
}
