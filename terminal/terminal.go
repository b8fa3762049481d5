// Package terminal renders the particle field in a terminal with half-block
// characters, two surface tiles per cell.
package terminal

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"

	"github.com/pthm-cable/particletext/canvas"
	"github.com/pthm-cable/particletext/scene"
	"github.com/pthm-cable/particletext/systems"
	"github.com/pthm-cable/particletext/theme"
)

const halfBlock = '▀'

// Options configures the terminal frontend.
type Options struct {
	CellWidth float64 // Surface pixels per terminal column
	TargetFPS int
	MaxFrames int64 // 0 = until quit
}

// Terminal is a scene.Driver backed by a tcell screen.
type Terminal struct {
	screen tcell.Screen
	opts   Options
	block  int

	events    chan tcell.Event
	done      chan struct{} // Closed by Close
	stopped   chan struct{} // Closed when the event goroutine exits
	closeOnce sync.Once
	ticker    *time.Ticker

	canvas     *canvas.Painter
	background color.RGBA
	cols, rows int
	status     string
}

// New initializes the screen. Call Close to restore the terminal.
func New(opts Options) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	return newTerminal(screen, opts), nil
}

func newTerminal(screen tcell.Screen, opts Options) *Terminal {
	if opts.CellWidth < 1 {
		opts.CellWidth = 8
	}
	if opts.TargetFPS <= 0 {
		opts.TargetFPS = 30
	}

	t := &Terminal{
		screen:     screen,
		opts:       opts,
		block:      int(math.Round(opts.CellWidth)),
		events:     make(chan tcell.Event, 100),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
		ticker:     time.NewTicker(time.Second / time.Duration(opts.TargetFPS)),
		canvas:     canvas.New(0, 0),
		background: color.RGBA{A: 255},
	}
	t.cols, t.rows = screen.Size()

	go func() {
		defer close(t.stopped)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Screen finalized
				return
			}
			select {
			case t.events <- ev:
			case <-t.done:
				return
			}
		}
	}()

	return t
}

// ViewportWidth maps the terminal width to the viewport width the text is
// laid out for.
func (t *Terminal) ViewportWidth() float64 {
	return float64(t.cols) * t.opts.CellWidth
}

// Next implements scene.Driver. It applies pending events and waits for the
// next tick.
func (t *Terminal) Next(ctx context.Context, s *scene.Scene) bool {
	if t.opts.MaxFrames > 0 && s.FrameCount() >= t.opts.MaxFrames {
		return false
	}
	for {
		select {
		case <-ctx.Done():
			return false
		case ev := <-t.events:
			if !t.handleEvent(ev, s) {
				return false
			}
		case <-t.ticker.C:
			return true
		}
	}
}

// handleEvent returns false when the user asked to quit.
func (t *Terminal) handleEvent(ev tcell.Event, s *scene.Scene) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'a':
			s.SetAnimated(!s.Animated())
		case 't':
			s.ToggleTheme()
		case 'r':
			s.Resize(t.ViewportWidth())
		}

	case *tcell.EventResize:
		t.screen.Sync()
		cols, rows := t.screen.Size()
		if cols == t.cols && rows == t.rows {
			return true
		}
		t.cols, t.rows = cols, rows
		surf := s.Resize(t.ViewportWidth())
		slog.Debug("terminal resize", "cols", cols, "rows", rows, "width", surf.Width, "height", surf.Height)
	}
	return true
}

// Painter implements scene.Driver.
func (t *Terminal) Painter(s *scene.Scene) systems.Painter {
	surf := s.Surface()
	t.canvas.Resize(surf.Width, surf.Height)

	t.background = color.RGBA{A: 255}
	if src := s.Theme(); src != nil {
		if v, ok := src.Lookup(theme.PropBackground); ok {
			t.background = toRGBA(gg.Hex(v))
		}
	}
	return t.canvas
}

// Present implements scene.Driver.
func (t *Terminal) Present(s *scene.Scene) error {
	t.screen.Fill(' ', tcell.StyleDefault.Background(rgb(t.background)))

	grid := Downsample(t.canvas.RGBA(), t.block, t.background)
	cellRows := (grid.H + 1) / 2
	ox := (t.cols - grid.W) / 2
	oy := (t.rows - 1 - cellRows) / 2

	for cy := 0; cy < cellRows; cy++ {
		for x := 0; x < grid.W; x++ {
			top := grid.At(x, cy*2, t.background)
			bottom := grid.At(x, cy*2+1, t.background)
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			t.screen.SetContent(ox+x, oy+cy, halfBlock, nil, style)
		}
	}

	t.drawStatus(s)
	t.screen.Show()
	return nil
}

func (t *Terminal) drawStatus(s *scene.Scene) {
	mode := "animated"
	if !s.Animated() {
		mode = "static"
	}
	t.status = fmt.Sprintf("%s | %s %s | %d particles | [a]nimate [t]heme [r]eseed [q]uit",
		s.Label(), s.ThemeName(), mode, len(s.Field().Particles()))

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, r := range t.status {
		if x >= t.cols {
			break
		}
		t.screen.SetContent(x, t.rows-1, r, nil, style)
		x++
	}
}

// Close restores the terminal and stops the event goroutine. It is safe to
// call more than once.
func (t *Terminal) Close() {
	t.closeOnce.Do(func() {
		close(t.done)
		t.ticker.Stop()
		t.screen.Fini()
		_ = t.canvas.Close()
	})
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func toRGBA(c gg.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(c.R * 255)),
		G: uint8(math.Round(c.G * 255)),
		B: uint8(math.Round(c.B * 255)),
		A: 255,
	}
}
