package canvas

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/gogpu/gg"
)

func alphaAt(p *Painter, x, y int) uint8 {
	img := p.RGBA()
	return img.Pix[img.PixOffset(x, y)+3]
}

func TestFillSquareCentered(t *testing.T) {
	p := New(20, 20)
	defer p.Close()

	p.Clear()
	p.FillSquare(10, 10, 4, gg.RGBA{R: 1, A: 1})

	if err := p.Err(); err != nil {
		t.Fatalf("fill error: %v", err)
	}
	if p.Fills() != 1 {
		t.Errorf("fills = %d, want 1", p.Fills())
	}
	// Square covers [8, 12) on both axes
	if a := alphaAt(p, 9, 9); a != 255 {
		t.Errorf("inside alpha = %d, want 255", a)
	}
	if a := alphaAt(p, 2, 2); a != 0 {
		t.Errorf("outside alpha = %d, want 0", a)
	}
	if a := alphaAt(p, 13, 10); a != 0 {
		t.Errorf("right of square alpha = %d, want 0", a)
	}
}

func TestClearResets(t *testing.T) {
	p := New(10, 10)
	defer p.Close()

	p.FillSquare(5, 5, 6, gg.RGBA{G: 1, A: 1})
	p.Clear()

	if p.Fills() != 0 {
		t.Errorf("fills after clear = %d, want 0", p.Fills())
	}
	if a := alphaAt(p, 5, 5); a != 0 {
		t.Errorf("alpha after clear = %d, want 0", a)
	}
}

func TestBackground(t *testing.T) {
	p := New(4, 4)
	defer p.Close()

	p.SetBackground(gg.RGBA{R: 0, G: 0, B: 0, A: 1})
	p.Clear()
	if a := alphaAt(p, 0, 0); a != 255 {
		t.Errorf("background alpha = %d, want 255", a)
	}
}

func TestEmptySurface(t *testing.T) {
	p := New(0, 30)

	p.Clear()
	p.FillSquare(1, 1, 1, gg.RGBA{A: 1})

	if p.Fills() != 0 {
		t.Errorf("empty surface painted %d squares", p.Fills())
	}
	if b := p.RGBA().Bounds(); !b.Empty() {
		t.Errorf("empty surface image bounds = %v", b)
	}
	if err := p.EncodePNG(&bytes.Buffer{}); err == nil {
		t.Error("expected error encoding empty surface")
	}
}

func TestResize(t *testing.T) {
	p := New(10, 10)
	defer p.Close()

	p.Resize(30, 12)
	if p.Width() != 30 || p.Height() != 12 {
		t.Errorf("size = %dx%d, want 30x12", p.Width(), p.Height())
	}
	if b := p.RGBA().Bounds(); b.Dx() != 30 || b.Dy() != 12 {
		t.Errorf("image bounds = %v, want 30x12", b)
	}
}

func TestEncodePNG(t *testing.T) {
	p := New(16, 8)
	defer p.Close()

	p.Clear()
	p.FillSquare(8, 4, 2, gg.RGBA{B: 1, A: 0.5})

	var buf bytes.Buffer
	if err := p.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("decoded bounds = %v, want 16x8", b)
	}
}
