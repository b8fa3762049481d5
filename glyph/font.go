// Package glyph turns a string into the opacity mask particles are sampled from.
//
// It owns three steps: loading a heavy-weight font, computing the responsive
// font size and drawing-surface dimensions, and rasterizing the string
// centered on that surface so only per-pixel alpha is kept.
package glyph

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/gomonobold"
)

// ErrUnknownFont is returned when no entry of a family list can be loaded.
var ErrUnknownFont = errors.New("unknown font family")

// families maps family names to embedded faces. Every entry is a bold cut:
// the mask is always rendered heavy.
var families = map[string][]byte{
	"go-bold":        gobold.TTF,
	"go":             gobold.TTF,
	"go-bold-italic": gobolditalic.TTF,
	"go-mono":        gomonobold.TTF,
	"go-mono-bold":   gomonobold.TTF,
	"sans-serif":     gobold.TTF,
	"monospace":      gomonobold.TTF,
}

// Font is a loaded font that can produce faces at any size.
type Font struct {
	family string
	source *text.FontSource
}

// LoadFont loads the first usable entry of a comma-separated family list.
// Entries are registered family names (case-insensitive) or paths to font
// files, e.g. "/usr/share/fonts/ArialBlack.ttf, sans-serif".
func LoadFont(family string) (*Font, error) {
	var lastErr error
	for _, entry := range strings.Split(family, ",") {
		name := strings.Trim(strings.TrimSpace(entry), `"'`)
		if name == "" {
			continue
		}

		if data, ok := families[strings.ToLower(name)]; ok {
			src, err := text.NewFontSource(data)
			if err != nil {
				return nil, fmt.Errorf("parsing embedded font %q: %w", name, err)
			}
			return &Font{family: name, source: src}, nil
		}

		if _, err := os.Stat(name); err != nil {
			continue
		}
		src, err := text.NewFontSourceFromFile(name)
		if err != nil {
			lastErr = fmt.Errorf("loading font file %q: %w", name, err)
			continue
		}
		return &Font{family: name, source: src}, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("loading %q (registered: %s): %w",
		family, strings.Join(Families(), ", "), ErrUnknownFont)
}

// Family returns the family entry that was loaded.
func (f *Font) Family() string {
	return f.family
}

// Name returns the font's internal name.
func (f *Font) Name() string {
	return f.source.Name()
}

// Face returns a face at the given pixel size.
func (f *Font) Face(size float64) text.Face {
	return f.source.Face(size)
}

// Close releases the font source.
func (f *Font) Close() error {
	return f.source.Close()
}

// Families lists the registered family names.
func Families() []string {
	return slices.Sorted(maps.Keys(families))
}
