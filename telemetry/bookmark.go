package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkShortfall BookmarkType = "shortfall"  // population well below target
	BookmarkRecovered BookmarkType = "recovered"  // population back at target after a shortfall
	BookmarkEmptyMask BookmarkType = "empty_mask" // nothing to sample from
	BookmarkSteady    BookmarkType = "steady"     // population flat over several windows
)

const (
	shortfallFill  = 0.9
	recoveredFill  = 0.99
	steadyWindows  = 5
	steadyMaxCVSqr = 0.0004 // CV < 2%
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Frame       int64        `csv:"frame"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"frame", b.Frame,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments in the field's population.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []FieldStats
	historySize int
	historyIdx  int
	historyFull bool

	inShortfall   bool
	maskWasEmpty  bool
	steadyWindows int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 4 {
		historySize = 4 // minimum for steady detection
	}
	return &BookmarkDetector{
		history:     make([]FieldStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats FieldStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkEmptyMask(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkShortfall(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	if b := bd.checkSteady(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats FieldStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n of the most recent windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []FieldStats {
	count := bd.historyIdx
	if bd.historyFull {
		count = bd.historySize
	}
	if n > count {
		n = count
	}
	out := make([]FieldStats, 0, n)
	for i := n; i > 0; i-- {
		idx := (bd.historyIdx - i + bd.historySize) % bd.historySize
		out = append(out, bd.history[idx])
	}
	return out
}

func (bd *BookmarkDetector) checkEmptyMask(stats FieldStats) *Bookmark {
	empty := stats.VisiblePixels == 0
	defer func() { bd.maskWasEmpty = empty }()

	if !empty || bd.maskWasEmpty {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkEmptyMask,
		Frame:       stats.WindowEndFrame,
		Description: fmt.Sprintf("Mask %dx%d has no visible pixels", stats.MaskWidth, stats.MaskHeight),
	}
}

func (bd *BookmarkDetector) checkShortfall(stats FieldStats) *Bookmark {
	if stats.Target == 0 {
		return nil
	}

	if !bd.inShortfall && stats.Fill < shortfallFill {
		bd.inShortfall = true
		return &Bookmark{
			Type:        BookmarkShortfall,
			Frame:       stats.WindowEndFrame,
			Description: fmt.Sprintf("Population %d is %.0f%% of target %d (%d sample failures)", stats.Population, stats.Fill*100, stats.Target, stats.SampleFailures),
		}
	}

	if bd.inShortfall && stats.Fill >= recoveredFill {
		bd.inShortfall = false
		return &Bookmark{
			Type:        BookmarkRecovered,
			Frame:       stats.WindowEndFrame,
			Description: fmt.Sprintf("Population recovered to %d of %d", stats.Population, stats.Target),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkSteady(stats FieldStats) *Bookmark {
	if stats.Population == 0 {
		bd.steadyWindows = 0
		return nil
	}

	window := bd.recent(4)
	if len(window) < 4 {
		return nil
	}

	pops := make([]float64, len(window))
	for i, h := range window {
		pops[i] = float64(h.Population)
	}
	mean, variance := stat.PopMeanVariance(pops, nil)

	if mean > 0 && variance/(mean*mean) < steadyMaxCVSqr {
		bd.steadyWindows++
	} else {
		bd.steadyWindows = 0
	}

	if bd.steadyWindows == steadyWindows { // trigger exactly once per steady run
		return &Bookmark{
			Type:        BookmarkSteady,
			Frame:       stats.WindowEndFrame,
			Description: fmt.Sprintf("Population steady near %.0f over %d+ windows", mean, steadyWindows),
		}
	}

	return nil
}
