package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_ShortfallAndRecovery(t *testing.T) {
	bd := NewBookmarkDetector(10)

	full := FieldStats{Target: 1000, Population: 1000, Fill: 1, VisiblePixels: 500}
	if got := bd.Check(full); len(got) != 0 {
		t.Errorf("full population should not bookmark, got %v", got)
	}

	short := FieldStats{WindowEndFrame: 120, Target: 1000, Population: 400, Fill: 0.4, VisiblePixels: 20}
	if !hasBookmark(bd.Check(short), BookmarkShortfall) {
		t.Error("expected shortfall bookmark")
	}
	// Still short: no repeat
	if hasBookmark(bd.Check(short), BookmarkShortfall) {
		t.Error("shortfall should trigger once per episode")
	}

	full.WindowEndFrame = 360
	if !hasBookmark(bd.Check(full), BookmarkRecovered) {
		t.Error("expected recovered bookmark")
	}
}

func TestBookmarkDetector_EmptyMask(t *testing.T) {
	bd := NewBookmarkDetector(10)

	empty := FieldStats{MaskWidth: 50, MaskHeight: 40}
	if !hasBookmark(bd.Check(empty), BookmarkEmptyMask) {
		t.Error("expected empty_mask bookmark")
	}
	if hasBookmark(bd.Check(empty), BookmarkEmptyMask) {
		t.Error("empty_mask should trigger once until the mask changes")
	}

	bd.Check(FieldStats{VisiblePixels: 10})
	if !hasBookmark(bd.Check(empty), BookmarkEmptyMask) {
		t.Error("expected empty_mask bookmark again after a visible mask")
	}
}

func TestBookmarkDetector_Steady(t *testing.T) {
	bd := NewBookmarkDetector(10)

	triggeredAt := -1
	for i := 0; i < 12; i++ {
		stats := FieldStats{
			WindowEndFrame: int64(i * 120),
			Target:         3000,
			Population:     3000,
			Fill:           1,
			VisiblePixels:  1000,
		}
		if hasBookmark(bd.Check(stats), BookmarkSteady) {
			if triggeredAt >= 0 {
				t.Fatalf("steady triggered twice (windows %d and %d)", triggeredAt, i)
			}
			triggeredAt = i
		}
	}

	// Four windows fill the comparison history, then five steady windows are needed
	if triggeredAt != 7 {
		t.Errorf("steady triggered at window %d, want 7", triggeredAt)
	}
}

func TestBookmarkDetector_NotSteadyWhenFluctuating(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 12; i++ {
		pop := 3000
		if i%2 == 0 {
			pop = 2000
		}
		stats := FieldStats{Target: 3000, Population: pop, Fill: float64(pop) / 3000, VisiblePixels: 1000}
		if hasBookmark(bd.Check(stats), BookmarkSteady) {
			t.Fatalf("fluctuating population bookmarked steady at window %d", i)
		}
	}
}
