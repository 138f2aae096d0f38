package itinerary

import (
	"reflect"
	"testing"
)

func fiveDayBuckets(t *testing.T) Buckets {
	t.Helper()
	events := []SourceEvent{
		{StartDate: "2025-11-05", EndDate: "2025-11-05", StartTime: "09:00", EndTime: "10:00", Title: "a", Zone: "KST"},
		{StartDate: "2025-11-06", EndDate: "2025-11-06", StartTime: "11:00", EndTime: "12:00", Title: "b", Zone: "KST"},
		{StartDate: "2025-11-07", EndDate: "2025-11-07", StartTime: "13:00", EndTime: "14:00", Title: "c", Zone: "KST"},
		{StartDate: "2025-11-08", EndDate: "2025-11-08", StartTime: "15:00", EndTime: "16:00", Title: "d", Zone: "KST"},
		{StartDate: "2025-11-09", EndDate: "2025-11-09", StartTime: "17:00", EndTime: "18:30", Title: "e", Zone: "KST"},
	}
	b, err := testZones.BuildBuckets(events, "KST")
	if err != nil {
		t.Fatalf("BuildBuckets() error: %v", err)
	}
	return b
}

func TestPaging(t *testing.T) {
	b := fiveDayBuckets(t)

	t.Run("TotalPages", func(t *testing.T) {
		// 5 dates, 2 per page: the window slides one day at a time.
		if got := b.TotalPages(2); got != 4 {
			t.Errorf("TotalPages(2) = %d, want 4", got)
		}
		if got := b.TotalPages(7); got != 1 {
			t.Errorf("TotalPages(7) = %d, want 1", got)
		}
		if got := (Buckets{}).TotalPages(2); got != 1 {
			t.Errorf("empty TotalPages(2) = %d, want 1", got)
		}
	})

	t.Run("ClampsSilently", func(t *testing.T) {
		if got := b.ClampPage(10, 2); got != 3 {
			t.Errorf("ClampPage(10, 2) = %d, want 3", got)
		}
		if got := b.ClampPage(-5, 2); got != 0 {
			t.Errorf("ClampPage(-5, 2) = %d, want 0", got)
		}
	})

	t.Run("WindowAtClampedPage", func(t *testing.T) {
		got := b.Window(10, 2)
		want := []string{"2025-11-08", "2025-11-09"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Window(10, 2) = %v, want %v", got, want)
		}
	})

	t.Run("WindowNeverExceedsDaysPerPage", func(t *testing.T) {
		for page := -1; page < 8; page++ {
			if w := b.Window(page, 2); len(w) > 2 {
				t.Errorf("Window(%d, 2) has %d days", page, len(w))
			}
		}
	})

	t.Run("EmptyBuckets", func(t *testing.T) {
		var empty Buckets
		if w := empty.Window(0, 2); w != nil {
			t.Errorf("empty Window = %v, want nil", w)
		}
	})
}

func TestVisibleHours(t *testing.T) {
	b := fiveDayBuckets(t)

	t.Run("ScansOnlyWindow", func(t *testing.T) {
		// First page covers 09:00-10:00 and 11:00-12:00 only; the
		// 18:30 event on the last day must not widen the axis.
		start, end := b.VisibleHours(b.Window(0, 2))
		if start != 9 || end != 12 {
			t.Errorf("VisibleHours(page 0) = [%d, %d], want [9, 12]", start, end)
		}

		start, end = b.VisibleHours(b.Window(3, 2))
		if start != 15 || end != 19 {
			t.Errorf("VisibleHours(page 3) = [%d, %d], want [15, 19]", start, end)
		}
	})

	t.Run("EndOfDayRoundsTo24", func(t *testing.T) {
		events := []SourceEvent{
			{StartDate: "2025-11-05", EndDate: "2025-11-06", StartTime: "22:00", EndTime: "01:00", Title: "x", Zone: "KST"},
		}
		bb, err := testZones.BuildBuckets(events, "KST")
		if err != nil {
			t.Fatalf("BuildBuckets() error: %v", err)
		}
		_, end := bb.VisibleHours([]string{"2025-11-05"})
		if end != 24 {
			t.Errorf("end hour for 23:59 segment = %d, want 24", end)
		}
	})

	t.Run("FallbackWhenEmpty", func(t *testing.T) {
		start, end := b.VisibleHours(nil)
		if start != 8 || end != 20 {
			t.Errorf("VisibleHours(empty) = [%d, %d], want [8, 20]", start, end)
		}
		start, end = (Buckets{}).VisibleHours([]string{"2025-01-01"})
		if start != 8 || end != 20 {
			t.Errorf("VisibleHours(no segments) = [%d, %d], want [8, 20]", start, end)
		}
	})
}

func TestPageForDate(t *testing.T) {
	b := fiveDayBuckets(t)

	page, ok := b.PageForDate("2025-11-07", 2)
	if !ok || page != 2 {
		t.Errorf("PageForDate(2025-11-07) = %d, %v, want 2, true", page, ok)
	}

	// Last date clamps so the window stays full.
	page, ok = b.PageForDate("2025-11-09", 2)
	if !ok || page != 3 {
		t.Errorf("PageForDate(2025-11-09) = %d, %v, want 3, true", page, ok)
	}

	if _, ok := b.PageForDate("2030-01-01", 2); ok {
		t.Error("PageForDate() reported a date that is not in the buckets")
	}
}
