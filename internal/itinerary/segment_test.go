package itinerary

import (
	"reflect"
	"testing"
)

// sampleEvents mirrors the itinerary this tool was built around: a day
// of KST events, an overnight flight crossing into PST, then PST days.
var sampleEvents = []SourceEvent{
	{StartDate: "2025-11-05", EndDate: "2025-11-05", StartTime: "09:00", EndTime: "13:00", Title: "Daycare", Zone: "KST"},
	{StartDate: "2025-11-05", EndDate: "2025-11-05", StartTime: "13:00", EndTime: "16:00", Title: "Drive to Incheon Airport", Zone: "KST"},
	{StartDate: "2025-11-05", EndDate: "2025-11-05", StartTime: "16:00", EndTime: "19:00", Title: "Incheon Airport", Zone: "KST"},
	{StartDate: "2025-11-05", EndDate: "2025-11-06", StartTime: "19:00", EndTime: "05:00", Title: "Flight to Vancouver", Zone: "KST"},
	{StartDate: "2025-11-05", EndDate: "2025-11-05", StartTime: "12:00", EndTime: "13:30", Title: "Vancouver Airport", Zone: "PST"},
	{StartDate: "2025-11-05", EndDate: "2025-11-05", StartTime: "13:30", EndTime: "16:30", Title: "Flight to L.A.", Zone: "PST"},
	{StartDate: "2025-11-06", EndDate: "2025-11-06", StartTime: "09:00", EndTime: "10:00", Title: "Drive to Universal", Zone: "PST"},
	{StartDate: "2025-11-07", EndDate: "2025-11-07", StartTime: "10:00", EndTime: "11:30", Title: "Palos Verdes", Zone: "PST"},
}

func TestSegmentSingleDay(t *testing.T) {
	ev := SourceEvent{
		StartDate: "2025-11-05", StartTime: "09:00",
		EndDate: "2025-11-05", EndTime: "13:00",
		Title: "Daycare", Zone: "KST",
	}

	segs, err := testZones.Segment(ev, "KST")
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("Segment() returned %d segments, want 1", len(segs))
	}
	want := DatedSegment{Date: "2025-11-05", Segment: DaySegment{Title: "Daycare", Start: "09:00", End: "13:00"}}
	if segs[0] != want {
		t.Errorf("Segment() = %+v, want %+v", segs[0], want)
	}
}

func TestSegmentOvernightFlightInPST(t *testing.T) {
	// The fixed scenario: 2025-11-05 19:00 KST -> 2025-11-06 05:00 KST,
	// viewed in PST (-17h), splits across the PST midnight.
	ev := SourceEvent{
		StartDate: "2025-11-05", StartTime: "19:00",
		EndDate: "2025-11-06", EndTime: "05:00",
		Title: "Flight to Vancouver", Zone: "KST",
	}

	segs, err := testZones.Segment(ev, "PST")
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}
	want := []DatedSegment{
		{Date: "2025-11-05", Segment: DaySegment{Title: "Flight to Vancouver", Start: "02:00", End: "23:59"}},
		{Date: "2025-11-06", Segment: DaySegment{Title: "Flight to Vancouver", Start: "00:00", End: "12:00"}},
	}
	if !reflect.DeepEqual(segs, want) {
		t.Errorf("Segment() = %+v, want %+v", segs, want)
	}
}

func TestSegmentMultiDay(t *testing.T) {
	// N calendar days yield exactly N segments: first ends 23:59, last
	// starts 00:00, interiors are full-day.
	ev := SourceEvent{
		StartDate: "2025-11-10", StartTime: "15:00",
		EndDate: "2025-11-13", EndTime: "11:00",
		Title: "Road Trip", Zone: "PST",
	}

	segs, err := testZones.Segment(ev, "PST")
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}
	if len(segs) != 4 {
		t.Fatalf("Segment() returned %d segments, want 4", len(segs))
	}

	if segs[0].Segment.Start != "15:00" || segs[0].Segment.End != EndOfDay {
		t.Errorf("first segment = %+v, want [15:00, 23:59]", segs[0].Segment)
	}
	for i := 1; i < 3; i++ {
		if segs[i].Segment.Start != "00:00" || segs[i].Segment.End != EndOfDay {
			t.Errorf("interior segment %d = %+v, want [00:00, 23:59]", i, segs[i].Segment)
		}
	}
	if segs[3].Segment.Start != "00:00" || segs[3].Segment.End != "11:00" {
		t.Errorf("last segment = %+v, want [00:00, 11:00]", segs[3].Segment)
	}
}

func TestSegmentZeroLength(t *testing.T) {
	ev := SourceEvent{
		StartDate: "2025-11-05", StartTime: "10:00",
		EndDate: "2025-11-05", EndTime: "10:00",
		Title: "Checkpoint", Zone: "KST",
	}

	segs, err := testZones.Segment(ev, "KST")
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("zero-length event produced %d segments, want 1", len(segs))
	}
	s := segs[0].Segment
	if ToMinutes(s.End) > ToMinutes(s.Start) {
		t.Errorf("zero-length event produced positive-duration segment %+v", s)
	}
}

func TestSegmentEndsAtMidnight(t *testing.T) {
	// Ending exactly at 00:00 of day D yields a degenerate [00:00,
	// 00:00] segment on D and nothing past it — no spurious extra day.
	ev := SourceEvent{
		StartDate: "2025-11-05", StartTime: "22:00",
		EndDate: "2025-11-06", EndTime: "00:00",
		Title: "Late Dinner", Zone: "KST",
	}

	segs, err := testZones.Segment(ev, "KST")
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("Segment() returned %d segments, want 2", len(segs))
	}
	if segs[1].Date != "2025-11-06" {
		t.Errorf("last segment on %s, want 2025-11-06", segs[1].Date)
	}
	if s := segs[1].Segment; s.Start != "00:00" || s.End != "00:00" {
		t.Errorf("end-at-midnight segment = %+v, want degenerate [00:00, 00:00]", s)
	}
}

func TestBuildBuckets(t *testing.T) {
	t.Run("DatesSortedAndSegmentsOrdered", func(t *testing.T) {
		b, err := testZones.BuildBuckets(sampleEvents, "PST")
		if err != nil {
			t.Fatalf("BuildBuckets() error: %v", err)
		}

		for i := 1; i < len(b.Dates); i++ {
			if b.Dates[i-1] >= b.Dates[i] {
				t.Errorf("dates out of order: %s before %s", b.Dates[i-1], b.Dates[i])
			}
		}
		for _, date := range b.Dates {
			segs := b.ByDate[date]
			for i := 1; i < len(segs); i++ {
				if ToMinutes(segs[i-1].Start) > ToMinutes(segs[i].Start) {
					t.Errorf("%s: segment starts not monotonic: %s after %s",
						date, segs[i].Start, segs[i-1].Start)
				}
			}
		}
	})

	t.Run("KSTViewBucketsSample", func(t *testing.T) {
		b, err := testZones.BuildBuckets(sampleEvents, "KST")
		if err != nil {
			t.Fatalf("BuildBuckets() error: %v", err)
		}
		// The two PST-zone events on 2025-11-05 PST land on 2025-11-06
		// KST (e.g. 12:00 PST = 05:00 KST next day).
		segs := b.ByDate["2025-11-06"]
		found := false
		for _, s := range segs {
			if s.Title == "Vancouver Airport" && s.Start == "05:00" && s.End == "06:30" {
				found = true
			}
		}
		if !found {
			t.Errorf("Vancouver Airport not bucketed at 2025-11-06 05:00 KST; got %+v", segs)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		a, err := testZones.BuildBuckets(sampleEvents, "PST")
		if err != nil {
			t.Fatalf("BuildBuckets() error: %v", err)
		}
		b, err := testZones.BuildBuckets(sampleEvents, "PST")
		if err != nil {
			t.Fatalf("BuildBuckets() error: %v", err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Error("BuildBuckets() is not idempotent for identical inputs")
		}
	})

	t.Run("StableTieBreak", func(t *testing.T) {
		events := []SourceEvent{
			{StartDate: "2025-11-05", EndDate: "2025-11-05", StartTime: "09:00", EndTime: "10:00", Title: "first", Zone: "KST"},
			{StartDate: "2025-11-05", EndDate: "2025-11-05", StartTime: "09:00", EndTime: "11:00", Title: "second", Zone: "KST"},
		}
		b, err := testZones.BuildBuckets(events, "KST")
		if err != nil {
			t.Fatalf("BuildBuckets() error: %v", err)
		}
		segs := b.ByDate["2025-11-05"]
		if len(segs) != 2 || segs[0].Title != "first" || segs[1].Title != "second" {
			t.Errorf("equal-start segments reordered: %+v", segs)
		}
	})

	t.Run("UnknownZoneFails", func(t *testing.T) {
		events := []SourceEvent{
			{StartDate: "2025-11-05", EndDate: "2025-11-05", StartTime: "09:00", EndTime: "10:00", Title: "x", Zone: "JST"},
		}
		if _, err := testZones.BuildBuckets(events, "KST"); err == nil {
			t.Error("BuildBuckets() with unknown event zone should fail")
		}
	})

	t.Run("Empty", func(t *testing.T) {
		b, err := testZones.BuildBuckets(nil, "KST")
		if err != nil {
			t.Fatalf("BuildBuckets() error: %v", err)
		}
		if len(b.Dates) != 0 || len(b.ByDate) != 0 {
			t.Errorf("empty input produced non-empty buckets: %+v", b)
		}
	})
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2025-11-05", "2025-11-05", 0},
		{"2025-11-05", "2025-11-08", 3},
		{"2025-12-31", "2026-01-01", 1},
		{"2025-11-08", "2025-11-05", -3},
	}
	for _, tt := range tests {
		got, err := DaysBetween(tt.a, tt.b)
		if err != nil {
			t.Fatalf("DaysBetween(%s, %s) error: %v", tt.a, tt.b, err)
		}
		if got != tt.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
