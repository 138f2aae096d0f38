package itinerary

// Default visible hour range when the current window has no segments.
const (
	FallbackStartHour = 8
	FallbackEndHour   = 20
)

// ViewState is the display state threaded through paging and rendering.
// It is explicit rather than ambient: every derivation below takes the
// relevant fields as arguments and recomputes from scratch.
type ViewState struct {
	Zone        string // selected display zone
	Page        int    // requested page index, clamped on read
	DaysPerPage int
	SnapToToday bool
}

// TotalPages reports how many positions the day window can occupy.
// Always at least 1, even with no dates.
func (b Buckets) TotalPages(daysPerPage int) int {
	if daysPerPage < 1 {
		daysPerPage = 1
	}
	n := len(b.Dates) - daysPerPage + 1
	if n < 1 {
		return 1
	}
	return n
}

// ClampPage silently clamps a requested page index into
// [0, TotalPages-1]; out-of-range requests are never an error.
func (b Buckets) ClampPage(page, daysPerPage int) int {
	if page < 0 {
		return 0
	}
	if max := b.TotalPages(daysPerPage) - 1; page > max {
		return max
	}
	return page
}

// Window returns the contiguous run of date keys visible on the given
// page. The slice aliases Dates (non-owning view) and may be shorter
// than daysPerPage near the end of the itinerary.
func (b Buckets) Window(page, daysPerPage int) []string {
	if daysPerPage < 1 {
		daysPerPage = 1
	}
	if len(b.Dates) == 0 {
		return nil
	}
	start := b.ClampPage(page, daysPerPage)
	end := start + daysPerPage
	if end > len(b.Dates) {
		end = len(b.Dates)
	}
	return b.Dates[start:end]
}

// VisibleHours derives the [startHour, endHour] axis bounds by scanning
// only the segments of the given window — not the whole itinerary — so
// each page gets a tight axis. Falls back to [8, 20] when the window
// holds no segments.
func (b Buckets) VisibleHours(window []string) (startHour, endHour int) {
	minStart := 24 * 60
	maxEnd := 0
	seen := false

	for _, date := range window {
		for _, seg := range b.ByDate[date] {
			seen = true
			if s := ToMinutes(seg.Start); s < minStart {
				minStart = s
			}
			if e := ToMinutes(seg.End); e > maxEnd {
				maxEnd = e
			}
		}
	}

	if !seen {
		return FallbackStartHour, FallbackEndHour
	}
	return minStart / 60, (maxEnd + 59) / 60
}

// PageForDate returns the clamped page index that brings date into
// view, and whether date is one of the bucket dates at all. Drives
// snap-to-today.
func (b Buckets) PageForDate(date string, daysPerPage int) (int, bool) {
	for i, d := range b.Dates {
		if d == date {
			return b.ClampPage(i, daysPerPage), true
		}
	}
	return 0, false
}
