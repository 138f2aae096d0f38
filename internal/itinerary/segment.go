package itinerary

import (
	"sort"
	"time"
)

// Segment splits one event into its per-day segments in the target
// zone, clipping at midnight boundaries. An event spanning N calendar
// days in target yields exactly N segments, one per date in the
// inclusive range [startDate, endDate]:
//
//	start day only:          [startTime, 23:59]
//	end day only:            [00:00, endTime]
//	interior day:            [00:00, 23:59]
//	single day (start==end): [startTime, endTime]
//
// A zero-length event still yields one segment with end <= start;
// rendering skips those rather than erroring. An event ending exactly
// at 00:00 yields a degenerate [00:00, 00:00] segment on its end date
// and nothing beyond it.
func (z Zones) Segment(ev SourceEvent, target string) ([]DatedSegment, error) {
	startDate, startTime, err := z.Convert(ev.StartDate, ev.StartTime, ev.Zone, target)
	if err != nil {
		return nil, err
	}
	endDate, endTime, err := z.Convert(ev.EndDate, ev.EndTime, ev.Zone, target)
	if err != nil {
		return nil, err
	}

	// Walk civil days by integer date arithmetic; comparing parsed
	// dates avoids any off-by-one from string comparison.
	first, err := parseCivil(startDate, "00:00")
	if err != nil {
		return nil, err
	}
	last, err := parseCivil(endDate, "00:00")
	if err != nil {
		return nil, err
	}

	var out []DatedSegment
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)

		seg := DaySegment{Title: ev.Title, Note: ev.Note}
		switch {
		case key == startDate && key == endDate:
			seg.Start, seg.End = startTime, endTime
		case key == startDate:
			seg.Start, seg.End = startTime, EndOfDay
		case key == endDate:
			seg.Start, seg.End = "00:00", endTime
		default:
			seg.Start, seg.End = "00:00", EndOfDay
		}

		out = append(out, DatedSegment{Date: key, Segment: seg})
	}
	return out, nil
}

// BuildBuckets runs Segment for every event and assembles the sorted
// day→segments structure. Within a day, segments sort by start minute
// ascending; the sort is stable so equal starts keep event-list order.
// Dates sort ascending (ISO keys make lexicographic chronological).
// Pure and idempotent: identical inputs produce identical output.
func (z Zones) BuildBuckets(events []SourceEvent, target string) (Buckets, error) {
	byDate := make(map[string][]DaySegment)

	for _, ev := range events {
		segs, err := z.Segment(ev, target)
		if err != nil {
			return Buckets{}, err
		}
		for _, ds := range segs {
			byDate[ds.Date] = append(byDate[ds.Date], ds.Segment)
		}
	}

	dates := make([]string, 0, len(byDate))
	for date, segs := range byDate {
		dates = append(dates, date)
		sort.SliceStable(segs, func(i, j int) bool {
			return ToMinutes(segs[i].Start) < ToMinutes(segs[j].Start)
		})
	}
	sort.Strings(dates)

	return Buckets{Dates: dates, ByDate: byDate}, nil
}

// DaysBetween returns the number of civil days from date a to date b
// (negative when b precedes a).
func DaysBetween(a, b string) (int, error) {
	ta, err := parseCivil(a, "00:00")
	if err != nil {
		return 0, err
	}
	tb, err := parseCivil(b, "00:00")
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta) / (24 * time.Hour)), nil
}
