package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwarden/tripline/internal/itinerary"
)

// Columns names the feed headers each record field is read from.
type Columns struct {
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string
	Title     string
	Zone      string
	Note      string

	LodgingDate string
	LodgingName string
}

// NormalizeTime coerces a feed time cell to HH:MM. Empty cells mean
// midnight; a bare hour gets :00; single digits are zero-padded. This
// is the only recovery applied to malformed times — anything that
// parses to numbers at all is accepted.
func NormalizeTime(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "00:00"
	}
	h, m, _ := strings.Cut(s, ":")
	hour, _ := strconv.Atoi(h)
	minute, _ := strconv.Atoi(m)
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// headerIndex maps header names to column positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func cell(record []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// ParseEvents reads itinerary rows from CSV. Time cells are normalized;
// a row naming a zone outside the configured table fails the whole
// parse rather than silently defaulting, since a defaulted zone would
// corrupt every downstream conversion.
func ParseEvents(r io.Reader, cols Columns, zones itinerary.Zones) ([]itinerary.SourceEvent, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("reading itinerary header: %w", err)
	}
	idx := headerIndex(header)
	for _, required := range []string{cols.StartDate, cols.EndDate, cols.Title, cols.Zone} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("itinerary feed is missing column %q", required)
		}
	}

	var events []itinerary.SourceEvent
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading itinerary row: %w", err)
		}
		line++

		ev := itinerary.SourceEvent{
			StartDate: cell(record, idx, cols.StartDate),
			StartTime: NormalizeTime(cell(record, idx, cols.StartTime)),
			EndDate:   cell(record, idx, cols.EndDate),
			EndTime:   NormalizeTime(cell(record, idx, cols.EndTime)),
			Title:     cell(record, idx, cols.Title),
			Zone:      cell(record, idx, cols.Zone),
			Note:      cell(record, idx, cols.Note),
		}
		if ev.StartDate == "" && ev.EndDate == "" && ev.Title == "" {
			continue // blank filler row
		}
		if !zones.Has(ev.Zone) {
			return nil, fmt.Errorf("itinerary row %d: unknown zone %q", line, ev.Zone)
		}
		events = append(events, ev)
	}
	return events, nil
}

// ParseLodging reads {date, name} pairs from CSV.
func ParseLodging(r io.Reader, cols Columns) ([]itinerary.Lodging, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("reading lodging header: %w", err)
	}
	idx := headerIndex(header)
	for _, required := range []string{cols.LodgingDate, cols.LodgingName} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("lodging feed is missing column %q", required)
		}
	}

	var lodging []itinerary.Lodging
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading lodging row: %w", err)
		}

		l := itinerary.Lodging{
			Date: cell(record, idx, cols.LodgingDate),
			Name: cell(record, idx, cols.LodgingName),
		}
		if l.Date == "" && l.Name == "" {
			continue
		}
		lodging = append(lodging, l)
	}
	return lodging, nil
}
