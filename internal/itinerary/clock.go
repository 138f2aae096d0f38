package itinerary

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	hmLayout   = "15:04"

	// EndOfDay marks a segment running to midnight. ToMinutes maps it
	// to 1440 so that a day ending at 23:59 abuts the next day's 00:00
	// exactly; duration math depends on this sentinel.
	EndOfDay = "23:59"
)

// Zones maps display-zone names to integer hour offsets relative to an
// arbitrary reference zone. These are relative offsets between the
// supported zones only, not UTC offsets, and there is no DST. The set
// is closed: every zone used anywhere must appear here.
type Zones map[string]int

// Has reports whether name is a configured zone.
func (z Zones) Has(name string) bool {
	_, ok := z[name]
	return ok
}

// ToMinutes converts "HH:MM" to minutes since midnight. The 23:59
// end-of-day sentinel maps to 1440, not 1439.
func ToMinutes(hm string) int {
	h, m := splitHM(hm)
	if h == 23 && m == 59 {
		return 24 * 60
	}
	return h*60 + m
}

func splitHM(hm string) (hour, minute int) {
	h, m, _ := strings.Cut(hm, ":")
	hour, _ = strconv.Atoi(h)
	minute, _ = strconv.Atoi(m)
	return hour, minute
}

// parseCivil interprets a civil date/time on a fixed offset-free
// timeline. Everything runs through UTC so the host timezone can never
// shift a calendar date.
func parseCivil(date, hm string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout+" "+hmLayout, date+" "+hm, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad civil time %q %q: %w", date, hm, err)
	}
	return t, nil
}

// Convert re-expresses the civil time (date, hm) in zone from as a
// civil time in zone to, by shifting offset(to)-offset(from) hours on
// the fixed timeline. Correct across month and year rollovers.
func (z Zones) Convert(date, hm, from, to string) (string, string, error) {
	fromOff, ok := z[from]
	if !ok {
		return "", "", fmt.Errorf("unknown zone %q", from)
	}
	toOff, ok := z[to]
	if !ok {
		return "", "", fmt.Errorf("unknown zone %q", to)
	}

	t, err := parseCivil(date, hm)
	if err != nil {
		return "", "", err
	}
	t = t.Add(time.Duration(toOff-fromOff) * time.Hour)
	return t.Format(dateLayout), t.Format(hmLayout), nil
}

// Now projects an absolute instant into the display zone target. The
// relative-offset model has no notion of true UTC, so local names the
// zone the host clock reads; now's wall-clock fields are taken as civil
// time in that zone.
func (z Zones) Now(now time.Time, local, target string) (date, hm string, err error) {
	return z.Convert(now.Format(dateLayout), now.Format(hmLayout), local, target)
}

// FormatDisplayDate renders "Nov 5 (Wed)" for a date key. Parsing stays
// on the fixed timeline so the label can never shift the calendar date.
func FormatDisplayDate(date string) string {
	t, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return date
	}
	return t.Format("Jan 2 (Mon)")
}
