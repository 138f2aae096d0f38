package itinerary

// SourceEvent is one raw itinerary row as it arrives from a feed. Times
// are civil wall-clock values in the event's own zone; the instant
// (StartDate, StartTime) must not be after (EndDate, EndTime).
type SourceEvent struct {
	StartDate string // YYYY-MM-DD
	StartTime string // HH:MM, 24h
	EndDate   string
	EndTime   string
	Title     string
	Zone      string // display zone name, e.g. "KST"
	Note      string // optional free text
}

// DaySegment is the portion of an event visible within one calendar day
// of the display zone. Start and End are HH:MM within the owning day;
// "23:59" encodes end-of-day and counts as 24:00 for duration math.
// Segments are copies: they never reference the source event, because
// the same event clips differently on different days.
type DaySegment struct {
	Title string
	Start string
	End   string
	Note  string
}

// DatedSegment pairs a segment with the date bucket that owns it.
type DatedSegment struct {
	Date    string // YYYY-MM-DD in the display zone
	Segment DaySegment
}

// Lodging is a per-date hotel label, joined against bucket dates by
// exact string equality. Display-only; the engine never reads it.
type Lodging struct {
	Date string
	Name string
}

// Buckets is the derived day→segments structure. Dates is sorted
// ascending; segments within a date are sorted by start time ascending,
// with insertion order preserved between equal starts. Rebuilt from
// scratch on every input change, never mutated incrementally.
type Buckets struct {
	Dates  []string
	ByDate map[string][]DaySegment
}
