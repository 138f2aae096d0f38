package feed

import (
	"context"
	"time"

	"github.com/cwarden/tripline/internal/itinerary"
)

// Source provides itinerary rows and lodging labels. Implementations
// fetch from a sheet export or read local files; the engine consumes
// the returned records and never sees the transport.
type Source interface {
	// Events returns the itinerary rows, normalized and zone-checked.
	Events(ctx context.Context) ([]itinerary.SourceEvent, error)
	// Lodging returns per-date hotel labels.
	Lodging(ctx context.Context) ([]itinerary.Lodging, error)
}

// Watchable is implemented by sources whose backing data can change
// out-of-band (local files). Changes returns a channel delivering one
// event per detected change; Close stops watching.
type Watchable interface {
	Changes() <-chan ChangeEvent
	Close() error
}

// ChangeEvent records a change to a backing file.
type ChangeEvent struct {
	Path      string
	Timestamp time.Time
}
