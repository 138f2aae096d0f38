package feed

import (
	"context"
	"os"

	"github.com/cwarden/tripline/internal/itinerary"
)

// FileSource reads itinerary and lodging CSV from local files. Pair it
// with a Watcher to refresh the view when the files are edited.
type FileSource struct {
	ItineraryPath string
	LodgingPath   string

	cols    Columns
	zones   itinerary.Zones
	watcher *Watcher
}

func NewFileSource(itineraryPath, lodgingPath string, cols Columns, zones itinerary.Zones) *FileSource {
	return &FileSource{
		ItineraryPath: itineraryPath,
		LodgingPath:   lodgingPath,
		cols:          cols,
		zones:         zones,
	}
}

func (f *FileSource) Events(_ context.Context) ([]itinerary.SourceEvent, error) {
	if f.ItineraryPath == "" {
		return nil, nil
	}
	file, err := os.Open(f.ItineraryPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseEvents(file, f.cols, f.zones)
}

func (f *FileSource) Lodging(_ context.Context) ([]itinerary.Lodging, error) {
	if f.LodgingPath == "" {
		return nil, nil
	}
	file, err := os.Open(f.LodgingPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseLodging(file, f.cols)
}

// Changes lazily starts a watcher over the configured files. Returns
// nil when watching cannot be set up; callers fall back to the poll
// tick alone.
func (f *FileSource) Changes() <-chan ChangeEvent {
	if f.watcher == nil {
		w, err := NewWatcher()
		if err != nil {
			return nil
		}
		if f.ItineraryPath != "" {
			_ = w.Add(f.ItineraryPath)
		}
		if f.LodgingPath != "" {
			_ = w.Add(f.LodgingPath)
		}
		f.watcher = w
	}
	return f.watcher.Changes()
}

func (f *FileSource) Close() error {
	if f.watcher == nil {
		return nil
	}
	return f.watcher.Close()
}
