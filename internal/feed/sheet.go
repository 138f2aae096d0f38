package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/cwarden/tripline/internal/itinerary"
)

// SheetSource fetches itinerary and lodging CSV exports over HTTP,
// typically published spreadsheet tabs.
type SheetSource struct {
	ItineraryURL string
	LodgingURL   string

	client *http.Client
	logger *slog.Logger
	cols   Columns
	zones  itinerary.Zones
}

func NewSheetSource(itineraryURL, lodgingURL string, cols Columns, zones itinerary.Zones, logger *slog.Logger) *SheetSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &SheetSource{
		ItineraryURL: itineraryURL,
		LodgingURL:   lodgingURL,
		client:       &http.Client{Timeout: 15 * time.Second},
		logger:       logger,
		cols:         cols,
		zones:        zones,
	}
}

func (s *SheetSource) Events(ctx context.Context) ([]itinerary.SourceEvent, error) {
	if s.ItineraryURL == "" {
		return nil, nil
	}
	body, err := s.fetch(ctx, s.ItineraryURL)
	if err != nil {
		return nil, err
	}
	return ParseEvents(bytes.NewReader(body), s.cols, s.zones)
}

func (s *SheetSource) Lodging(ctx context.Context) ([]itinerary.Lodging, error) {
	if s.LodgingURL == "" {
		return nil, nil
	}
	body, err := s.fetch(ctx, s.LodgingURL)
	if err != nil {
		return nil, err
	}
	return ParseLodging(bytes.NewReader(body), s.cols)
}

// fetch performs a GET with exponential backoff and jitter. Server and
// network errors retry; client errors are unrecoverable since retrying
// a bad URL only delays the failure report.
func (s *SheetSource) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var body []byte
	err = retry.Do(
		func() error {
			resp, doErr := s.client.Do(req.Clone(ctx))
			if doErr != nil {
				return doErr
			}
			defer resp.Body.Close()

			if resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("server error from feed: %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("feed returned %d", resp.StatusCode))
			}

			body, doErr = io.ReadAll(resp.Body)
			return doErr
		},
		retry.Attempts(4),
		retry.Delay(time.Second),
		retry.MaxDelay(30*time.Second),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Info("retrying feed fetch", "url", url, "attempt", n+1, "error", err)
		}),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		s.logger.Warn("feed fetch failed", "url", url, "error", err)
		return nil, err
	}

	s.logger.Debug("feed fetch ok", "url", url, "bytes", len(body))
	return body, nil
}
