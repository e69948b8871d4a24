package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Source provides the current event catalog.
type Source interface {
	// FetchEvents returns the current list of events. Implementations fall
	// back to a cached or built-in set when the upstream is unreachable, so
	// an error means no usable catalog exists at all.
	FetchEvents(ctx context.Context) ([]Event, error)
}

// StaticSource serves a fixed event list. Used for tests and as the default
// when no upstream API is configured.
type StaticSource struct {
	Events []Event
}

func (s *StaticSource) FetchEvents(ctx context.Context) ([]Event, error) {
	return s.Events, nil
}

// APISource fetches the catalog from an upstream HTTP API. On failure it
// serves the last successfully fetched list, then the built-in samples.
// Safe for concurrent use: the refresh loop and catalog reads may fetch at
// the same time.
type APISource struct {
	url    string
	client *http.Client
	logger *slog.Logger

	mu       sync.Mutex
	lastGood []Event
}

// NewAPISource creates a source backed by the given events API URL.
func NewAPISource(url string, timeout time.Duration, logger *slog.Logger) *APISource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &APISource{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// FetchEvents pulls the catalog from the upstream API. Fetch failures are
// logged and absorbed: stale data beats no data.
func (s *APISource) FetchEvents(ctx context.Context) ([]Event, error) {
	fetched, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("Upstream events fetch failed, serving fallback",
			"url", s.url,
			"error", err)
		s.mu.Lock()
		cached := s.lastGood
		s.mu.Unlock()
		if len(cached) > 0 {
			return cached, nil
		}
		return SampleEvents(), nil
	}

	s.mu.Lock()
	s.lastGood = fetched
	s.mu.Unlock()
	s.logger.Info("Fetched events from upstream API", "count", len(fetched), "url", s.url)
	return fetched, nil
}

func (s *APISource) fetch(ctx context.Context) ([]Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request events API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("events API returned status %d", resp.StatusCode)
	}

	var fetched []Event
	if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		return nil, fmt.Errorf("decode events payload: %w", err)
	}
	if len(fetched) == 0 {
		return nil, fmt.Errorf("events API returned an empty catalog")
	}
	return fetched, nil
}
