package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/radutopala/eventscout/internal/events"
	"github.com/radutopala/eventscout/internal/metrics"
	"github.com/radutopala/eventscout/internal/vectorstore"
)

const (
	// DefaultCollection is the index collection name.
	DefaultCollection = "event_content"

	// DefaultBatchSize bounds peak memory while embedding the catalog.
	DefaultBatchSize = 20

	// DefaultRefreshInterval between periodic rebuilds.
	DefaultRefreshInterval = 30 * time.Minute
)

// ErrNoEvents means the event source produced an empty catalog; refresh
// refuses to replace a populated index with nothing.
var ErrNoEvents = errors.New("event source returned no events")

// ErrIndexUnavailable means no index snapshot exists yet. Retryable: the
// first build may still be running or may have failed and will be retried on
// the next periodic refresh.
var ErrIndexUnavailable = errors.New("index not available")

// snapshot is one immutable build of the index. The embedder travels with
// the collection because its model is fitted per corpus: a query embedded
// with one build's model must never be scored against another build's
// vectors.
type snapshot struct {
	embedder   vectorstore.Embedder
	collection vectorstore.Collection
	events     []events.Event
}

// RefresherConfig wires a Refresher.
type RefresherConfig struct {
	Source       events.Source
	Store        vectorstore.Store
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	Collection   string        // defaults to DefaultCollection
	EmbedderKind string        // defaults to TF-IDF
	BatchSize    int           // defaults to DefaultBatchSize
	Interval     time.Duration // defaults to DefaultRefreshInterval
}

// Refresher owns the index lifecycle: lazy first build, manual refresh and
// the periodic rebuild loop. Searches read the current build through an
// atomically swapped snapshot and never see a partially populated index.
type Refresher struct {
	source       events.Source
	store        vectorstore.Store
	logger       *slog.Logger
	metrics      *metrics.Metrics
	collection   string
	embedderKind string
	batchSize    int
	interval     time.Duration

	initOnce sync.Once
	initErr  error

	refreshMu sync.Mutex // serializes rebuilds, never held during searches
	current   atomic.Pointer[snapshot]
}

// NewRefresher creates a refresher; it does not build anything yet.
func NewRefresher(cfg RefresherConfig) *Refresher {
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultRefreshInterval
	}
	return &Refresher{
		source:       cfg.Source,
		store:        cfg.Store,
		logger:       cfg.Logger,
		metrics:      cfg.Metrics,
		collection:   cfg.Collection,
		embedderKind: cfg.EmbedderKind,
		batchSize:    cfg.BatchSize,
		interval:     cfg.Interval,
	}
}

// Ensure performs the at-most-once first build. Concurrent first callers
// block on the same build instead of each starting their own. A persisted,
// non-empty collection is reused: the embedder is re-fitted from the stored
// documents, which reproduces the identical model because fitting is
// deterministic for a fixed corpus.
func (r *Refresher) Ensure(ctx context.Context) error {
	r.initOnce.Do(func() {
		if r.reusePersisted(ctx) {
			return
		}
		r.initErr = r.Refresh(ctx)
	})
	if r.initErr != nil && r.current.Load() == nil {
		return r.initErr
	}
	return nil
}

// reusePersisted tries to adopt a previously persisted collection.
func (r *Refresher) reusePersisted(ctx context.Context) bool {
	collection, err := r.store.Get(ctx, r.collection)
	if err != nil {
		return false
	}
	count, err := collection.Count(ctx)
	if err != nil || count == 0 {
		return false
	}

	documents, err := collection.Documents(ctx)
	if err != nil {
		r.logger.Warn("Persisted collection unreadable, rebuilding", "error", err)
		return false
	}
	embedder, err := vectorstore.FitEmbedder(r.embedderKind, documents, r.logger)
	if err != nil {
		r.logger.Warn("Failed to refit embedder on persisted documents, rebuilding", "error", err)
		return false
	}

	r.current.Store(&snapshot{embedder: embedder, collection: collection})
	if r.metrics != nil {
		r.metrics.IndexedEvents.Set(float64(count))
	}
	r.logger.Info("Reusing persisted index", "collection", r.collection, "entries", count)
	return true
}

// Refresh rebuilds the index from the event source. The replacement is built
// fully off to the side and swapped in atomically; on any failure the
// previous snapshot stays active.
func (r *Refresher) Refresh(ctx context.Context) error {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()

	start := time.Now()
	err := r.rebuild(ctx)
	if r.metrics != nil {
		r.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			r.metrics.RefreshFailures.Inc()
		} else {
			r.metrics.RefreshesTotal.Inc()
		}
	}
	return err
}

func (r *Refresher) rebuild(ctx context.Context) error {
	catalog, err := r.source.FetchEvents(ctx)
	if err != nil {
		return fmt.Errorf("fetch events: %w", err)
	}
	if len(catalog) == 0 {
		return ErrNoEvents
	}

	documents := make([]string, len(catalog))
	for i, event := range catalog {
		documents[i] = documentText(event)
	}

	embedder, err := vectorstore.FitEmbedder(r.embedderKind, documents, r.logger)
	if err != nil {
		return fmt.Errorf("fit embedder: %w", err)
	}

	collection, err := r.store.Create(ctx, r.collection)
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}

	// Embed and insert in fixed-size batches
	for offset := 0; offset < len(catalog); offset += r.batchSize {
		end := min(offset+r.batchSize, len(catalog))

		embeddings, err := embedder.EmbedBatch(documents[offset:end])
		if err != nil {
			return fmt.Errorf("embed batch at %d: %w", offset, err)
		}

		entries := make([]vectorstore.Entry, 0, end-offset)
		for i, event := range catalog[offset:end] {
			entries = append(entries, entryFor(event, embeddings[i]))
		}
		if err := collection.Insert(ctx, entries); err != nil {
			return fmt.Errorf("insert batch at %d: %w", offset, err)
		}
	}

	r.current.Store(&snapshot{
		embedder:   embedder,
		collection: collection,
		events:     catalog,
	})
	if r.metrics != nil {
		r.metrics.IndexedEvents.Set(float64(len(catalog)))
	}

	r.logger.Info("Index refreshed",
		"collection", r.collection,
		"events", len(catalog),
		"dimension", embedder.Dimension())
	return nil
}

// Run executes the periodic refresh loop until ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("Starting periodic index refresh", "interval", r.interval)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Stopping periodic index refresh")
			return
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil {
				r.logger.Error("Periodic index refresh failed", "error", err)
			}
		}
	}
}

// Events returns the catalog behind the active snapshot. When the snapshot
// was adopted from a persisted index the event list is fetched from the
// source instead.
func (r *Refresher) Events(ctx context.Context) ([]events.Event, error) {
	if snap := r.current.Load(); snap != nil && len(snap.events) > 0 {
		return snap.events, nil
	}
	return r.source.FetchEvents(ctx)
}

// snapshot returns the active build, or nil before the first successful one.
func (r *Refresher) snapshot() *snapshot {
	return r.current.Load()
}
