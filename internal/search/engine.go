package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/radutopala/eventscout/internal/events"
	"github.com/radutopala/eventscout/internal/extract"
	"github.com/radutopala/eventscout/internal/metrics"
	"github.com/radutopala/eventscout/internal/vectorstore"
)

const (
	// TopK is the number of nearest neighbors retrieved per search.
	TopK = 10

	// SimilarityThreshold is the minimum cosine similarity for a candidate
	// to appear in results. A score exactly at the threshold is kept.
	SimilarityThreshold = 0.2

	// DefaultScope is the caller scope used when none is supplied.
	DefaultScope = "default"
)

// Engine answers natural-language event searches: extract filters, embed the
// residual query, retrieve under the filters, score and rank.
type Engine struct {
	refresher *Refresher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewEngine creates a search engine over the refresher's index.
func NewEngine(refresher *Refresher, logger *slog.Logger, m *metrics.Metrics) *Engine {
	return &Engine{
		refresher: refresher,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
	}
}

// Search runs a query for the given caller scope and returns ranked event
// metadata, best match first. An empty result is a valid outcome, not an
// error.
func (e *Engine) Search(ctx context.Context, query, scope string) ([]vectorstore.Metadata, error) {
	results, err := e.search(ctx, query, scope)
	if e.metrics != nil {
		e.metrics.SearchesTotal.Inc()
		if err != nil {
			e.metrics.SearchFailures.Inc()
		}
	}
	return results, err
}

func (e *Engine) search(ctx context.Context, query, scope string) ([]vectorstore.Metadata, error) {
	if scope == "" {
		scope = DefaultScope
	}

	if err := e.refresher.Ensure(ctx); err != nil {
		return nil, fmt.Errorf("ensure index: %w", err)
	}
	snap := e.refresher.snapshot()
	if snap == nil {
		return nil, ErrIndexUnavailable
	}

	cleaned, filters := extract.ExtractAt(query, e.now())
	e.logger.Debug("Extracted query filters",
		"query", query,
		"cleaned", cleaned,
		"location", filters.Location,
		"category", filters.Category,
		"date", filters.Date)

	queryVector, err := snap.embedder.Embed(cleaned)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := snap.collection.Query(ctx, queryVector, retrievalFilter(scope, filters), TopK)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	type scored struct {
		metadata vectorstore.Metadata
		score    float32
	}

	kept := make([]scored, 0, len(matches))
	for _, match := range matches {
		score := vectorstore.CosineSimilarity(queryVector, match.Embedding)
		if score < SimilarityThreshold {
			continue
		}
		kept = append(kept, scored{metadata: match.Metadata, score: score})
	}

	// Best first; stable so store order breaks ties
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})

	results := make([]vectorstore.Metadata, len(kept))
	for i, candidate := range kept {
		results[i] = candidate.metadata
	}

	e.logger.Info("Search completed",
		"query", query,
		"scope", scope,
		"candidates", len(matches),
		"results", len(results))
	return results, nil
}

// retrievalFilter combines scope membership with the extracted equality
// filters. Events are visible when owned globally or by the caller; the
// extracted date is intentionally not part of retrieval since the catalog
// stores full timestamps, not calendar days.
func retrievalFilter(scope string, filters extract.Filters) vectorstore.Filter {
	scopeFilter := vectorstore.Or(
		vectorstore.Eq("user_id", events.ScopeGlobal),
		vectorstore.Eq("user_id", scope),
	)

	clauses := []vectorstore.Filter{scopeFilter}
	if filters.IsFree != nil {
		clauses = append(clauses, vectorstore.Eq("isFree", *filters.IsFree))
	}
	if filters.Location != "" {
		clauses = append(clauses, vectorstore.Eq("location", filters.Location))
	}
	if filters.Category != "" {
		clauses = append(clauses, vectorstore.Eq("category", filters.Category))
	}

	if len(clauses) == 1 {
		return scopeFilter
	}
	return vectorstore.And(clauses...)
}
