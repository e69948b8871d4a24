package vectorstore

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"
)

// InMemoryStore keeps collections in process memory. The default store when
// no index path is configured.
type InMemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
	logger      *slog.Logger
}

// NewInMemoryStore creates an empty in-memory collection store.
func NewInMemoryStore(logger *slog.Logger) *InMemoryStore {
	return &InMemoryStore{
		collections: make(map[string]*memoryCollection),
		logger:      logger,
	}
}

// Get returns an existing collection or ErrCollectionNotFound.
func (s *InMemoryStore) Get(ctx context.Context, name string) (Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	collection, ok := s.collections[name]
	if !ok {
		return nil, ErrCollectionNotFound
	}
	return collection, nil
}

// Create drops any collection with the given name and returns a fresh one.
func (s *InMemoryStore) Create(ctx context.Context, name string) (Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection := &memoryCollection{}
	s.collections[name] = collection
	s.logger.Info("Created collection", "name", name)
	return collection, nil
}

type memoryCollection struct {
	mu      sync.RWMutex
	entries []Entry
}

func (c *memoryCollection) Insert(ctx context.Context, entries []Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, entries...)
	return nil
}

func (c *memoryCollection) Query(ctx context.Context, vector []float32, filter Filter, topK int) ([]Match, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	type scored struct {
		match Match
		score float32
	}

	candidates := make([]scored, 0, len(c.entries))
	for _, entry := range c.entries {
		if !filter.Matches(entry.Metadata) {
			continue
		}
		candidates = append(candidates, scored{
			match: Match{Metadata: entry.Metadata, Embedding: entry.Embedding},
			score: CosineSimilarity(vector, entry.Embedding),
		})
	}

	// Nearest first; stable so insertion order breaks ties
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	limit := min(topK, len(candidates))
	matches := make([]Match, limit)
	for i := 0; i < limit; i++ {
		matches[i] = candidates[i].match
	}
	return matches, nil
}

func (c *memoryCollection) Count(ctx context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries), nil
}

func (c *memoryCollection) Documents(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	documents := make([]string, len(c.entries))
	for i, entry := range c.entries {
		documents[i] = entry.Document
	}
	return documents, nil
}

// CosineSimilarity calculates the cosine similarity between two vectors.
// Mismatched lengths or a zero-norm vector score 0 (maximally dissimilar)
// rather than erroring.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float32

	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
