package vectorstore

import (
	"context"
	"errors"
)

// ErrCollectionNotFound is returned when a named collection does not exist.
// Callers should treat it as retryable: the index may be mid-rebuild.
var ErrCollectionNotFound = errors.New("collection not found")

// Metadata is the flat projection stored alongside each embedding. Values
// must be primitives (string, bool, number) because Filter only matches
// primitives.
type Metadata map[string]any

// Entry is one indexed record: id, embedding, metadata and the document text
// the embedding was computed from.
type Entry struct {
	ID        string
	Embedding []float32
	Metadata  Metadata
	Document  string
}

// Match is a query candidate returned by a collection: the stored metadata
// plus the stored embedding, so callers can score it against the query
// vector.
type Match struct {
	Metadata  Metadata
	Embedding []float32
}

// Embedder maps text to a fixed-dimension vector, deterministically for a
// fitted model.
type Embedder interface {
	// Embed creates an embedding vector for the given text
	Embed(text string) ([]float32, error)

	// EmbedBatch creates embeddings for a batch of texts
	EmbedBatch(texts []string) ([][]float32, error)

	// Dimension returns the dimensionality of generated embeddings
	Dimension() int
}

// Store owns named collections of entries.
type Store interface {
	// Get returns an existing collection or ErrCollectionNotFound.
	Get(ctx context.Context, name string) (Collection, error)

	// Create deletes any collection with the given name and returns a
	// fresh, empty one.
	Create(ctx context.Context, name string) (Collection, error)
}

// Collection is a set of entries supporting batched insert and filtered
// nearest-neighbor queries.
type Collection interface {
	// Insert adds a batch of entries.
	Insert(ctx context.Context, entries []Entry) error

	// Query returns up to topK entries nearest to vector among those whose
	// metadata satisfies filter, nearest first.
	Query(ctx context.Context, vector []float32, filter Filter, topK int) ([]Match, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Documents returns the stored document texts, in insertion order.
	Documents(ctx context.Context) ([]string, error)
}
