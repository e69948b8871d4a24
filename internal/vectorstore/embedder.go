package vectorstore

import (
	"fmt"
	"log/slog"
)

// Embedder kinds selectable through configuration.
const (
	KindTFIDF    = "tfidf"
	KindWord2Vec = "word2vec"
)

// Defaults for the word2vec-style embedder.
const (
	DefaultWindowSize = 5
	DefaultDimension  = 100
)

// FitEmbedder builds and fits an embedder of the given kind on the corpus.
// An empty kind selects TF-IDF.
func FitEmbedder(kind string, documents []string, logger *slog.Logger) (Embedder, error) {
	switch kind {
	case "", KindTFIDF:
		embedder := NewTFIDFEmbedder(logger)
		embedder.BuildVocabulary(documents)
		return embedder, nil
	case KindWord2Vec:
		embedder := NewWord2VecEmbedder(DefaultWindowSize, DefaultDimension)
		embedder.BuildVocabulary(documents)
		return embedder, nil
	default:
		return nil, fmt.Errorf("unknown embedder kind: %s (available: %s, %s)", kind, KindTFIDF, KindWord2Vec)
	}
}
