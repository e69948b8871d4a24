package vectorstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists collections in a SQLite database so an index built in
// a previous run can be reused instead of re-embedding the whole catalog.
// Embeddings and metadata are stored as JSON; similarity ranking happens
// in-process after loading the candidate rows.
//
// Collections are generational: Create starts a new generation while the
// previous one stays readable for callers still holding it, and generations
// older than that are pruned. Readers swapping a collection reference
// therefore never observe a half-built index.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens or creates the index database at path.
func NewSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS collections (
			name       TEXT NOT NULL,
			generation INTEGER NOT NULL,
			PRIMARY KEY (name, generation)
		);
		CREATE TABLE IF NOT EXISTS entries (
			collection TEXT NOT NULL,
			generation INTEGER NOT NULL,
			position   INTEGER NOT NULL,
			id         TEXT NOT NULL,
			embedding  TEXT NOT NULL,
			metadata   TEXT NOT NULL,
			document   TEXT NOT NULL,
			PRIMARY KEY (collection, generation, id)
		);
		CREATE INDEX IF NOT EXISTS idx_entries_position
			ON entries(collection, generation, position);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index schema: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get returns the latest generation of an existing collection, or
// ErrCollectionNotFound.
func (s *SQLiteStore) Get(ctx context.Context, name string) (Collection, error) {
	var generation sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(generation) FROM collections WHERE name = ?`, name).Scan(&generation)
	if err != nil {
		return nil, fmt.Errorf("look up collection %s: %w", name, err)
	}
	if !generation.Valid {
		return nil, ErrCollectionNotFound
	}
	return &sqliteCollection{store: s, name: name, generation: generation.Int64}, nil
}

// Create starts a fresh generation of the named collection. The immediately
// preceding generation survives until the next Create so current readers
// finish against a complete index; anything older is pruned.
func (s *SQLiteStore) Create(ctx context.Context, name string) (Collection, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create collection: %w", err)
	}
	defer tx.Rollback()

	var latest sql.NullInt64
	if err := tx.QueryRowContext(ctx,
		`SELECT MAX(generation) FROM collections WHERE name = ?`, name).Scan(&latest); err != nil {
		return nil, fmt.Errorf("look up collection %s: %w", name, err)
	}

	next := int64(0)
	if latest.Valid {
		next = latest.Int64 + 1
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM entries WHERE collection = ? AND generation < ?`, name, next-1); err != nil {
		return nil, fmt.Errorf("prune old generations of %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM collections WHERE name = ? AND generation < ?`, name, next-1); err != nil {
		return nil, fmt.Errorf("prune old generations of %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO collections (name, generation) VALUES (?, ?)`, name, next); err != nil {
		return nil, fmt.Errorf("register collection %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create collection: %w", err)
	}

	s.logger.Info("Created persistent collection", "name", name, "generation", next)
	return &sqliteCollection{store: s, name: name, generation: next}, nil
}

type sqliteCollection struct {
	store      *SQLiteStore
	name       string
	generation int64
}

func (c *sqliteCollection) Insert(ctx context.Context, entries []Entry) error {
	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	var base int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE collection = ? AND generation = ?`,
		c.name, c.generation).Scan(&base); err != nil {
		return fmt.Errorf("count entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (collection, generation, position, id, embedding, metadata, document)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, entry := range entries {
		embedding, err := json.Marshal(entry.Embedding)
		if err != nil {
			return fmt.Errorf("encode embedding for %s: %w", entry.ID, err)
		}
		metadata, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("encode metadata for %s: %w", entry.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			c.name, c.generation, base+i, entry.ID,
			string(embedding), string(metadata), entry.Document); err != nil {
			return fmt.Errorf("insert entry %s: %w", entry.ID, err)
		}
	}

	return tx.Commit()
}

func (c *sqliteCollection) Query(ctx context.Context, vector []float32, filter Filter, topK int) ([]Match, error) {
	rows, err := c.store.db.QueryContext(ctx, `
		SELECT embedding, metadata FROM entries
		WHERE collection = ? AND generation = ? ORDER BY position`,
		c.name, c.generation)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	type scored struct {
		match Match
		score float32
	}

	var candidates []scored
	for rows.Next() {
		var embeddingJSON, metadataJSON string
		if err := rows.Scan(&embeddingJSON, &metadataJSON); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		var embedding []float32
		if err := json.Unmarshal([]byte(embeddingJSON), &embedding); err != nil {
			return nil, fmt.Errorf("decode embedding: %w", err)
		}
		var metadata Metadata
		if err := json.Unmarshal([]byte(metadataJSON), &metadata); err != nil {
			return nil, fmt.Errorf("decode metadata: %w", err)
		}

		if !filter.Matches(metadata) {
			continue
		}
		candidates = append(candidates, scored{
			match: Match{Metadata: metadata, Embedding: embedding},
			score: CosineSimilarity(vector, embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

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

func (c *sqliteCollection) Count(ctx context.Context) (int, error) {
	var count int
	err := c.store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE collection = ? AND generation = ?`,
		c.name, c.generation).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

func (c *sqliteCollection) Documents(ctx context.Context) ([]string, error) {
	rows, err := c.store.db.QueryContext(ctx, `
		SELECT document FROM entries
		WHERE collection = ? AND generation = ? ORDER BY position`,
		c.name, c.generation)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var documents []string
	for rows.Next() {
		var document string
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		documents = append(documents, document)
	}
	return documents, rows.Err()
}
