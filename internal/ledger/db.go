// Package ledger records stored ingest objects in PostgreSQL so a later
// processing stage can find them without listing the bucket.
package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
	CREATE TABLE IF NOT EXISTS ingest_records (
		invocation_id TEXT PRIMARY KEY,
		bucket        TEXT NOT NULL,
		object_key    TEXT NOT NULL,
		playlist_id   TEXT NOT NULL,
		size_bytes    INTEGER NOT NULL,
		stored_at     TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS ingest_records_stored_at_idx ON ingest_records (stored_at DESC);
`

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// EnsureSchema creates the ledger table if it does not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating ledger schema: %w", err)
	}
	return nil
}

// Close closes the database connection pool.
func (db *DB) Close() {
	db.pool.Close()
}

// Records returns a RecordRepository.
func (db *DB) Records() *RecordRepository {
	return &RecordRepository{pool: db.pool}
}
