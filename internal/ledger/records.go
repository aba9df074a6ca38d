package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Record describes one stored raw payload.
type Record struct {
	InvocationID string
	Bucket       string
	Key          string
	PlaylistID   string
	SizeBytes    int
	StoredAt     time.Time
}

// RecordRepository handles ingest record operations.
type RecordRepository struct {
	pool *pgxpool.Pool
}

// Insert adds a record. Invocation IDs are unique, so a replayed
// invocation fails instead of silently overwriting history.
func (r *RecordRepository) Insert(ctx context.Context, rec Record) error {
	query := `
		INSERT INTO ingest_records (invocation_id, bucket, object_key, playlist_id, size_bytes, stored_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		rec.InvocationID,
		rec.Bucket,
		rec.Key,
		rec.PlaylistID,
		rec.SizeBytes,
		rec.StoredAt,
	)
	if err != nil {
		return fmt.Errorf("inserting ingest record: %w", err)
	}
	return nil
}

// Latest returns up to limit records, newest first.
func (r *RecordRepository) Latest(ctx context.Context, limit int) ([]Record, error) {
	query := `
		SELECT invocation_id, bucket, object_key, playlist_id, size_bytes, stored_at
		FROM ingest_records
		ORDER BY stored_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying ingest records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.InvocationID,
			&rec.Bucket,
			&rec.Key,
			&rec.PlaylistID,
			&rec.SizeBytes,
			&rec.StoredAt,
		); err != nil {
			return nil, fmt.Errorf("scanning ingest record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
