// Package storage writes ingest payloads to object storage.
package storage

import "context"

// ObjectStore stores a single object under bucket/key.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key string, body []byte) error
}
