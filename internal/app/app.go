// Package app wires configuration, storage and the ledger into an ingest
// handler for the command entry points.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/justestif/spotify-raw-ingest/internal/config"
	"github.com/justestif/spotify-raw-ingest/internal/ingest"
	"github.com/justestif/spotify-raw-ingest/internal/ledger"
	"github.com/justestif/spotify-raw-ingest/internal/storage"
)

// App holds the long-lived dependencies of a process.
type App struct {
	Handler *ingest.Handler
	db      *ledger.DB
}

// New builds the handler for cfg. The S3 client uses the default AWS
// credential chain; the ledger is opened only when DatabaseURL is set.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	store, err := storage.NewS3StoreFromEnv(ctx)
	if err != nil {
		return nil, err
	}

	a := &App{}
	var opts []ingest.Option

	if cfg.DatabaseURL != "" {
		db, err := ledger.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("opening ledger: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		a.db = db
		opts = append(opts, ingest.WithRecorder(db.Records()))
		logger.Info("ingest ledger enabled")
	}

	a.Handler = ingest.New(cfg, store, logger, opts...)
	return a, nil
}

// Close releases the ledger connection pool, if any.
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
