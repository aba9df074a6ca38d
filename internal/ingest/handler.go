// Package ingest fetches a playlist's first page of tracks and stores the raw
// payload in object storage.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/zmb3/spotify/v2"
	"go.uber.org/zap"

	"github.com/justestif/spotify-raw-ingest/internal/auth"
	"github.com/justestif/spotify-raw-ingest/internal/config"
	"github.com/justestif/spotify-raw-ingest/internal/ledger"
	spotifyclient "github.com/justestif/spotify-raw-ingest/internal/spotify"
	"github.com/justestif/spotify-raw-ingest/internal/storage"
)

// Fetcher is the subset of the Spotify client used by the handler.
type Fetcher interface {
	UserPlaylists(ctx context.Context, user string) (*spotify.SimplePlaylistPage, error)
	PlaylistTracks(ctx context.Context, playlistID string) (json.RawMessage, error)
}

// ClientFactory builds a Fetcher for one invocation.
type ClientFactory func(ctx context.Context, creds auth.Credentials) (Fetcher, error)

// Recorder persists a record of each stored object.
type Recorder interface {
	Insert(ctx context.Context, rec ledger.Record) error
}

// Result describes a completed ingest.
type Result struct {
	InvocationID string
	PlaylistID   string
	Bucket       string
	Key          string
	SizeBytes    int
}

// Handler runs one ingest per invocation. It holds no state between runs.
type Handler struct {
	cfg          *config.Config
	store        storage.ObjectStore
	logger       *zap.Logger
	newClient    ClientFactory
	recorder     Recorder
	now          func() time.Time
	invocationID func(ctx context.Context) string
}

// Option configures a Handler.
type Option func(*Handler)

// WithClientFactory replaces the Spotify client constructor.
func WithClientFactory(f ClientFactory) Option {
	return func(h *Handler) {
		h.newClient = f
	}
}

// WithRecorder enables the ingest ledger.
func WithRecorder(r Recorder) Option {
	return func(h *Handler) {
		h.recorder = r
	}
}

// WithClock sets the time source used for object keys.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

// WithInvocationID sets how the per-invocation token is derived.
func WithInvocationID(f func(ctx context.Context) string) Option {
	return func(h *Handler) {
		h.invocationID = f
	}
}

// New creates a Handler that writes to store.
func New(cfg *config.Config, store storage.ObjectStore, logger *zap.Logger, opts ...Option) *Handler {
	h := &Handler{
		cfg:          cfg,
		store:        store,
		logger:       logger,
		newClient:    defaultClientFactory,
		now:          time.Now,
		invocationID: defaultInvocationID,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle is the Lambda entry point. The event is not inspected.
func (h *Handler) Handle(ctx context.Context, _ json.RawMessage) error {
	res, err := h.Run(ctx)
	if err != nil {
		h.logger.Error("ingest failed", zap.Error(err))
		return err
	}

	h.logger.Info("ingest complete",
		zap.String("invocation_id", res.InvocationID),
		zap.String("bucket", res.Bucket),
		zap.String("key", res.Key),
		zap.Int("bytes", res.SizeBytes),
	)
	return nil
}

// Run performs one ingest and returns what was stored. The first failing
// step aborts the run; nothing is retried.
func (h *Handler) Run(ctx context.Context) (*Result, error) {
	invocationID := h.invocationID(ctx)
	logger := h.logger.With(zap.String("invocation_id", invocationID))

	creds, err := auth.CredentialsFromEnv(h.cfg.ClientIDVar, h.cfg.ClientSecretVar)
	if err != nil {
		return nil, err
	}

	client, err := h.newClient(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("creating spotify client: %w", err)
	}

	// The probe's result is discarded; only its failure matters.
	if h.cfg.DiscoverUser != "" {
		playlists, err := client.UserPlaylists(ctx, h.cfg.DiscoverUser)
		if err != nil {
			return nil, fmt.Errorf("discovery probe: %w", err)
		}
		logger.Debug("discovery probe",
			zap.String("user", h.cfg.DiscoverUser),
			zap.Int("playlists", len(playlists.Playlists)),
		)
	}

	playlistID := spotifyclient.PlaylistID(h.cfg.PlaylistLink)

	page, err := client.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(page)
	if err != nil {
		return nil, fmt.Errorf("encoding playlist tracks: %w", err)
	}

	logger.Info("fetched playlist tracks",
		zap.String("playlist_id", playlistID),
		zap.Int("bytes", len(payload)),
	)
	logger.Debug("playlist tracks payload", zap.Reflect("payload", json.RawMessage(payload)))

	storedAt := h.now()
	key := ObjectKey(h.cfg.KeyPrefix, storedAt, invocationID)

	if err := h.store.PutObject(ctx, h.cfg.Bucket, key, payload); err != nil {
		return nil, fmt.Errorf("storing payload: %w", err)
	}

	res := &Result{
		InvocationID: invocationID,
		PlaylistID:   playlistID,
		Bucket:       h.cfg.Bucket,
		Key:          key,
		SizeBytes:    len(payload),
	}

	if h.recorder != nil {
		err := h.recorder.Insert(ctx, ledger.Record{
			InvocationID: invocationID,
			Bucket:       res.Bucket,
			Key:          res.Key,
			PlaylistID:   playlistID,
			SizeBytes:    res.SizeBytes,
			StoredAt:     storedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("recording ingest: %w", err)
		}
	}

	return res, nil
}

func defaultClientFactory(ctx context.Context, creds auth.Credentials) (Fetcher, error) {
	httpClient, err := auth.NewHTTPClient(ctx, creds)
	if err != nil {
		return nil, err
	}
	return spotifyclient.New(httpClient), nil
}

// defaultInvocationID uses the Lambda request ID when running under Lambda
// and a random UUID otherwise.
func defaultInvocationID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}
