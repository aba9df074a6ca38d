// Package config holds the settings for a playlist ingest run.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Defaults for a standard deployment.
const (
	DefaultPlaylistLink    = "https://open.spotify.com/playlist/7qxn6GsFH77ghVtKzOnAYA"
	DefaultBucket          = "spotify-etl-pipeline-learning"
	DefaultKeyPrefix       = "raw_data/to_processed/"
	DefaultDiscoverUser    = "spotify"
	DefaultClientIDVar     = "client_id"
	DefaultClientSecretVar = "client_secret"
	DefaultLogLevel        = "info"
	DefaultHTTPAddr        = "127.0.0.1:8080"
)

// Config holds ingest configuration.
// Credentials are not part of Config; they are read from the environment
// on each invocation.
type Config struct {
	// PlaylistLink is the sharing link of the playlist to ingest.
	PlaylistLink string

	// Bucket and KeyPrefix locate stored objects.
	Bucket    string
	KeyPrefix string

	// DiscoverUser is the account whose playlists are listed before the
	// fetch. Empty disables the probe.
	DiscoverUser string

	// Environment variable names holding the client credentials.
	ClientIDVar     string
	ClientSecretVar string

	// DatabaseURL enables the ingest ledger when set.
	DatabaseURL string

	LogLevel string
	LogFile  string

	// HTTPAddr is the listen address of the local trigger server.
	HTTPAddr string
}

// Default returns a Config populated with the default values.
func Default() *Config {
	return &Config{
		PlaylistLink:    DefaultPlaylistLink,
		Bucket:          DefaultBucket,
		KeyPrefix:       DefaultKeyPrefix,
		DiscoverUser:    DefaultDiscoverUser,
		ClientIDVar:     DefaultClientIDVar,
		ClientSecretVar: DefaultClientSecretVar,
		LogLevel:        DefaultLogLevel,
		HTTPAddr:        DefaultHTTPAddr,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults. A .env file in the working directory is loaded first if present.
func Load() *Config {
	// Missing .env is the normal case in Lambda.
	_ = godotenv.Load()

	cfg := Default()
	cfg.PlaylistLink = getEnv("PLAYLIST_LINK", cfg.PlaylistLink)
	cfg.Bucket = getEnv("BUCKET_NAME", cfg.Bucket)
	cfg.KeyPrefix = getEnv("KEY_PREFIX", cfg.KeyPrefix)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", cfg.HTTPAddr)

	// An explicitly empty DISCOVER_USER turns the probe off.
	if v, ok := os.LookupEnv("DISCOVER_USER"); ok {
		cfg.DiscoverUser = v
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
