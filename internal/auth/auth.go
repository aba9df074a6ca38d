// Package auth provides Spotify client-credentials authentication.
package auth

import (
	"context"
	"errors"
	"net/http"
	"os"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrMissingCredentials is returned when the client id or secret is not set.
var ErrMissingCredentials = errors.New("missing Spotify client id or client secret")

// Credentials identify the application to the Spotify accounts service.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// CredentialsFromEnv reads the client id and secret from the named
// environment variables.
// Returns ErrMissingCredentials if either variable is empty.
func CredentialsFromEnv(idVar, secretVar string) (Credentials, error) {
	creds := Credentials{
		ClientID:     os.Getenv(idVar),
		ClientSecret: os.Getenv(secretVar),
	}
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return Credentials{}, ErrMissingCredentials
	}
	return creds, nil
}

type options struct {
	tokenURL string
}

// Option configures NewHTTPClient.
type Option func(*options)

// WithTokenURL overrides the Spotify token endpoint.
func WithTokenURL(url string) Option {
	return func(o *options) {
		o.tokenURL = url
	}
}

// NewHTTPClient returns an HTTP client authorized with the client-credentials
// flow. No request is made here: the token is exchanged on the first API
// call and kept in memory only.
func NewHTTPClient(ctx context.Context, creds Credentials, opts ...Option) (*http.Client, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}

	o := options{tokenURL: spotifyauth.TokenURL}
	for _, opt := range opts {
		opt(&o)
	}

	config := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     o.tokenURL,
	}

	return config.Client(ctx), nil
}
