// Package spotify provides a wrapper around the Spotify Web API.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/zmb3/spotify/v2"
)

const defaultBaseURL = "https://api.spotify.com/v1/"

// Client wraps the Spotify API client with the calls needed for ingest.
type Client struct {
	api        *spotify.Client
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root. The URL must end
// with a slash.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// New creates a new Spotify client wrapper.
// The HTTP client should already be authenticated.
func New(httpClient *http.Client, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.api = spotify.New(httpClient, spotify.WithBaseURL(c.baseURL))
	return c
}

// UserPlaylists returns the first page of public playlists owned by user.
func (c *Client) UserPlaylists(ctx context.Context, user string) (*spotify.SimplePlaylistPage, error) {
	page, err := c.api.GetPlaylistsForUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("listing playlists for %s: %w", user, err)
	}
	return page, nil
}

// PlaylistTracks returns the first page of a playlist's tracks exactly as
// the API sent it, using the provider's default limit and offset.
// The body is kept raw so that fields the typed models do not know about
// survive into storage.
func (c *Client) PlaylistTracks(ctx context.Context, playlistID string) (json.RawMessage, error) {
	reqURL := c.baseURL + "playlists/" + url.PathEscape(playlistID) + "/tracks"

	body, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("fetching playlist tracks: %w", err)
	}
	return body, nil
}

// doRequest performs a single authenticated GET and returns the body.
// Non-2xx responses are returned as spotify.Error.
func (c *Client) doRequest(ctx context.Context, reqURL string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp.StatusCode, body)
	}

	return body, nil
}

// decodeError builds a spotify.Error from an error response body, falling
// back to the HTTP status text when the body is not the usual envelope.
func decodeError(status int, body []byte) error {
	var envelope struct {
		Error spotify.Error `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Message == "" {
		return spotify.Error{Status: status, Message: http.StatusText(status)}
	}
	if envelope.Error.Status == 0 {
		envelope.Error.Status = status
	}
	return envelope.Error
}
