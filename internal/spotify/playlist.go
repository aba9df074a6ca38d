package spotify

import "strings"

// PlaylistID extracts the playlist identifier from a sharing link: the last
// path segment with any query string removed.
//
//	https://open.spotify.com/playlist/ABC123?si=xyz -> ABC123
func PlaylistID(link string) string {
	segments := strings.Split(link, "/")
	last := segments[len(segments)-1]
	id, _, _ := strings.Cut(last, "?")
	return id
}
