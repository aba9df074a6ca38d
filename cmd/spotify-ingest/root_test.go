package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlaylistIDCommand(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{"plain link", "https://open.spotify.com/playlist/7qxn6GsFH77ghVtKzOnAYA", "7qxn6GsFH77ghVtKzOnAYA"},
		{"with query", "https://open.spotify.com/playlist/ABC123?si=xyz", "ABC123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCommand()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs([]string{"playlist-id", tt.link})

			if err := cmd.Execute(); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if got := strings.TrimSpace(out.String()); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlaylistIDCommand_RequiresLink(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"playlist-id"})

	if err := cmd.Execute(); err == nil {
		t.Error("Execute() error = nil, want argument error")
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()

	for _, name := range []string{"run", "serve", "playlist-id"} {
		found, _, err := cmd.Find([]string{name})
		if err != nil || found.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
