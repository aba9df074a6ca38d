package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/justestif/spotify-raw-ingest/internal/ingest"
)

type fakeRunner struct {
	res   *ingest.Result
	err   error
	calls int
}

func (f *fakeRunner) Run(context.Context) (*ingest.Result, error) {
	f.calls++
	return f.res, f.err
}

func TestHealth(t *testing.T) {
	s := NewServer("127.0.0.1:0", &fakeRunner{}, zap.NewNop())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}

func TestInvoke(t *testing.T) {
	tests := []struct {
		name       string
		runner     *fakeRunner
		wantStatus int
		wantBody   invokeResponse
	}{
		{
			name: "success",
			runner: &fakeRunner{res: &ingest.Result{
				InvocationID: "req-1",
				Bucket:       "spotify-etl-pipeline-learning",
				Key:          "raw_data/to_processed/spotify_raw_x.json",
				SizeBytes:    10,
			}},
			wantStatus: http.StatusOK,
			wantBody: invokeResponse{
				Status:       "ok",
				InvocationID: "req-1",
				Bucket:       "spotify-etl-pipeline-learning",
				Key:          "raw_data/to_processed/spotify_raw_x.json",
				Bytes:        10,
			},
		},
		{
			name:       "failure",
			runner:     &fakeRunner{err: errors.New("storing payload: access denied")},
			wantStatus: http.StatusBadGateway,
			wantBody:   invokeResponse{Status: "failed", Error: "storing payload: access denied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer("127.0.0.1:0", tt.runner, zap.NewNop())

			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/invoke", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var got invokeResponse
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if got != tt.wantBody {
				t.Errorf("body = %+v, want %+v", got, tt.wantBody)
			}
			if tt.runner.calls != 1 {
				t.Errorf("runner called %d times, want 1", tt.runner.calls)
			}
		})
	}
}

func TestInvoke_RejectsGet(t *testing.T) {
	runner := &fakeRunner{}
	s := NewServer("127.0.0.1:0", runner, zap.NewNop())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/invoke", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if runner.calls != 0 {
		t.Errorf("runner called %d times, want 0", runner.calls)
	}
}
