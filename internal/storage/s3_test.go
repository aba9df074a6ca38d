package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *S3Store {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := s3.New(s3.Options{
		Region:                     "us-east-1",
		BaseEndpoint:               aws.String(server.URL),
		UsePathStyle:               true,
		Credentials:                aws.AnonymousCredentials{},
		HTTPClient:                 server.Client(),
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		RetryMaxAttempts:           1,
	})
	return NewS3Store(client)
}

func TestS3Store_PutObject(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotBody   []byte
	)

	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})

	body := []byte(`{"items":[],"total":0}`)
	err := store.PutObject(context.Background(), "spotify-etl-pipeline-learning", "raw_data/to_processed/spotify_raw_test.json", body)
	if err != nil {
		t.Fatalf("PutObject() error = %v", err)
	}

	if gotMethod != http.MethodPut {
		t.Errorf("method = %s, want PUT", gotMethod)
	}
	wantPath := "/spotify-etl-pipeline-learning/raw_data/to_processed/spotify_raw_test.json"
	if gotPath != wantPath {
		t.Errorf("path = %s, want %s", gotPath, wantPath)
	}
	if string(gotBody) != string(body) {
		t.Errorf("body = %s, want %s", gotBody, body)
	}
}

func TestS3Store_PutObjectAccessDenied(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+
			`<Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
	})

	err := store.PutObject(context.Background(), "bucket", "key.json", []byte("{}"))
	if err == nil {
		t.Fatal("PutObject() error = nil, want AccessDenied")
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("PutObject() error = %v, want smithy.APIError", err)
	}
	if apiErr.ErrorCode() != "AccessDenied" {
		t.Errorf("ErrorCode() = %q, want AccessDenied", apiErr.ErrorCode())
	}
}
