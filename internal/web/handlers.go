package web

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/justestif/spotify-raw-ingest/internal/ingest"
)

// Runner performs one ingest.
type Runner interface {
	Run(ctx context.Context) (*ingest.Result, error)
}

// Handlers contains the trigger endpoints.
type Handlers struct {
	runner Runner
	logger *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(runner Runner, logger *zap.Logger) *Handlers {
	return &Handlers{runner: runner, logger: logger}
}

type invokeResponse struct {
	Status       string `json:"status"`
	InvocationID string `json:"invocation_id,omitempty"`
	Bucket       string `json:"bucket,omitempty"`
	Key          string `json:"key,omitempty"`
	Bytes        int    `json:"bytes,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Health reports liveness (GET /healthz).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// Invoke runs one ingest (POST /invoke). The request body is ignored, as
// the Lambda event is.
func (h *Handlers) Invoke(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(zap.String("request_id", middleware.GetReqID(r.Context())))

	res, err := h.runner.Run(r.Context())
	if err != nil {
		logger.Error("ingest failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, invokeResponse{Status: "failed", Error: err.Error()})
		return
	}

	logger.Info("ingest complete", zap.String("key", res.Key))
	writeJSON(w, http.StatusOK, invokeResponse{
		Status:       "ok",
		InvocationID: res.InvocationID,
		Bucket:       res.Bucket,
		Key:          res.Key,
		Bytes:        res.SizeBytes,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
