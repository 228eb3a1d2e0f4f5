package controllers

import (
	"context"
	"net/http"

	"github.com/behavioral-data/Data-Assistant-Interface/internal/eventlog"
)

// Recorder is the event logger the controllers delegate to.
type Recorder interface {
	Record(ctx context.Context, body []byte) (eventlog.Ack, error)
	CheckHealth(ctx context.Context) error
}

// Config carries the per-deployment settings the controllers need.
type Config struct {
	// BasePath is the server base URL the routes are mounted under.
	BasePath string
	// MaxBodyBytes caps request bodies; zero means unlimited.
	MaxBodyBytes int64
	// Token, when set, must accompany every event submission.
	Token string
	// Metrics serves GET /metrics when non-nil.
	Metrics http.Handler
}

// messageResp is the body of every non-2xx response.
type messageResp struct {
	Message string `json:"message"`
}

// statusResp is the body of a healthy /healthz response.
type statusResp struct {
	Status string `json:"status"`
}
