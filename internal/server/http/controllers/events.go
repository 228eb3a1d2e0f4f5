package controllers

import (
	"errors"
	"io"
	"net/http"
	"path"

	"github.com/behavioral-data/Data-Assistant-Interface/internal/eventlog"
	logpkg "github.com/behavioral-data/Data-Assistant-Interface/pkg/log"
)

// EventsController serves the event submission endpoint.
//
// Each POST body is handed unchanged to the recorder, which validates it and
// appends it to the per-context daily log file.
type EventsController struct {
	rec     Recorder
	logger  logpkg.Logger
	route   string
	maxBody int64
	token   string
}

// NewEventsController creates a new events controller.
func NewEventsController(rec Recorder, logger logpkg.Logger, cfg Config) *EventsController {
	return &EventsController{
		rec:     rec,
		logger:  logger,
		route:   EventsRoute(cfg.BasePath),
		maxBody: cfg.MaxBodyBytes,
		token:   cfg.Token,
	}
}

// EventsRoute returns the submission path for a server mounted at basePath.
func EventsRoute(basePath string) string {
	return path.Join("/", basePath, "jupyterlab-log", "log")
}

// RegisterRoutes registers the submission route with the given mux.
func (c *EventsController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc(c.route, c.handleLog)
}

// handleLog records one event.
//
// Returns 200 with {"status":"ok","msg":"done!"} once the line is appended.
func (c *EventsController) handleLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if c.token != "" && !tokenMatches(requestToken(r), c.token) {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	body := r.Body
	if c.maxBody > 0 {
		body = http.MaxBytesReader(w, r.Body, c.maxBody)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	ack, err := c.rec.Record(r.Context(), data)
	if err != nil {
		if eventlog.IsClientError(err) {
			c.logger.WithContext(r.Context()).Debug("event rejected",
				logpkg.Str("reason", eventlog.KindOf(err).String()))
			writeError(w, http.StatusBadRequest, eventlog.PublicMessage(err))
			return
		}
		writeError(w, http.StatusInternalServerError, eventlog.PublicMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, ack)
}
