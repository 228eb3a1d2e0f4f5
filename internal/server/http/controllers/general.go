package controllers

import (
	"net/http"
)

// GeneralController handles endpoints that are not tied to event submission:
// health and metrics.
type GeneralController struct {
	rec     Recorder
	metrics http.Handler
}

// NewGeneralController creates a new general controller. metrics may be nil.
func NewGeneralController(rec Recorder, metrics http.Handler) *GeneralController {
	return &GeneralController{
		rec:     rec,
		metrics: metrics,
	}
}

// RegisterRoutes registers general routes with the given mux.
//
// This method sets up HTTP endpoints for:
// - Health checks (/healthz)
// - Prometheus scraping (/metrics), when a metrics handler is configured
func (c *GeneralController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", c.handleHealth)
	if c.metrics != nil {
		mux.Handle("/metrics", c.metrics)
	}
}

// handleHealth returns the health status of the service.
//
// Returns 200 OK with {"status": "ok"} if the log directory can be written,
// 503 Service Unavailable otherwise.
func (c *GeneralController) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.rec.CheckHealth(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_serving")
		return
	}
	writeJSON(w, http.StatusOK, statusResp{Status: "ok"})
}
