package controllers

import (
	"net/http"

	logpkg "github.com/behavioral-data/Data-Assistant-Interface/pkg/log"
)

// ControllerRegistry manages all HTTP controllers.
//
// It provides a centralized way to register all controller routes.
type ControllerRegistry struct {
	general *GeneralController
	events  *EventsController
}

// NewControllerRegistry creates a new controller registry.
func NewControllerRegistry(rec Recorder, logger logpkg.Logger, cfg Config) *ControllerRegistry {
	return &ControllerRegistry{
		general: NewGeneralController(rec, cfg.Metrics),
		events:  NewEventsController(rec, logger, cfg),
	}
}

// RegisterAllRoutes registers all controller routes with the given mux.
func (r *ControllerRegistry) RegisterAllRoutes(mux *http.ServeMux) {
	r.general.RegisterRoutes(mux)
	r.events.RegisterRoutes(mux)
}
