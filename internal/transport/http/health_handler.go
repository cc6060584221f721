package http

import (
	"net/http"

	"github.com/go-chi/render"

	"salesboard/internal/services"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	service *services.HealthService
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(service *services.HealthService) *HealthHandler {
	return &HealthHandler{service: service}
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Check(r.Context()))
}
