package handler

import (
	"context"
	"net/http"

	"github.com/codecraft/backend/internal/model"
)

// LandingSource provides the public landing content.
type LandingSource interface {
	Services() []model.Service
	Landing(ctx context.Context) (*model.Landing, error)
}

// LandingHandler serves the public landing page payload.
type LandingHandler struct {
	landing LandingSource
}

func NewLandingHandler(landing LandingSource) *LandingHandler {
	return &LandingHandler{landing: landing}
}

// Landing handles GET /api/landing.
func (h *LandingHandler) Landing(w http.ResponseWriter, r *http.Request) {
	l, err := h.landing.Landing(r.Context())
	if err != nil {
		writeServiceError(w, err, "landing_failed")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// Services handles GET /api/services.
func (h *LandingHandler) Services(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"services": h.landing.Services()})
}
