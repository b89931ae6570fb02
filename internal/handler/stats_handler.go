package handler

import (
	"context"
	"net/http"

	"github.com/codecraft/backend/internal/model"
)

// StatsSource computes dashboard counters.
type StatsSource interface {
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
}

// StatsHandler serves GET /api/admin/stats.
type StatsHandler struct {
	stats StatsSource
}

func NewStatsHandler(stats StatsSource) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	st, err := h.stats.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, err, "stats_failed")
		return
	}
	writeJSON(w, http.StatusOK, st)
}
