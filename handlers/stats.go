// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/kindly-fund/campaign"
	"github.com/danielhkuo/kindly-fund/middleware"
)

type StatsHandler struct {
	engine *campaign.Engine
}

func NewStatsHandler(engine *campaign.Engine) *StatsHandler {
	return &StatsHandler{engine: engine}
}

// PublicStats handles GET /stats
func (h *StatsHandler) PublicStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.engine.PublicStats()
	if err != nil {
		slog.Error("failed to load public stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, stats)
}
