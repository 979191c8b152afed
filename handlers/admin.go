// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/kindly-fund/auth"
	"github.com/danielhkuo/kindly-fund/campaign"
	"github.com/danielhkuo/kindly-fund/cliparse"
	"github.com/danielhkuo/kindly-fund/middleware"
	"github.com/danielhkuo/kindly-fund/models"
)

type AdminHandler struct {
	engine *campaign.Engine
	cfg    cliparse.Config
}

func NewAdminHandler(engine *campaign.Engine, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{engine: engine, cfg: cfg}
}

// authorize checks the Bearer token against the configured admin token.
// Writes the error response itself; callers just return on false.
func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	token := auth.BearerToken(r.Header.Get("Authorization"))
	if err := auth.ValidateAdminToken(token, h.cfg.AdminToken); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin token")
		return false
	}
	return true
}

// ListApplications handles GET /admin/applications?status=PENDING
func (h *AdminHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	apps, err := h.engine.Store().FindApplications(campaign.Filter{
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		slog.Error("failed to list applications", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, apps)
}

// Approve handles POST /admin/applications/{id}/approve
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.engine.Approve)
}

// Reject handles POST /admin/applications/{id}/reject
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.engine.Reject)
}

func (h *AdminHandler) moderate(w http.ResponseWriter, r *http.Request, apply func(string) (*models.Application, error)) {
	if !h.authorize(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	app, err := apply(id)
	switch {
	case errors.Is(err, campaign.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Application not found")
		return
	case errors.Is(err, campaign.ErrInvalidTransition):
		middleware.ErrorResponse(w, http.StatusConflict, "Application is past moderation")
		return
	case err != nil:
		slog.Error("failed to moderate application", "error", err, "application_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("application moderated", "application_id", id, "status", app.Status)
	middleware.JSONResponse(w, http.StatusOK, app)
}

// Select handles POST /admin/select
func (h *AdminHandler) Select(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	req := models.SelectRequest{Count: h.cfg.SelectCount}
	if r.Body != nil && r.ContentLength != 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if req.Count == 0 {
			req.Count = h.cfg.SelectCount
		}
	}

	result, err := h.engine.SelectRandom(req.Count)
	var verr *campaign.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Error())
		return
	case err != nil:
		slog.Error("failed to run selection", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Selection failed")
		return
	}

	slog.Info("selection completed", "selected", result.Selected, "period_id", result.PeriodID)

	middleware.JSONResponse(w, http.StatusOK, models.SelectResponse{
		Success:  result.Selected > 0,
		Selected: result.Selected,
		Message:  result.Message,
		PeriodID: result.PeriodID,
	})
}

// StartVoting handles POST /admin/voting/start
func (h *AdminHandler) StartVoting(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	period, err := h.engine.StartVoting()
	switch {
	case errors.Is(err, campaign.ErrNoActivePeriod):
		middleware.ErrorResponse(w, http.StatusConflict, "No active period; run a selection first")
		return
	case errors.Is(err, campaign.ErrInvalidTransition):
		middleware.ErrorResponse(w, http.StatusConflict, "Period cannot start voting from its current state")
		return
	case err != nil:
		slog.Error("failed to start voting", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("voting started", "period_id", period.ID)
	middleware.JSONResponse(w, http.StatusOK, period)
}

// EndVoting handles POST /admin/voting/end
func (h *AdminHandler) EndVoting(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	result, err := h.engine.EndVoting()
	switch {
	case errors.Is(err, campaign.ErrNoActivePeriod):
		middleware.ErrorResponse(w, http.StatusConflict, "No active period to end")
		return
	case errors.Is(err, campaign.ErrInvalidTransition):
		middleware.ErrorResponse(w, http.StatusConflict, "Period is not in voting; start voting first")
		return
	case err != nil:
		slog.Error("failed to end voting", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	winnerID := ""
	if result.Winner != nil {
		winnerID = result.Winner.ID
	}
	slog.Info("voting ended", "period_id", result.Period.ID, "winner_id", winnerID)

	middleware.JSONResponse(w, http.StatusOK, models.EndPeriodResponse{
		Success: true,
		Period:  result.Period,
		Winner:  result.Winner,
		Message: result.Message,
	})
}

// NewPeriod handles POST /admin/periods
func (h *AdminHandler) NewPeriod(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	var req models.NewPeriodRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	}

	period, err := h.engine.CreateNewPeriod(req.DurationDays)
	switch {
	case errors.Is(err, campaign.ErrActivePeriodExists):
		middleware.ErrorResponse(w, http.StatusConflict, "An active period already exists; end it first")
		return
	case err != nil:
		slog.Error("failed to create period", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("period created", "period_id", period.ID, "end_date", period.EndDate)
	middleware.JSONResponse(w, http.StatusCreated, period)
}

// Stats handles GET /admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	stats, err := h.engine.AdminStats()
	if err != nil {
		slog.Error("failed to load admin stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, stats)
}

// Snapshot handles GET /admin/period
func (h *AdminHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	snapshot, err := h.engine.Snapshot()
	if errors.Is(err, campaign.ErrNoActivePeriod) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No active period")
		return
	}
	if err != nil {
		slog.Error("failed to load period snapshot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, snapshot)
}
