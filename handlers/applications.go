// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/kindly-fund/campaign"
	"github.com/danielhkuo/kindly-fund/cliparse"
	"github.com/danielhkuo/kindly-fund/middleware"
	"github.com/danielhkuo/kindly-fund/models"
)

type ApplicationHandler struct {
	engine *campaign.Engine
	cfg    cliparse.Config
}

func NewApplicationHandler(engine *campaign.Engine, cfg cliparse.Config) *ApplicationHandler {
	return &ApplicationHandler{engine: engine, cfg: cfg}
}

// Submit handles POST /applications
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitApplicationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	app, err := h.engine.Submit(req)
	var verr *campaign.ValidationError
	if errors.As(err, &verr) {
		middleware.JSONResponse(w, http.StatusBadRequest, models.SubmitApplicationResponse{
			Success: false,
			Message: "Application failed validation",
			Errors:  verr.Violations,
		})
		return
	}
	if err != nil {
		slog.Error("failed to submit application", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit application")
		return
	}

	slog.Info("application submitted", "application_id", app.ID, "country", app.Country)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitApplicationResponse{
		Success:     true,
		Application: app,
		Message:     "Application submitted and awaiting review",
	})
}

// Ballot handles GET /applications: the public list of selected
// applications for the active period, ordered by tally.
func (h *ApplicationHandler) Ballot(w http.ResponseWriter, r *http.Request) {
	ballot, err := h.engine.Ballot()
	if err != nil {
		slog.Error("failed to load ballot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, ballot)
}
