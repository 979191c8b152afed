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

type VotingHandler struct {
	engine *campaign.Engine
	cfg    cliparse.Config
}

func NewVotingHandler(engine *campaign.Engine, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{engine: engine, cfg: cfg}
}

// visitorHash derives the anonymous voter identity: the visitor token if
// the client sent one, otherwise the client IP. Either way only a salted
// HMAC digest ever reaches storage.
func (h *VotingHandler) visitorHash(r *http.Request, token string) (string, error) {
	if token == "" {
		token = r.Header.Get("X-Visitor-Token")
	}
	if token != "" {
		return auth.IdentityKey(token, h.cfg.VisitorSalt)
	}
	return auth.HashIP(middleware.GetClientIP(r), h.cfg.VisitorSalt), nil
}

// CastVote handles POST /vote
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ApplicationID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "application_id is required")
		return
	}

	visitorHash, err := h.visitorHash(r, req.VisitorToken)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid visitor token")
		return
	}

	result, err := h.engine.CastVote(visitorHash, req.ApplicationID)

	var already *campaign.AlreadyVotedError
	switch {
	case errors.As(err, &already):
		next := already.NextVoteTime
		middleware.JSONResponse(w, http.StatusConflict, models.CastVoteResponse{
			Success:      false,
			Message:      "You have already voted today",
			NextVoteTime: &next,
		})
		return
	case errors.Is(err, campaign.ErrNoActivePeriod):
		middleware.ErrorResponse(w, http.StatusConflict, "Voting is not open")
		return
	case errors.Is(err, campaign.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Application not found")
		return
	case errors.Is(err, campaign.ErrIneligibleTarget):
		middleware.ErrorResponse(w, http.StatusConflict, "Application is not on the ballot")
		return
	case err != nil:
		slog.Error("failed to cast vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	slog.Info("vote cast", "application_id", req.ApplicationID, "period_id", result.Vote.PeriodID)

	next := result.NextVoteTime
	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Success:      true,
		Message:      result.Message,
		NextVoteTime: &next,
	})
}

// Status handles GET /vote/status
func (h *VotingHandler) Status(w http.ResponseWriter, r *http.Request) {
	visitorHash, err := h.visitorHash(r, r.URL.Query().Get("visitor_token"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid visitor token")
		return
	}

	status, err := h.engine.VotingStatus(visitorHash)
	if err != nil {
		slog.Error("failed to load voting status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, status)
}
