// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/kindly-fund/campaign"
	"github.com/danielhkuo/kindly-fund/cliparse"
	"github.com/danielhkuo/kindly-fund/handlers"
	"github.com/danielhkuo/kindly-fund/middleware"
)

func NewRouter(engine *campaign.Engine, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	applicationHandler := handlers.NewApplicationHandler(engine, cfg)
	votingHandler := handlers.NewVotingHandler(engine, cfg)
	statsHandler := handlers.NewStatsHandler(engine)
	adminHandler := handlers.NewAdminHandler(engine, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public: submission and the ballot
	mux.HandleFunc("POST /applications", middleware.WithLogging(applicationHandler.Submit))
	mux.HandleFunc("GET /applications", middleware.WithLogging(applicationHandler.Ballot))

	// Public: voting
	mux.HandleFunc("POST /vote", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("GET /vote/status", middleware.WithLogging(votingHandler.Status))

	// Public: aggregate stats
	mux.HandleFunc("GET /stats", middleware.WithLogging(statsHandler.PublicStats))

	// Admin: moderation
	mux.HandleFunc("GET /admin/applications", middleware.WithLogging(adminHandler.ListApplications))
	mux.HandleFunc("POST /admin/applications/{id}/approve", middleware.WithLogging(adminHandler.Approve))
	mux.HandleFunc("POST /admin/applications/{id}/reject", middleware.WithLogging(adminHandler.Reject))

	// Admin: selection and period lifecycle
	mux.HandleFunc("POST /admin/select", middleware.WithLogging(adminHandler.Select))
	mux.HandleFunc("POST /admin/voting/start", middleware.WithLogging(adminHandler.StartVoting))
	mux.HandleFunc("POST /admin/voting/end", middleware.WithLogging(adminHandler.EndVoting))
	mux.HandleFunc("POST /admin/periods", middleware.WithLogging(adminHandler.NewPeriod))
	mux.HandleFunc("GET /admin/period", middleware.WithLogging(adminHandler.Snapshot))
	mux.HandleFunc("GET /admin/stats", middleware.WithLogging(adminHandler.Stats))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("kindly-fund API v1"))
	})

	return mux
}
