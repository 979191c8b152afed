// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Kindly Fund API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(engine, cfg)

# Endpoints

Health:

	GET /health

Applications (public):

	POST /applications - Submit an application
	GET  /applications - Current ballot and submission totals

Voting (public, anonymous identity via visitor token or IP):

	POST /vote        - Cast today's vote
	GET  /vote/status - Can this visitor vote right now

Stats (public):

	GET /stats

Administration (requires Authorization: Bearer <ADMIN_TOKEN>):

	GET  /admin/applications              - List applications, optionally by status
	POST /admin/applications/{id}/approve - Approve a pending application
	POST /admin/applications/{id}/reject  - Reject an application
	POST /admin/select                    - Randomly select the ballot
	POST /admin/voting/start              - Freeze the ballot and open voting
	POST /admin/voting/end                - Close the period and crown the winner
	POST /admin/periods                   - Explicitly start a new period
	GET  /admin/period                    - Active period snapshot
	GET  /admin/stats                     - Moderation dashboard aggregates

# Handler Initialization

The router creates handler instances with dependency injection:

	applicationHandler := handlers.NewApplicationHandler(engine, cfg)
	votingHandler := handlers.NewVotingHandler(engine, cfg)
	statsHandler := handlers.NewStatsHandler(engine)
	adminHandler := handlers.NewAdminHandler(engine, cfg)

All handlers receive the campaign engine and configuration.
*/
package router
