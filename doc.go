// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Kindly Fund API server.

Kindly Fund runs a recurring public micro-donation campaign: people
submit short applications for small amounts, moderators approve them, a
random draw puts a handful on the ballot, and anonymous visitors each get
one vote per day until the period closes and the top application wins.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 3319 -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - ADMIN_TOKEN (--admin-token): Bearer token for admin endpoints
  - VISITOR_SALT (--visitor-salt): Secret for visitor identity hashing

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - PERIOD_DAYS (--period-days): Voting period length (default: 30)
  - SELECT_COUNT (--select-count): Default ballot size (default: 5)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - campaign: The engine — submission, moderation, selection, the vote
    ledger, and the period lifecycle
  - handlers: HTTP request handlers (applications, voting, admin, stats)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Visitor identity hashing and admin token checks
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
