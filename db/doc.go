// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - voting_period: Voting cycle state (COLLECTING → VOTING → COMPLETED)
  - application: Funding applications with status and vote tally
  - vote: One row per visitor per period per UTC day

# Relationships

	voting_period 1──* application (while SELECTED or WINNER)
	voting_period 1──* vote
	application 1──* vote

# Constraint-backed invariants

Two invariants live in the schema rather than application code:

  - A partial unique index on voting_period restricted to active statuses
    guarantees at most one COLLECTING/VOTING period ever exists, even under
    concurrent creation.
  - UNIQUE (visitor_hash, period_id, vote_day) on vote is the authoritative
    one-vote-per-day rule; the application-level pre-check is a fast path only.
*/
package db
