// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Voting periods
CREATE TABLE IF NOT EXISTS voting_period (
    id TEXT PRIMARY KEY,
    start_date TIMESTAMPTZ NOT NULL,
    end_date TIMESTAMPTZ NOT NULL,
    status TEXT NOT NULL DEFAULT 'COLLECTING' CHECK (status IN ('COLLECTING', 'VOTING', 'COMPLETED')),
    winner_id TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- At most one period may be collecting or voting at any time. The partial
-- unique index makes concurrent creation attempts lose with a 23505 instead
-- of racing a lookup-then-insert.
CREATE UNIQUE INDEX IF NOT EXISTS idx_voting_period_one_active
    ON voting_period ((TRUE))
    WHERE status IN ('COLLECTING', 'VOTING');

CREATE INDEX IF NOT EXISTS idx_voting_period_status ON voting_period(status);

-- Funding applications
CREATE TABLE IF NOT EXISTS application (
    id TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
    country TEXT NOT NULL,
    contact TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'APPROVED', 'SELECTED', 'REJECTED', 'WINNER')),
    votes_count INTEGER NOT NULL DEFAULT 0 CHECK (votes_count >= 0),
    period_id TEXT REFERENCES voting_period(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_application_status ON application(status);
CREATE INDEX IF NOT EXISTS idx_application_period_id ON application(period_id);

-- Votes. vote_day is the UTC calendar day of the vote; the unique constraint
-- is the authoritative one-vote-per-visitor-per-period-per-day rule.
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    visitor_hash TEXT NOT NULL,
    application_id TEXT NOT NULL REFERENCES application(id),
    period_id TEXT NOT NULL REFERENCES voting_period(id),
    vote_day DATE NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (visitor_hash, period_id, vote_day)
);

CREATE INDEX IF NOT EXISTS idx_vote_period ON vote(period_id, visitor_hash);
CREATE INDEX IF NOT EXISTS idx_vote_application ON vote(application_id);
`
