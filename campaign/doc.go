// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package campaign implements the donation campaign core: application
// submission and moderation, randomized ballot selection, the
// one-vote-per-day ledger, and the voting period lifecycle.
//
// The Engine is the entry point. Handlers call it; it delegates
// persistence to Store, which speaks raw SQL to Postgres. The invariants
// that must hold under concurrency are enforced by database constraints
// rather than in-process locks:
//
//   - at most one period is COLLECTING or VOTING at a time (partial
//     unique index on voting_period)
//   - a visitor casts at most one vote per period per UTC day (unique
//     constraint on vote)
//   - tallies only move inside the same transaction that records the
//     vote, so a tally never drifts from its vote rows
//
// Period lifecycle is strictly COLLECTING -> VOTING -> COMPLETED. Closing
// a period crowns the highest-tally application WINNER (ties break to the
// smallest id) and returns the rest to the APPROVED pool for future
// rounds.
package campaign
