// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package campaign

import (
	"math/rand"
	"sync"
	"time"
)

// Engine drives the campaign: submission and moderation, randomized ballot
// selection, the one-vote-per-day ledger, and the period lifecycle. It is
// safe for concurrent use; the database enforces the hard invariants
// (single active period, vote dedup) so racing engines cannot corrupt
// state even across processes.
type Engine struct {
	store      *Store
	now        func() time.Time
	periodDays int

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand replaces the selection source, used by tests that need
// reproducible draws.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithClock replaces the time source, used by tests that need to control
// day boundaries and period windows.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithPeriodDays sets the default period length for auto-created periods.
func WithPeriodDays(days int) Option {
	return func(e *Engine) {
		if days > 0 {
			e.periodDays = days
		}
	}
}

// NewEngine builds an engine over the store with a time-seeded selection
// source and a 30-day default period.
func NewEngine(store *Store, opts ...Option) *Engine {
	e := &Engine{
		store:      store,
		now:        time.Now,
		periodDays: 30,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store exposes the underlying store for read-only handler queries.
func (e *Engine) Store() *Store {
	return e.store
}

// voteDay formats t as the UTC calendar day used for vote dedup.
func voteDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// nextVoteTime is the next UTC midnight after t, when the visitor may
// vote again.
func nextVoteTime(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}
