// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package campaign

import (
	"errors"

	"github.com/google/uuid"

	"github.com/danielhkuo/kindly-fund/models"
)

// GetOrCreateActivePeriod returns the current COLLECTING or VOTING period,
// creating a fresh COLLECTING one when none exists. Concurrent callers may
// both attempt the create; the partial unique index lets exactly one
// through and the loser re-reads the winner's row, so every caller agrees
// on the same period.
func (e *Engine) GetOrCreateActivePeriod() (*models.VotingPeriod, error) {
	period, err := e.store.FindActivePeriod()
	if err != nil {
		return nil, err
	}
	if period != nil {
		return period, nil
	}
	return e.createPeriod(e.periodDays, true)
}

// CreateNewPeriod explicitly starts a fresh COLLECTING period. Unlike the
// auto-create path it fails with ErrActivePeriodExists when a period is
// already underway; the operator must end it first.
func (e *Engine) CreateNewPeriod(durationDays int) (*models.VotingPeriod, error) {
	if durationDays <= 0 {
		durationDays = e.periodDays
	}
	return e.createPeriod(durationDays, false)
}

func (e *Engine) createPeriod(durationDays int, adoptExisting bool) (*models.VotingPeriod, error) {
	now := e.now().UTC()
	period := &models.VotingPeriod{
		ID:        uuid.NewString(),
		StartDate: now,
		EndDate:   now.AddDate(0, 0, durationDays),
		Status:    models.PeriodCollecting,
		CreatedAt: now,
	}
	err := e.store.CreatePeriod(period)
	if errors.Is(err, ErrActivePeriodExists) && adoptExisting {
		// Lost the race; use whoever won.
		existing, findErr := e.store.FindActivePeriod()
		if findErr != nil {
			return nil, findErr
		}
		if existing != nil {
			return existing, nil
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return period, nil
}

// StartVoting moves the active period from COLLECTING to VOTING, freezing
// the ballot. Calling it on a period already in VOTING is a no-op so
// repeated admin clicks are harmless.
func (e *Engine) StartVoting() (*models.VotingPeriod, error) {
	period, err := e.store.FindActivePeriod()
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, ErrNoActivePeriod
	}
	if period.Status == models.PeriodVoting {
		return period, nil
	}
	if period.Status != models.PeriodCollecting {
		return nil, ErrInvalidTransition
	}
	return e.store.UpdatePeriodStatus(period.ID, models.PeriodVoting)
}

// Snapshot assembles the admin view of the active period: its ballot
// ordered by tally, the vote total, and moderation queue counts.
func (e *Engine) Snapshot() (*models.PeriodSnapshot, error) {
	period, err := e.store.FindActivePeriod()
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, ErrNoActivePeriod
	}

	selected, err := e.store.FindApplications(Filter{Status: models.StatusSelected, PeriodID: period.ID})
	if err != nil {
		return nil, err
	}
	totalVotes, err := e.store.CountVotes(period.ID)
	if err != nil {
		return nil, err
	}
	approved, err := e.store.CountApplications(models.StatusApproved)
	if err != nil {
		return nil, err
	}
	pending, err := e.store.CountApplications(models.StatusPending)
	if err != nil {
		return nil, err
	}

	return &models.PeriodSnapshot{
		Period:        *period,
		Selected:      selected,
		TotalVotes:    totalVotes,
		ApprovedCount: approved,
		PendingCount:  pending,
	}, nil
}

// Ballot returns the public voting view: selected applications for the
// active period ordered by tally, plus the period end if voting is open.
// With no active period the ballot is simply empty.
func (e *Engine) Ballot() (*models.BallotResponse, error) {
	period, err := e.store.FindActivePeriod()
	if err != nil {
		return nil, err
	}

	total, err := e.store.CountApplications("")
	if err != nil {
		return nil, err
	}

	resp := &models.BallotResponse{
		Applications:   []models.Application{},
		TotalSubmitted: total,
	}
	if period == nil {
		return resp, nil
	}

	selected, err := e.store.FindApplications(Filter{Status: models.StatusSelected, PeriodID: period.ID})
	if err != nil {
		return nil, err
	}
	resp.Applications = selected
	if period.Status == models.PeriodVoting {
		end := period.EndDate
		resp.PeriodEnd = &end
	}
	return resp, nil
}

// ActivePeriod exposes the current period for handlers that only need the
// window, or nil when none is underway.
func (e *Engine) ActivePeriod() (*models.VotingPeriod, error) {
	return e.store.FindActivePeriod()
}
