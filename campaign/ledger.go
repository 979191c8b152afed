// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package campaign

import (
	"errors"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/kindly-fund/models"
)

// VoteResult is the outcome of a successful ballot cast.
type VoteResult struct {
	Vote         *models.Vote
	NextVoteTime time.Time
	Message      string
}

// CastVote records one vote for the visitor against a SELECTED application
// in the active VOTING period. A visitor gets one vote per UTC calendar
// day per period; a repeat on the same day returns AlreadyVotedError with
// the next eligible time. The fast-path read catches most repeats cheaply,
// but the vote table's unique constraint is the authoritative check, so
// two simultaneous casts from the same visitor still net exactly one row
// and one tally increment.
func (e *Engine) CastVote(visitorHash, applicationID string) (*VoteResult, error) {
	period, err := e.store.FindActivePeriod()
	if err != nil {
		return nil, err
	}
	if period == nil || period.Status != models.PeriodVoting {
		return nil, ErrNoActivePeriod
	}

	now := e.now()
	day := voteDay(now)
	next := nextVoteTime(now)

	if existing, err := e.store.FindVoteToday(visitorHash, period.ID, day); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &AlreadyVotedError{NextVoteTime: next}
	}

	app, err := e.store.GetApplication(applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != models.StatusSelected || app.PeriodID == nil || *app.PeriodID != period.ID {
		return nil, ErrIneligibleTarget
	}

	vote := &models.Vote{
		ID:            uuid.NewString(),
		VisitorHash:   visitorHash,
		ApplicationID: applicationID,
		PeriodID:      period.ID,
		VoteDay:       day,
		CreatedAt:     now.UTC(),
	}
	err = e.store.RecordVote(vote)
	if errors.Is(err, errDuplicateVote) {
		return nil, &AlreadyVotedError{NextVoteTime: next}
	}
	if err != nil {
		return nil, err
	}

	return &VoteResult{
		Vote:         vote,
		NextVoteTime: next,
		Message:      "Vote recorded. You can vote again " + humanize.Time(next) + ".",
	}, nil
}

// VotingStatus reports whether the visitor may vote right now and, if they
// already voted today, which application they backed and when they can
// vote again.
func (e *Engine) VotingStatus(visitorHash string) (*models.VotingStatusResponse, error) {
	status := &models.VotingStatusResponse{TodayVotes: []string{}}

	period, err := e.store.FindActivePeriod()
	if err != nil {
		return nil, err
	}
	if period == nil || period.Status != models.PeriodVoting {
		return status, nil
	}

	now := e.now()
	existing, err := e.store.FindVoteToday(visitorHash, period.ID, voteDay(now))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		next := nextVoteTime(now)
		status.VotedToday = true
		status.TodayVotes = []string{existing.ApplicationID}
		status.NextVoteTime = &next
		return status, nil
	}

	status.CanVote = true
	return status, nil
}
