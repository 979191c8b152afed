// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package campaign

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/kindly-fund/models"
)

// EndResult reports a finished period: the completed period row and the
// winner, which is nil when the ballot received no entrants.
type EndResult struct {
	Period  *models.VotingPeriod
	Winner  *models.Application
	Message string
}

// EndVoting finalizes the active VOTING period. The store performs the
// whole close in one transaction: the highest-tally SELECTED application
// becomes WINNER (ties break to the lexically smallest id, so a re-run on
// identical data picks the same winner), the rest return to the APPROVED
// pool with tallies reset, and the period flips to COMPLETED. A period
// still in COLLECTING cannot be ended; start voting first.
func (e *Engine) EndVoting() (*EndResult, error) {
	period, err := e.store.FindActivePeriod()
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, ErrNoActivePeriod
	}

	completed, winner, err := e.store.CompletePeriod(period.ID)
	if err != nil {
		return nil, err
	}

	result := &EndResult{Period: completed, Winner: winner}
	if winner == nil {
		result.Message = "Voting period ended with no applications on the ballot"
	} else {
		result.Message = fmt.Sprintf("Voting ended: winner receives %s with %d votes",
			humanize.CommafWithDigits(winner.Amount, 2), winner.VotesCount)
	}
	return result, nil
}

// AdminStats assembles the moderation dashboard: status counts, vote
// totals, geography, past winners, and the newest submissions.
func (e *Engine) AdminStats() (*models.AdminStatsResponse, error) {
	var counts models.StatusCounts
	var err error
	if counts.Total, err = e.store.CountApplications(""); err != nil {
		return nil, err
	}
	if counts.Pending, err = e.store.CountApplications(models.StatusPending); err != nil {
		return nil, err
	}
	if counts.Approved, err = e.store.CountApplications(models.StatusApproved); err != nil {
		return nil, err
	}
	if counts.Selected, err = e.store.CountApplications(models.StatusSelected); err != nil {
		return nil, err
	}
	if counts.Rejected, err = e.store.CountApplications(models.StatusRejected); err != nil {
		return nil, err
	}
	if counts.Winners, err = e.store.CountApplications(models.StatusWinner); err != nil {
		return nil, err
	}

	totalVotes, err := e.store.CountVotes("")
	if err != nil {
		return nil, err
	}
	byCountry, err := e.store.CountryBreakdown(10)
	if err != nil {
		return nil, err
	}

	periods, err := e.store.CompletedPeriods(5)
	if err != nil {
		return nil, err
	}
	completed := make([]models.CompletedPeriod, 0, len(periods))
	for _, p := range periods {
		cp := models.CompletedPeriod{Period: p}
		if p.WinnerID != nil {
			winner, err := e.store.GetApplication(*p.WinnerID)
			if err != nil && err != ErrNotFound {
				return nil, err
			}
			cp.Winner = winner
		}
		completed = append(completed, cp)
	}

	recent, err := e.store.RecentApplications(10)
	if err != nil {
		return nil, err
	}

	return &models.AdminStatsResponse{
		Stats:            counts,
		TotalVotes:       totalVotes,
		ByCountry:        byCountry,
		CompletedPeriods: completed,
		Recent:           recent,
	}, nil
}

// PublicStats aggregates the landing-page totals.
func (e *Engine) PublicStats() (*models.PublicStatsResponse, error) {
	return e.store.PublicStats(e.now().UTC())
}
