// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Application status constants
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusSelected = "SELECTED"
	StatusRejected = "REJECTED"
	StatusWinner   = "WINNER"
)

// Voting period status constants
const (
	PeriodCollecting = "COLLECTING"
	PeriodVoting     = "VOTING"
	PeriodCompleted  = "COMPLETED"
)

// Submission validation bounds
const (
	MinDescriptionLen = 200
	MaxDescriptionLen = 1000
	MaxAmount         = 100000
	MinContactLen     = 5
)

// Request types

type SubmitApplicationRequest struct {
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Country       string  `json:"country"`
	Contact       string  `json:"contact"`
	AgreedToRules bool    `json:"agreed_to_rules"`
}

type CastVoteRequest struct {
	VisitorToken  string `json:"visitor_token"`
	ApplicationID string `json:"application_id"`
}

type SelectRequest struct {
	Count int `json:"count"`
}

type NewPeriodRequest struct {
	DurationDays int `json:"duration_days"`
}

// Response types

type SubmitApplicationResponse struct {
	Success     bool         `json:"success"`
	Application *Application `json:"application,omitempty"`
	Message     string       `json:"message,omitempty"`
	Errors      []string     `json:"errors,omitempty"`
}

type CastVoteResponse struct {
	Success      bool       `json:"success"`
	Message      string     `json:"message"`
	NextVoteTime *time.Time `json:"next_vote_time,omitempty"`
}

type VotingStatusResponse struct {
	CanVote      bool       `json:"can_vote"`
	VotedToday   bool       `json:"voted_today"`
	TodayVotes   []string   `json:"today_votes"`
	NextVoteTime *time.Time `json:"next_vote_time,omitempty"`
}

type SelectResponse struct {
	Success  bool   `json:"success"`
	Selected int    `json:"selected"`
	Message  string `json:"message"`
	PeriodID string `json:"period_id,omitempty"`
}

type EndPeriodResponse struct {
	Success bool          `json:"success"`
	Period  *VotingPeriod `json:"period"`
	Winner  *Application  `json:"winner,omitempty"`
	Message string        `json:"message"`
}

type BallotResponse struct {
	Applications   []Application `json:"applications"`
	TotalSubmitted int           `json:"total_submitted"`
	PeriodEnd      *time.Time    `json:"period_end,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Application struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Country     string    `json:"country"`
	Contact     string    `json:"-"` // Never expose in JSON
	Status      string    `json:"status"`
	VotesCount  int       `json:"votes_count"`
	PeriodID    *string   `json:"period_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type VotingPeriod struct {
	ID        string    `json:"id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"`
	WinnerID  *string   `json:"winner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Active reports whether the period is still collecting or voting.
func (p VotingPeriod) Active() bool {
	return p.Status == PeriodCollecting || p.Status == PeriodVoting
}

type Vote struct {
	ID            string    `json:"id"`
	VisitorHash   string    `json:"-"` // Never expose in JSON
	ApplicationID string    `json:"application_id"`
	PeriodID      string    `json:"period_id"`
	VoteDay       string    `json:"vote_day"` // UTC calendar day, YYYY-MM-DD
	CreatedAt     time.Time `json:"created_at"`
}

// PeriodSnapshot is the read-only aggregate for the admin dashboard: the
// current period, its ballot ordered by tally desc, and system-wide
// moderation counts.
type PeriodSnapshot struct {
	Period        VotingPeriod  `json:"period"`
	Selected      []Application `json:"selected"`
	TotalVotes    int           `json:"total_votes"`
	ApprovedCount int           `json:"approved_count"`
	PendingCount  int           `json:"pending_count"`
}

// Admin stats types

type StatusCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Selected int `json:"selected"`
	Rejected int `json:"rejected"`
	Winners  int `json:"winners"`
}

type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

type CompletedPeriod struct {
	Period VotingPeriod `json:"period"`
	Winner *Application `json:"winner,omitempty"`
}

type AdminStatsResponse struct {
	Stats            StatusCounts      `json:"stats"`
	TotalVotes       int               `json:"total_votes"`
	ByCountry        []CountryCount    `json:"by_country"`
	CompletedPeriods []CompletedPeriod `json:"completed_periods"`
	Recent           []Application     `json:"recent_applications"`
}

type PublicStatsResponse struct {
	TotalApplications int       `json:"total_applications"`
	TotalCountries    int       `json:"total_countries"`
	TotalAmount       float64   `json:"total_amount"`
	LastUpdated       time.Time `json:"last_updated"`
}
