// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package campaign

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound means the referenced application or period does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition means the requested period transition is not
	// permitted from its current status.
	ErrInvalidTransition = errors.New("invalid period transition")

	// ErrIneligibleTarget means the vote target is missing or not currently
	// on the ballot.
	ErrIneligibleTarget = errors.New("application is not open for voting")

	// ErrNoActivePeriod means no period is collecting or voting.
	ErrNoActivePeriod = errors.New("no active voting period")

	// ErrActivePeriodExists means a collecting or voting period already
	// exists, so another cannot be created.
	ErrActivePeriodExists = errors.New("an active voting period already exists")
)

// ValidationError carries every violated submission rule at once, so the
// applicant can fix the whole form in one pass.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid application: " + strings.Join(e.Violations, "; ")
}

// AlreadyVotedError means this visitor already voted in this period today.
// NextVoteTime is the start of the next eligible UTC day.
type AlreadyVotedError struct {
	NextVoteTime time.Time
}

func (e *AlreadyVotedError) Error() string {
	return fmt.Sprintf("already voted today, next vote at %s", e.NextVoteTime.Format(time.RFC3339))
}
