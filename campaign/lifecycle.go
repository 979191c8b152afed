// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package campaign

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/danielhkuo/kindly-fund/models"
)

// validateSubmission collects every violation rather than stopping at the
// first, so the submitter can fix their form in one pass.
func validateSubmission(req models.SubmitApplicationRequest) []string {
	var violations []string

	desc := strings.TrimSpace(req.Description)
	n := utf8.RuneCountInString(desc)
	if n < models.MinDescriptionLen {
		violations = append(violations,
			fmt.Sprintf("description must be at least %d characters", models.MinDescriptionLen))
	} else if n > models.MaxDescriptionLen {
		violations = append(violations,
			fmt.Sprintf("description must be at most %d characters", models.MaxDescriptionLen))
	}

	if req.Amount <= 0 {
		violations = append(violations, "amount must be greater than zero")
	} else if req.Amount > models.MaxAmount {
		violations = append(violations,
			fmt.Sprintf("amount must be at most %d", models.MaxAmount))
	}

	if !models.ValidCountry(req.Country) {
		violations = append(violations, "country is not in the supported list")
	}

	if utf8.RuneCountInString(strings.TrimSpace(req.Contact)) < models.MinContactLen {
		violations = append(violations,
			fmt.Sprintf("contact must be at least %d characters", models.MinContactLen))
	}

	if !req.AgreedToRules {
		violations = append(violations, "you must agree to the rules")
	}

	return violations
}

// Submit validates and records a new application in PENDING status.
// Invalid input comes back as a ValidationError listing every violation.
func (e *Engine) Submit(req models.SubmitApplicationRequest) (*models.Application, error) {
	if violations := validateSubmission(req); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	app := &models.Application{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Country:     req.Country,
		Contact:     strings.TrimSpace(req.Contact),
		Status:      models.StatusPending,
		CreatedAt:   e.now().UTC(),
	}
	if err := e.store.CreateApplication(app); err != nil {
		return nil, err
	}
	return app, nil
}

// Approve moves an application into the eligible pool. Approving an
// already-approved application is a no-op; anything past APPROVED
// (selected, winner) cannot be re-moderated.
func (e *Engine) Approve(id string) (*models.Application, error) {
	return e.moderate(id, models.StatusApproved)
}

// Reject removes an application from consideration. Like Approve, it only
// applies to applications still in the moderation queue or the eligible
// pool.
func (e *Engine) Reject(id string) (*models.Application, error) {
	return e.moderate(id, models.StatusRejected)
}

func (e *Engine) moderate(id, status string) (*models.Application, error) {
	app, err := e.store.GetApplication(id)
	if err != nil {
		return nil, err
	}
	if app.Status == status {
		return app, nil
	}
	switch app.Status {
	case models.StatusPending, models.StatusApproved, models.StatusRejected:
		return e.store.UpdateApplicationStatus(id, status)
	default:
		return nil, ErrInvalidTransition
	}
}
