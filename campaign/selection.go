// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package campaign

import (
	"fmt"

	"github.com/dustin/go-humanize/english"

	"github.com/danielhkuo/kindly-fund/models"
)

// SelectResult reports the outcome of a selection draw.
type SelectResult struct {
	Selected int
	PeriodID string
	Message  string
}

// SelectRandom draws up to count applications uniformly from the APPROVED
// pool, binds them to the active period (creating one if needed), and
// flips them to SELECTED. Fewer candidates than count is not an error;
// the draw just takes everyone. An empty pool returns a zero result so
// operators see a message instead of a failure.
func (e *Engine) SelectRandom(count int) (*SelectResult, error) {
	if count <= 0 {
		return nil, &ValidationError{Violations: []string{"count must be at least 1"}}
	}

	pool, err := e.store.FindApplications(Filter{Status: models.StatusApproved})
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return &SelectResult{Message: "No approved applications available for selection"}, nil
	}

	period, err := e.GetOrCreateActivePeriod()
	if err != nil {
		return nil, err
	}

	if count > len(pool) {
		count = len(pool)
	}

	// Partial Fisher-Yates: the first count slots end up holding a
	// uniform sample without replacement.
	e.mu.Lock()
	for i := 0; i < count; i++ {
		j := i + e.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	e.mu.Unlock()

	ids := make([]string, count)
	for i := 0; i < count; i++ {
		ids[i] = pool[i].ID
	}

	n, err := e.store.BatchUpdateApplications(ids, models.StatusSelected, period.ID)
	if err != nil {
		return nil, err
	}

	return &SelectResult{
		Selected: n,
		PeriodID: period.ID,
		Message:  fmt.Sprintf("Selected %s for the ballot", english.Plural(n, "application", "")),
	}, nil
}
