// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/kindly-fund/models"
	"github.com/danielhkuo/kindly-fund/testutil"
)

// TestConcurrentVotes verifies that simultaneous votes from different
// visitors don't lose tallies or create duplicate rows
func TestConcurrentVotes(t *testing.T) {
	db, engine := newTestEngine(t)
	defer db.Close()

	handler := NewVotingHandler(engine, testutil.GetTestConfig())

	periodID := testutil.CreateTestPeriod(t, db, models.PeriodVoting)
	appID := testutil.CreateTestApplication(t, db, models.StatusSelected, 0, periodID)

	numVisitors := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVisitors; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			body := models.CastVoteRequest{
				VisitorToken:  fmt.Sprintf("concurrent-visitor-%d", idx),
				ApplicationID: appID,
			}
			req := testutil.MakeRequest("POST", "/vote", body, nil)
			w := httptest.NewRecorder()

			handler.CastVote(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	// All votes should succeed
	if int(successCount.Load()) != numVisitors {
		t.Errorf("Expected %d successful votes, got %d", numVisitors, successCount.Load())
	}

	// Verify database has exactly numVisitors vote rows
	var voteCount int
	err := db.QueryRow("SELECT COUNT(*) FROM vote WHERE period_id = $1", periodID).Scan(&voteCount)
	if err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if voteCount != numVisitors {
		t.Errorf("Expected %d votes in database, got %d", numVisitors, voteCount)
	}

	// Tally matches the vote rows exactly - no lost increments
	var tally int
	err = db.QueryRow("SELECT votes_count FROM application WHERE id = $1", appID).Scan(&tally)
	if err != nil {
		t.Fatalf("Failed to read tally: %v", err)
	}
	if tally != numVisitors {
		t.Errorf("Expected tally %d, got %d", numVisitors, tally)
	}
}

// TestConcurrentDuplicateVotes verifies that the same visitor racing
// against themselves nets exactly one vote
func TestConcurrentDuplicateVotes(t *testing.T) {
	db, engine := newTestEngine(t)
	defer db.Close()

	handler := NewVotingHandler(engine, testutil.GetTestConfig())

	periodID := testutil.CreateTestPeriod(t, db, models.PeriodVoting)
	appID := testutil.CreateTestApplication(t, db, models.StatusSelected, 0, periodID)

	attempts := 10
	var successCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			body := models.CastVoteRequest{
				VisitorToken:  "the-same-visitor",
				ApplicationID: appID,
			}
			req := testutil.MakeRequest("POST", "/vote", body, nil)
			w := httptest.NewRecorder()

			handler.CastVote(w, req)

			switch w.Code {
			case http.StatusCreated:
				successCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			default:
				t.Errorf("Unexpected status %d: %s", w.Code, w.Body.String())
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful vote, got %d", successCount.Load())
	}
	if conflictCount.Load() != int32(attempts-1) {
		t.Errorf("Expected %d conflicts, got %d", attempts-1, conflictCount.Load())
	}

	var tally int
	if err := db.QueryRow("SELECT votes_count FROM application WHERE id = $1", appID).Scan(&tally); err != nil {
		t.Fatalf("Failed to read tally: %v", err)
	}
	if tally != 1 {
		t.Errorf("Expected tally 1, got %d", tally)
	}
}

// TestConcurrentSelections verifies that two selection draws racing each
// other still agree on a single active period
func TestConcurrentSelections(t *testing.T) {
	db, engine := newTestEngine(t)
	defer db.Close()

	handler := NewAdminHandler(engine, testutil.GetTestConfig())

	for i := 0; i < 20; i++ {
		testutil.CreateTestApplication(t, db, models.StatusApproved, 0, "")
	}

	var wg sync.WaitGroup
	periodIDs := make([]string, 4)

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/admin/select", models.SelectRequest{Count: 2}, testutil.AdminHeaders())
			w := httptest.NewRecorder()

			handler.Select(w, req)

			if w.Code == http.StatusOK {
				var resp models.SelectResponse
				testutil.AssertJSON(t, w, &resp)
				periodIDs[idx] = resp.PeriodID
			}
		}(i)
	}

	wg.Wait()

	// Exactly one active period exists no matter how the draws interleaved
	var periodCount int
	err := db.QueryRow(`SELECT COUNT(*) FROM voting_period WHERE status IN ('COLLECTING', 'VOTING')`).Scan(&periodCount)
	if err != nil {
		t.Fatalf("Failed to count periods: %v", err)
	}
	if periodCount != 1 {
		t.Errorf("Expected exactly 1 active period, got %d", periodCount)
	}

	// Every successful draw reported that same period
	seen := make(map[string]bool)
	for _, id := range periodIDs {
		if id != "" {
			seen[id] = true
		}
	}
	if len(seen) > 1 {
		t.Errorf("Selections disagreed on the period: %v", periodIDs)
	}
}
