// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/kindly-fund/campaign"
	"github.com/danielhkuo/kindly-fund/models"
	"github.com/danielhkuo/kindly-fund/testutil"
)

func newTestEngine(t *testing.T) (*sql.DB, *campaign.Engine) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return db, campaign.NewEngine(campaign.NewStore(db))
}

func validSubmission() models.SubmitApplicationRequest {
	return models.SubmitApplicationRequest{
		Description:   strings.Repeat("medical bills piling up after surgery. ", 8),
		Amount:        750,
		Country:       "France",
		Contact:       "reachme@example.com",
		AgreedToRules: true,
	}
}

func TestSubmitApplication(t *testing.T) {
	db, engine := newTestEngine(t)
	defer db.Close()

	handler := NewApplicationHandler(engine, testutil.GetTestConfig())

	t.Run("valid submission", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/applications", validSubmission(), nil)
		w := httptest.NewRecorder()

		handler.Submit(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.SubmitApplicationResponse
		testutil.AssertJSON(t, w, &resp)

		if !resp.Success {
			t.Error("Expected success to be true")
		}
		if resp.Application == nil {
			t.Fatal("Expected application in response")
		}
		if resp.Application.Status != models.StatusPending {
			t.Errorf("Expected status PENDING, got %s", resp.Application.Status)
		}
		if resp.Application.ID == "" {
			t.Error("Expected application ID to be set")
		}
	})

	t.Run("contact never serializes", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/applications", validSubmission(), nil)
		w := httptest.NewRecorder()

		handler.Submit(w, req)

		if strings.Contains(w.Body.String(), "reachme@example.com") {
			t.Error("Contact details leaked into the JSON response")
		}
	})

	t.Run("invalid submission lists every violation", func(t *testing.T) {
		body := validSubmission()
		body.Description = "too short"
		body.Amount = -5
		body.AgreedToRules = false

		req := testutil.MakeRequest("POST", "/applications", body, nil)
		w := httptest.NewRecorder()

		handler.Submit(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)

		var resp models.SubmitApplicationResponse
		testutil.AssertJSON(t, w, &resp)

		if resp.Success {
			t.Error("Expected success to be false")
		}
		if len(resp.Errors) != 3 {
			t.Errorf("Expected 3 validation errors, got %d: %v", len(resp.Errors), resp.Errors)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/applications", strings.NewReader("{not json"))
		w := httptest.NewRecorder()

		handler.Submit(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestBallot(t *testing.T) {
	db, engine := newTestEngine(t)
	defer db.Close()

	handler := NewApplicationHandler(engine, testutil.GetTestConfig())

	t.Run("empty when no period", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/applications", nil, nil)
		w := httptest.NewRecorder()

		handler.Ballot(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.BallotResponse
		testutil.AssertJSON(t, w, &resp)

		if len(resp.Applications) != 0 {
			t.Errorf("Expected empty ballot, got %d entries", len(resp.Applications))
		}
		if resp.PeriodEnd != nil {
			t.Error("Expected no period end without an active period")
		}
	})

	t.Run("ordered by tally during voting", func(t *testing.T) {
		periodID := testutil.CreateTestPeriod(t, db, models.PeriodVoting)
		low := testutil.CreateTestApplication(t, db, models.StatusSelected, 1, periodID)
		high := testutil.CreateTestApplication(t, db, models.StatusSelected, 8, periodID)

		req := testutil.MakeRequest("GET", "/applications", nil, nil)
		w := httptest.NewRecorder()

		handler.Ballot(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.BallotResponse
		testutil.AssertJSON(t, w, &resp)

		if len(resp.Applications) != 2 {
			t.Fatalf("Expected 2 ballot entries, got %d", len(resp.Applications))
		}
		if resp.Applications[0].ID != high || resp.Applications[1].ID != low {
			t.Error("Expected ballot ordered by votes descending")
		}
		if resp.PeriodEnd == nil {
			t.Error("Expected period end during voting")
		}
		if resp.TotalSubmitted != 2 {
			t.Errorf("Expected total submitted 2, got %d", resp.TotalSubmitted)
		}
	})
}
