// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/kindly-fund/models"
	"github.com/danielhkuo/kindly-fund/testutil"
)

func TestPublicStats(t *testing.T) {
	db, engine := newTestEngine(t)
	defer db.Close()

	handler := NewStatsHandler(engine)

	t.Run("empty database", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/stats", nil, nil)
		w := httptest.NewRecorder()

		handler.PublicStats(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.PublicStatsResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.TotalApplications != 0 {
			t.Errorf("Expected 0 applications, got %d", resp.TotalApplications)
		}
		if resp.TotalAmount != 0 {
			t.Errorf("Expected 0 total amount, got %f", resp.TotalAmount)
		}
	})

	t.Run("aggregates across all statuses", func(t *testing.T) {
		testutil.CreateTestApplication(t, db, models.StatusPending, 0, "")
		testutil.CreateTestApplication(t, db, models.StatusApproved, 0, "")
		testutil.CreateTestApplication(t, db, models.StatusRejected, 0, "")

		req := testutil.MakeRequest("GET", "/stats", nil, nil)
		w := httptest.NewRecorder()

		handler.PublicStats(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.PublicStatsResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.TotalApplications != 3 {
			t.Errorf("Expected 3 applications, got %d", resp.TotalApplications)
		}
		// Fixtures all use 500
		if resp.TotalAmount != 1500 {
			t.Errorf("Expected total amount 1500, got %f", resp.TotalAmount)
		}
		if resp.TotalCountries != 1 {
			t.Errorf("Expected 1 country, got %d", resp.TotalCountries)
		}
		if resp.LastUpdated.IsZero() {
			t.Error("Expected last_updated to be set")
		}
	})
}
