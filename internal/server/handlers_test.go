package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/escbch/TrainingApp-2/internal/catalog"
	"github.com/escbch/TrainingApp-2/internal/models"
	"github.com/escbch/TrainingApp-2/internal/training"
)

const testAPIKey = "test-key"

func newTestServer() *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	planner := training.NewPlanner(catalog.Builtin(), training.BuiltinTemplates{})
	return New(planner, nil, testAPIKey, log)
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testAPIKey)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func activateTestPlan(t *testing.T, s *Server) {
	t.Helper()
	// 2025-03-03 is a Monday; Mon/Wed/Fri over 8 weeks = 24 days.
	rec := doJSON(t, s, http.MethodPost, "/api/v1/active",
		`{"plan_id":"powerbuilding-3day","start_date":"2025-03-03","weekdays":[1,3,5]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("activate status = %d, body %s", rec.Code, rec.Body)
	}
}

func firstDay(t *testing.T, s *Server) models.TrainingDay {
	t.Helper()
	rec := doJSON(t, s, http.MethodGet, "/api/v1/days", "")
	var days []models.TrainingDay
	if err := json.NewDecoder(rec.Body).Decode(&days); err != nil {
		t.Fatalf("decode days: %v", err)
	}
	if len(days) == 0 {
		t.Fatal("no scheduled days")
	}
	return days[0]
}

// TestListPlans verifies the catalog endpoint returns the built-in plans.
func TestListPlans(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, http.MethodGet, "/api/v1/plans", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var plans []models.Plan
	if err := json.NewDecoder(rec.Body).Decode(&plans); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(plans) != 3 {
		t.Errorf("got %d plans, want 3", len(plans))
	}
}

// TestGetPlanNotFound verifies an unknown plan id yields a 404 JSON error.
func TestGetPlanNotFound(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, http.MethodGet, "/api/v1/plans/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// TestActivateSchedulesDays verifies activation materializes the expected
// number of days and that the active plan is queryable afterwards.
func TestActivateSchedulesDays(t *testing.T) {
	s := newTestServer()
	activateTestPlan(t, s)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/days", "")
	var days []models.TrainingDay
	if err := json.NewDecoder(rec.Body).Decode(&days); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(days) != 24 {
		t.Errorf("got %d days, want 24", len(days))
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/active", "")
	var active models.ActivePlan
	if err := json.NewDecoder(rec.Body).Decode(&active); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if active.PlanID != "powerbuilding-3day" {
		t.Errorf("active plan = %q, want powerbuilding-3day", active.PlanID)
	}
}

// TestActivateUnknownPlan verifies the silent no-op contract over HTTP: the
// request succeeds but zero days are scheduled.
func TestActivateUnknownPlan(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, http.MethodPost, "/api/v1/active",
		`{"plan_id":"no-such-plan","start_date":"2025-03-03","weekdays":[1]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp["scheduled_days"] != 0 {
		t.Errorf("scheduled_days = %d, want 0", resp["scheduled_days"])
	}
}

// TestActivateBadRequest verifies malformed dates and weekday numbers are
// rejected before they reach the core.
func TestActivateBadRequest(t *testing.T) {
	s := newTestServer()
	tests := []struct {
		name string
		body string
	}{
		{"bad date", `{"plan_id":"powerbuilding-3day","start_date":"03/03/2025","weekdays":[1]}`},
		{"bad weekday", `{"plan_id":"powerbuilding-3day","start_date":"2025-03-03","weekdays":[8]}`},
		{"empty weekdays", `{"plan_id":"powerbuilding-3day","start_date":"2025-03-03","weekdays":[]}`},
		{"invalid json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, "/api/v1/active", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

// TestClearActive verifies DELETE /active empties the schedule.
func TestClearActive(t *testing.T) {
	s := newTestServer()
	activateTestPlan(t, s)

	rec := doJSON(t, s, http.MethodDelete, "/api/v1/active", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/days", "")
	var days []models.TrainingDay
	if err := json.NewDecoder(rec.Body).Decode(&days); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("got %d days after clear, want 0", len(days))
	}
}

// TestUpdateSetFlow walks the entry flow: patch a set, watch the missing
// count drop, zero-fill the rest, and read the summary.
func TestUpdateSetFlow(t *testing.T) {
	s := newTestServer()
	activateTestPlan(t, s)
	day := firstDay(t, s)
	ex := day.Exercises[0]

	url := fmt.Sprintf("/api/v1/days/%s/exercises/%s/sets/1", day.Date, ex.ID)
	rec := doJSON(t, s, http.MethodPatch, url, `{"weight":100,"achieved_rpe":8,"completed":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body %s", rec.Code, rec.Body)
	}

	totalSets := 0
	for _, e := range day.Exercises {
		totalSets += len(e.Sets)
	}

	rec = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/v1/days/%s/missing", day.Date), "")
	var missing map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&missing); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if missing["missing"] != totalSets-1 {
		t.Errorf("missing = %d, want %d", missing["missing"], totalSets-1)
	}

	rec = doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/v1/days/%s/fill-zeros", day.Date), "")
	var filled map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&filled); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if filled["filled"] != totalSets-1 {
		t.Errorf("filled = %d, want %d", filled["filled"], totalSets-1)
	}

	rec = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/v1/days/%s/summary", day.Date), "")
	var sum models.TrainingDaySummary
	if err := json.NewDecoder(rec.Body).Decode(&sum); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if sum.TotalSets != totalSets {
		t.Errorf("total sets = %d, want %d", sum.TotalSets, totalSets)
	}
	// One set of 5 reps at 100kg; everything else zero-filled.
	if sum.TotalWeightMovedKg != 500 {
		t.Errorf("weight moved = %.1f, want 500", sum.TotalWeightMovedKg)
	}
}

// TestUpdateSetNotFound verifies 404s for unscheduled dates and unknown
// exercises or set indices.
func TestUpdateSetNotFound(t *testing.T) {
	s := newTestServer()
	activateTestPlan(t, s)
	day := firstDay(t, s)

	tests := []struct {
		name string
		url  string
	}{
		{"unscheduled date", fmt.Sprintf("/api/v1/days/1999-01-01/exercises/%s/sets/1", day.Exercises[0].ID)},
		{"unknown exercise", fmt.Sprintf("/api/v1/days/%s/exercises/nope/sets/1", day.Date)},
		{"unknown set", fmt.Sprintf("/api/v1/days/%s/exercises/%s/sets/99", day.Date, day.Exercises[0].ID)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPatch, tt.url, `{"weight":50}`)
			if rec.Code != http.StatusNotFound {
				t.Errorf("status = %d, want 404", rec.Code)
			}
		})
	}
}

// TestSuggestions verifies the anchored-progression endpoint: empty before
// the first set is entered, populated afterwards.
func TestSuggestions(t *testing.T) {
	s := newTestServer()
	activateTestPlan(t, s)
	day := firstDay(t, s)
	bench := day.Exercises[0] // anchored in the builtin 3-day rotation

	url := fmt.Sprintf("/api/v1/days/%s/exercises/%s/suggestions", day.Date, bench.ID)
	rec := doJSON(t, s, http.MethodGet, url, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Suggestions []setSuggestion `json:"suggestions"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(resp.Suggestions) != 0 {
		t.Fatalf("got %d suggestions before entry, want 0", len(resp.Suggestions))
	}

	patchURL := fmt.Sprintf("/api/v1/days/%s/exercises/%s/sets/1", day.Date, bench.ID)
	doJSON(t, s, http.MethodPatch, patchURL, `{"weight":100,"achieved_rpe":10}`)

	rec = doJSON(t, s, http.MethodGet, url, "")
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(resp.Suggestions) != len(bench.Sets)-1 {
		t.Fatalf("got %d suggestions, want %d", len(resp.Suggestions), len(bench.Sets)-1)
	}
	for i, sg := range resp.Suggestions {
		if sg.SetIndex != i+2 {
			t.Errorf("suggestion %d has set index %d, want %d", i, sg.SetIndex, i+2)
		}
		if sg.SuggestedWeight <= 0 {
			t.Errorf("set %d suggested weight = %.2f, want positive", sg.SetIndex, sg.SuggestedWeight)
		}
	}
}

// TestDayEndpointsNotFound verifies the day read endpoints 404 on
// unscheduled dates and 400 on malformed ones.
func TestDayEndpointsNotFound(t *testing.T) {
	s := newTestServer()
	activateTestPlan(t, s)

	for _, path := range []string{
		"/api/v1/days/1999-01-01",
		"/api/v1/days/1999-01-01/summary",
	} {
		if rec := doJSON(t, s, http.MethodGet, path, ""); rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, rec.Code)
		}
	}

	// Missing-entry count for an unscheduled date is 0, not an error.
	rec := doJSON(t, s, http.MethodGet, "/api/v1/days/1999-01-01/missing", "")
	if rec.Code != http.StatusOK {
		t.Errorf("missing: status = %d, want 200", rec.Code)
	}
	var missing map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&missing); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if missing["missing"] != 0 {
		t.Errorf("missing = %d, want 0", missing["missing"])
	}

	if rec := doJSON(t, s, http.MethodGet, "/api/v1/days/not-a-date", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed date: status = %d, want 400", rec.Code)
	}
}

// TestCommandAuth verifies command endpoints demand the API key while query
// endpoints stay open.
func TestCommandAuth(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/active", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no key: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/active", strings.NewReader(`{}`))
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong key: status = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("query without key: status = %d, want 200", rec.Code)
	}
}
