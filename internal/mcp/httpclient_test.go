package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/escbch/TrainingApp-2/internal/models"
)

// newTestAPI creates an httptest server that routes requests to handler
// functions keyed by path. Verifies the HTTP client hits the right paths.
func newTestAPI(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestHTTPClientListPlans verifies path and JSON array decoding.
func TestHTTPClientListPlans(t *testing.T) {
	ts := newTestAPI(t, map[string]http.HandlerFunc{
		"/api/v1/plans": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []models.Plan{
				{ID: "pb3", Name: "Powerbuilding", Weeks: 8, DaysPerWeek: 3},
			})
		},
	})
	defer ts.Close()

	plans, err := NewHTTPClient(ts.URL).ListPlans(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 1 || plans[0].ID != "pb3" {
		t.Fatalf("plans = %+v, want one pb3 entry", plans)
	}
}

// TestHTTPClientActivePlanNull verifies a JSON null body (no active plan)
// decodes to a nil result.
func TestHTTPClientActivePlanNull(t *testing.T) {
	ts := newTestAPI(t, map[string]http.HandlerFunc{
		"/api/v1/active": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, nil)
		},
	})
	defer ts.Close()

	active, err := NewHTTPClient(ts.URL).GetActivePlan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if active != nil {
		t.Errorf("active = %+v, want nil", active)
	}
}

// TestHTTPClientNotFound verifies a 404 maps to a nil result, not an error.
func TestHTTPClientNotFound(t *testing.T) {
	ts := newTestAPI(t, map[string]http.HandlerFunc{
		"/api/v1/days/2025-03-04": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
	})
	defer ts.Close()

	day, err := NewHTTPClient(ts.URL).GetTrainingDay(context.Background(), models.NewDate(2025, time.March, 4))
	if err != nil {
		t.Fatal(err)
	}
	if day != nil {
		t.Errorf("day = %+v, want nil", day)
	}
}

// TestHTTPClientServerError verifies non-404 failures surface as errors.
func TestHTTPClientServerError(t *testing.T) {
	ts := newTestAPI(t, map[string]http.HandlerFunc{
		"/api/v1/days": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	if _, err := NewHTTPClient(ts.URL).ListTrainingDays(context.Background()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

// TestHTTPClientSuggestions verifies the wrapped suggestions object decodes.
func TestHTTPClientSuggestions(t *testing.T) {
	ts := newTestAPI(t, map[string]http.HandlerFunc{
		"/api/v1/days/2025-03-03/exercises/ex-1/suggestions": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, map[string]any{
				"suggestions": []SetSuggestion{
					{SetIndex: 2, SuggestedWeight: 92.3},
					{SetIndex: 3, SuggestedWeight: 92.3},
				},
			})
		},
	})
	defer ts.Close()

	got, err := NewHTTPClient(ts.URL).GetSuggestions(context.Background(), models.NewDate(2025, time.March, 3), "ex-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].SetIndex != 2 {
		t.Fatalf("suggestions = %+v, want two entries starting at index 2", got)
	}
}

// TestHTTPClientMissingCount verifies the missing-entry count endpoint.
func TestHTTPClientMissingCount(t *testing.T) {
	ts := newTestAPI(t, map[string]http.HandlerFunc{
		"/api/v1/days/2025-03-03/missing": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, map[string]int{"missing": 5})
		},
	})
	defer ts.Close()

	got, err := NewHTTPClient(ts.URL).CountMissingEntries(context.Background(), models.NewDate(2025, time.March, 3))
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Errorf("missing = %d, want 5", got)
	}
}
