package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/claude/liftarena/internal/models"
	"github.com/claude/liftarena/internal/storage"
)

// newTestServer creates an httptest server that routes requests to handler
// functions keyed by path. Verifies the HTTP client sends correct paths
// and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
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

// TestHTTPClientWorkouts verifies the workouts endpoint round trip,
// including set decoding through the tagged union.
func TestHTTPClientWorkouts(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("user"); got != "ana" {
				t.Errorf("user=%q, want ana", got)
			}
			writeTestJSON(t, w, []models.Workout{
				{
					ID:     uuid.MustParse("a6f07b5e-0000-4000-8000-000000000001"),
					UserID: 1,
					Day:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
					Exercises: []models.ExerciseEntry{
						{Name: "Bench Press", Sets: []models.Set{
							models.StrengthSet{Reps: 10, Weight: 80, Unit: models.UnitKg},
						}},
					},
				},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	workouts, err := client.Workouts(context.Background(), "ana", start, end)
	if err != nil {
		t.Fatal(err)
	}
	if len(workouts) != 1 {
		t.Fatalf("got %d workouts, want 1", len(workouts))
	}
	sets := workouts[0].Exercises[0].Sets
	if len(sets) != 1 {
		t.Fatalf("got %d sets, want 1", len(sets))
	}
	ss, ok := sets[0].(models.StrengthSet)
	if !ok {
		t.Fatalf("set type = %T, want StrengthSet", sets[0])
	}
	if ss.Reps != 10 || ss.Weight != 80 {
		t.Errorf("set = %+v, want 10x80", ss)
	}
}

// TestHTTPClientProfileWeight verifies the user endpoint and the nil
// body-weight fallback.
func TestHTTPClientProfileWeight(t *testing.T) {
	kg := 72.5
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/users/ana": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, storage.User{ID: 1, Login: "ana", BodyWeightKg: &kg})
		},
		"/api/v1/users/bruno": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, storage.User{ID: 2, Login: "bruno"})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)

	got, err := client.ProfileWeight(context.Background(), "ana")
	if err != nil {
		t.Fatal(err)
	}
	if got != 72.5 {
		t.Errorf("weight = %v, want 72.5", got)
	}

	got, err = client.ProfileWeight(context.Background(), "bruno")
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("unset weight = %v, want 0", got)
	}
}

// TestHTTPClientVolumeSummary verifies query params and array decoding.
func TestHTTPClientVolumeSummary(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/volume/summary": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("bucket"); got != "1 week" {
				t.Errorf("bucket=%q, want '1 week'", got)
			}
			writeTestJSON(t, w, []storage.VolumePeriod{
				{Period: "2026-03", Workouts: 12, TonnageKg: 48000},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	periods, err := client.VolumeSummary(context.Background(), "ana", start, end, "1 week")
	if err != nil {
		t.Fatal(err)
	}
	if len(periods) != 1 {
		t.Fatalf("got %d periods, want 1", len(periods))
	}
	if periods[0].TonnageKg != 48000 {
		t.Errorf("tonnage=%v, want 48000", periods[0].TonnageKg)
	}
}

// TestHTTPClientServerError verifies the client returns an error on
// non-200 responses.
func TestHTTPClientServerError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"database down"}`))
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	_, err := client.Stats(context.Background(), "ana")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}
