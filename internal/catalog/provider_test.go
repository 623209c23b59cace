package catalog

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestProviderLoadsRemote verifies the Loading → Ready transition and that
// the remote catalog replaces the fallback wholesale.
func TestProviderLoadsRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"bench-press","names":{"en":"Bench Press"},"category":"chest","metric_type":"strength"},
			{"id":"squat","names":{"en":"Squat"},"category":"legs","metric_type":"strength"}
		]`))
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, 5*time.Second, discardLogger())
	if p.State() != StateLoading {
		t.Errorf("initial state = %v, want loading", p.State())
	}
	if p.Catalog().Len() == 0 {
		t.Error("catalog should be usable before Load")
	}

	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("load error: %v", err)
	}
	if p.State() != StateReady {
		t.Errorf("state = %v, want ready", p.State())
	}
	if got := p.Catalog().Len(); got != 2 {
		t.Errorf("catalog len = %d, want 2", got)
	}
	if got := p.Catalog().ResolveID("squat"); got != "squat" {
		t.Errorf("resolve on loaded catalog = %q", got)
	}
}

// TestProviderFallsBack verifies source failure freezes the static
// catalog and reports the Fallback state.
func TestProviderFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, time.Second, discardLogger())
	if err := p.Load(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
	if p.State() != StateFallback {
		t.Errorf("state = %v, want fallback", p.State())
	}
	if p.Catalog().Len() == 0 {
		t.Error("fallback catalog must not be empty")
	}
	// The resolver still works against the static entries.
	if got := p.Catalog().ResolveID("press banca"); got != "bench-press" {
		t.Errorf("fallback resolve = %q, want bench-press", got)
	}
}

// TestProviderEmptySource verifies a zero-definition response is treated
// as a failure, not an empty catalog.
func TestProviderEmptySource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, time.Second, discardLogger())
	if err := p.Load(context.Background()); err == nil {
		t.Fatal("expected error for empty catalog")
	}
	if p.Catalog().Len() == 0 {
		t.Error("provider must keep a non-empty catalog")
	}
}
