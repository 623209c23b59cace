package catalog

import (
	"testing"

	"github.com/claude/liftarena/internal/models"
)

func testCatalog() *Catalog {
	return New([]Definition{
		{ID: "bench-press", Names: map[string]string{"en": "Bench Press", "es": "Press Banca (Barra)"}, Category: "chest", Metric: models.MetricStrength},
		{ID: "incline-bench-press", Names: map[string]string{"en": "Incline Bench Press"}, Category: "chest", Metric: models.MetricStrength},
		{ID: "pull-up", Names: map[string]string{"en": "Pull-up", "es": "Dominadas"}, Category: "back", Metric: models.MetricStrength, Bodyweight: true},
		{ID: "running", Names: map[string]string{"en": "Running", "es": "Correr"}, Category: "cardio", Metric: models.MetricCardio},
	})
}

// TestResolveExact verifies tier 1: a full localized name, any case or
// accent, resolves to its id.
func TestResolveExact(t *testing.T) {
	c := testCatalog()
	cases := []struct {
		in   string
		want string
	}{
		{"Bench Press", "bench-press"},
		{"bench press", "bench-press"},
		{"PRESS BANCA (BARRA)", "bench-press"},
		{"dominadas", "pull-up"},
		{"Incline Bench Press", "incline-bench-press"},
	}
	for _, tc := range cases {
		if got := c.ResolveID(tc.in); got != tc.want {
			t.Errorf("ResolveID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestResolvePrefix verifies tier 2 absorbs truncated voice input, with
// catalog order breaking ties ("bench" matches Bench Press before
// Incline Bench Press reaches the substring tier).
func TestResolvePrefix(t *testing.T) {
	c := testCatalog()
	if got := c.ResolveID("press banca"); got != "bench-press" {
		t.Errorf(`ResolveID("press banca") = %q, want bench-press`, got)
	}
	if got := c.ResolveID("bench"); got != "bench-press" {
		t.Errorf(`ResolveID("bench") = %q, want bench-press (prefix tier, first in order)`, got)
	}
	if got := c.ResolveID("incline"); got != "incline-bench-press" {
		t.Errorf(`ResolveID("incline") = %q, want incline-bench-press`, got)
	}
}

// TestResolveSubstring verifies tier 3: input contained anywhere in a name.
func TestResolveSubstring(t *testing.T) {
	c := testCatalog()
	if got := c.ResolveID("banca"); got != "bench-press" {
		t.Errorf(`ResolveID("banca") = %q, want bench-press`, got)
	}
}

// TestResolveFallback verifies tier 4: unknown names come back trimmed
// as ad-hoc identities, never an error.
func TestResolveFallback(t *testing.T) {
	c := testCatalog()
	if got := c.ResolveID("  zercher carry  "); got != "zercher carry" {
		t.Errorf("fallback = %q, want trimmed input", got)
	}

	// Empty catalog degrades to the fallback tier for everything.
	empty := New(nil)
	if got := empty.ResolveID("Bench Press"); got != "Bench Press" {
		t.Errorf("empty-catalog resolve = %q, want input", got)
	}
}

// TestResolveDeterministic verifies repeated calls return the same id.
func TestResolveDeterministic(t *testing.T) {
	c := testCatalog()
	first := c.ResolveID("press")
	for range 50 {
		if got := c.ResolveID("press"); got != first {
			t.Fatalf("ResolveID not deterministic: %q then %q", first, got)
		}
	}
}

// TestLocalizedName covers locale hit, English fallback, and the
// capitalized ad-hoc fallback.
func TestLocalizedName(t *testing.T) {
	c := testCatalog()
	if got := c.LocalizedName("bench-press", "es"); got != "Press Banca (Barra)" {
		t.Errorf("es name = %q", got)
	}
	if got := c.LocalizedName("incline-bench-press", "es"); got != "Incline Bench Press" {
		t.Errorf("en fallback = %q", got)
	}
	if got := c.LocalizedName("zercher carry", "en"); got != "Zercher Carry" {
		t.Errorf("ad-hoc fallback = %q, want capitalized", got)
	}
}

// TestCatalogFlags verifies metric and bodyweight-style lookups with the
// strength default for ad-hoc ids.
func TestCatalogFlags(t *testing.T) {
	c := testCatalog()
	if c.Metric("running") != models.MetricCardio {
		t.Error("running should be cardio")
	}
	if c.Metric("some ad-hoc lift") != models.MetricStrength {
		t.Error("ad-hoc ids default to strength")
	}
	if !c.BodyweightStyle("pull-up") {
		t.Error("pull-up should be bodyweight-style")
	}
	if c.BodyweightStyle("bench-press") {
		t.Error("bench-press should not be bodyweight-style")
	}
}
