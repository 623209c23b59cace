package importer

import (
	"database/sql"
	"testing"

	"github.com/claude/liftarena/internal/models"
)

// TestConvertSetStrength verifies plain strength rows convert directly.
func TestConvertSetStrength(t *testing.T) {
	set, zeroed := convertSet(legacySet{
		Reps:   sql.NullInt64{Int64: 8, Valid: true},
		Weight: sql.NullFloat64{Float64: 100, Valid: true},
		Unit:   sql.NullString{String: "kg", Valid: true},
	})
	if zeroed {
		t.Error("zeroed = true, want false")
	}
	ss, ok := set.(models.StrengthSet)
	if !ok {
		t.Fatalf("set type = %T, want StrengthSet", set)
	}
	if ss.Reps != 8 || ss.Weight != 100 || ss.Unit != models.UnitKg {
		t.Errorf("set = %+v, want 8x100 kg", ss)
	}
}

// TestConvertSetLbs verifies pound units survive instead of being
// converted at import time.
func TestConvertSetLbs(t *testing.T) {
	set, _ := convertSet(legacySet{
		Reps:   sql.NullInt64{Int64: 5, Valid: true},
		Weight: sql.NullFloat64{Float64: 220, Valid: true},
		Unit:   sql.NullString{String: "LBS", Valid: true},
	})
	ss := set.(models.StrengthSet)
	if ss.Unit != models.UnitLbs {
		t.Errorf("unit = %q, want lbs", ss.Unit)
	}
	if got := ss.WeightKg(); got < 99.7 || got > 99.9 {
		t.Errorf("WeightKg() = %v, want ~99.79", got)
	}
}

// TestConvertSetCardio verifies distance/duration rows become cardio sets.
func TestConvertSetCardio(t *testing.T) {
	set, zeroed := convertSet(legacySet{
		Distance: sql.NullFloat64{Float64: 5, Valid: true},
		Duration: sql.NullString{String: "25:30", Valid: true},
		Unit:     sql.NullString{String: "km", Valid: true},
	})
	if zeroed {
		t.Error("zeroed = true, want false")
	}
	cs, ok := set.(models.CardioSet)
	if !ok {
		t.Fatalf("set type = %T, want CardioSet", set)
	}
	if cs.Distance != 5 || cs.Unit != models.UnitKm {
		t.Errorf("set = %+v, want 5 km", cs)
	}
	if got := cs.Minutes(); got != 25.5 {
		t.Errorf("Minutes() = %v, want 25.5", got)
	}
}

// TestConvertSetNegativeClamped verifies negative values zero out and
// are reported.
func TestConvertSetNegativeClamped(t *testing.T) {
	set, zeroed := convertSet(legacySet{
		Reps:   sql.NullInt64{Int64: -3, Valid: true},
		Weight: sql.NullFloat64{Float64: -50, Valid: true},
	})
	if !zeroed {
		t.Error("zeroed = false, want true")
	}
	ss := set.(models.StrengthSet)
	if ss.Reps != 0 || ss.Weight != 0 {
		t.Errorf("set = %+v, want zeros", ss)
	}
}

// TestConvertSetMalformedDuration verifies garbage durations are kept as
// text but flagged.
func TestConvertSetMalformedDuration(t *testing.T) {
	_, zeroed := convertSet(legacySet{
		Duration: sql.NullString{String: "about an hour", Valid: true},
	})
	if !zeroed {
		t.Error("zeroed = false, want true")
	}
}

// TestWorkoutUUIDDeterministic verifies the same legacy row always maps
// to the same UUID, and distinct rows to distinct UUIDs.
func TestWorkoutUUIDDeterministic(t *testing.T) {
	a := WorkoutUUID("ana", 42)
	b := WorkoutUUID("ana", 42)
	if a != b {
		t.Errorf("same input produced %s and %s", a, b)
	}
	if WorkoutUUID("ana", 43) == a {
		t.Error("distinct legacy IDs mapped to the same UUID")
	}
	if WorkoutUUID("bruno", 42) == a {
		t.Error("distinct logins mapped to the same UUID")
	}
}

// TestParseLegacyDay covers the date formats seen in real exports.
func TestParseLegacyDay(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"2026-03-01", "2026-03-01"},
		{"2026-03-01 18:45:00", "2026-03-01"},
		{"2026-03-01T18:45:00Z", "2026-03-01"},
	}
	for _, tc := range cases {
		day, err := parseLegacyDay(tc.raw)
		if err != nil {
			t.Errorf("parseLegacyDay(%q): %v", tc.raw, err)
			continue
		}
		if got := day.Format("2006-01-02"); got != tc.want {
			t.Errorf("parseLegacyDay(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}

	if _, err := parseLegacyDay("last tuesday"); err == nil {
		t.Error("expected error for unparseable date")
	}
}
