package models

import (
	"encoding/json"
	"testing"
)

// TestEntryDecodeStrength verifies a typical extractor payload decodes
// into strength sets with units and RPE preserved.
func TestEntryDecodeStrength(t *testing.T) {
	payload := `{"name":"press banca","sets":[
		{"reps":10,"weight":80,"unit":"kg"},
		{"reps":5,"weight":220,"unit":"lbs","rpe":8.5}
	]}`

	var e ExerciseEntry
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if e.Name != "press banca" {
		t.Errorf("name = %q", e.Name)
	}
	if len(e.Sets) != 2 {
		t.Fatalf("sets = %d, want 2", len(e.Sets))
	}

	s1, ok := e.Sets[0].(StrengthSet)
	if !ok {
		t.Fatalf("set 0 is %T, want StrengthSet", e.Sets[0])
	}
	if s1.Reps != 10 || s1.Weight != 80 || s1.Unit != UnitKg {
		t.Errorf("set 0 = %+v", s1)
	}

	s2 := e.Sets[1].(StrengthSet)
	if s2.Unit != UnitLbs {
		t.Errorf("set 1 unit = %q, want lbs", s2.Unit)
	}
	if got := s2.WeightKg(); got < 99.7 || got > 99.9 {
		t.Errorf("WeightKg = %v, want ~99.79", got)
	}
	if s2.RPE == nil || *s2.RPE != 8.5 {
		t.Errorf("set 1 rpe = %v, want 8.5", s2.RPE)
	}
}

// TestEntryDecodeCardio verifies distance/time sets classify as cardio.
func TestEntryDecodeCardio(t *testing.T) {
	payload := `{"name":"running","sets":[
		{"distance":5,"time":"25:30","unit":"km"},
		{"time":"12","unit":"min"}
	]}`

	var e ExerciseEntry
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		t.Fatalf("decode error: %v", err)
	}

	c1, ok := e.Sets[0].(CardioSet)
	if !ok {
		t.Fatalf("set 0 is %T, want CardioSet", e.Sets[0])
	}
	if c1.Distance != 5 || c1.Unit != UnitKm {
		t.Errorf("set 0 = %+v", c1)
	}
	if got := c1.Minutes(); got != 25.5 {
		t.Errorf("Minutes = %v, want 25.5", got)
	}

	c2 := e.Sets[1].(CardioSet)
	if got := c2.Minutes(); got != 12 {
		t.Errorf("Minutes = %v, want 12", got)
	}
}

// TestEntryDecodeMalformed verifies malformed numeric fields default to
// zero rather than failing the decode.
func TestEntryDecodeMalformed(t *testing.T) {
	payload := `{"name":"curl","sets":[
		{"reps":"ten","weight":null},
		{"reps":8,"weight":"12.5"},
		{"reps":-3,"weight":-40}
	]}`

	var e ExerciseEntry
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		t.Fatalf("decode error: %v", err)
	}

	s1 := e.Sets[0].(StrengthSet)
	if s1.Reps != 0 || s1.Weight != 0 {
		t.Errorf("malformed set = %+v, want zeros", s1)
	}

	// Numeric strings are accepted
	s2 := e.Sets[1].(StrengthSet)
	if s2.Reps != 8 || s2.Weight != 12.5 {
		t.Errorf("string-number set = %+v", s2)
	}

	// Negative values clamp to zero
	s3 := e.Sets[2].(StrengthSet)
	if s3.Reps != 0 || s3.Weight != 0 {
		t.Errorf("negative set = %+v, want zeros", s3)
	}
}

// TestParseMinutes covers the MM:SS and numeric-minutes formats.
func TestParseMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"25:30", 25.5},
		{"0:45", 0.75},
		{"12", 12},
		{"7.5", 7.5},
		{"", 0},
		{"abc", 0},
		{"-5", 0},
		{"1:xx", 0},
	}
	for _, c := range cases {
		if got := ParseMinutes(c.in); got != c.want {
			t.Errorf("ParseMinutes(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

// TestBodyweightFlag verifies weight == 0 reads as a bodyweight set.
func TestBodyweightFlag(t *testing.T) {
	if !(StrengthSet{Reps: 12}).Bodyweight() {
		t.Error("zero-weight set should be bodyweight")
	}
	if (StrengthSet{Reps: 5, Weight: 20}).Bodyweight() {
		t.Error("loaded set should not be bodyweight")
	}
}

// TestBodyWeightOr verifies the historical-then-profile fallback.
func TestBodyWeightOr(t *testing.T) {
	historical := 82.5
	w := Workout{BodyWeightKg: &historical}
	if got := w.BodyWeightOr(75); got != 82.5 {
		t.Errorf("BodyWeightOr = %v, want historical 82.5", got)
	}

	w = Workout{}
	if got := w.BodyWeightOr(75); got != 75 {
		t.Errorf("BodyWeightOr = %v, want profile 75", got)
	}
}
