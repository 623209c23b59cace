package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// MetricType distinguishes how an exercise is measured.
type MetricType string

const (
	MetricStrength MetricType = "strength"
	MetricCardio   MetricType = "cardio"
)

// WeightUnit is the unit a strength set was logged in.
type WeightUnit string

const (
	UnitKg  WeightUnit = "kg"
	UnitLbs WeightUnit = "lbs"
)

// DistanceUnit is the unit a cardio set was logged in.
type DistanceUnit string

const (
	UnitKm  DistanceUnit = "km"
	UnitM   DistanceUnit = "m"
	UnitMin DistanceUnit = "min"
)

// LbsToKg converts pounds to kilograms.
const LbsToKg = 0.453592

// Set is one performed set. Exactly one concrete type exists per metric
// type (StrengthSet, CardioSet); consumers switch exhaustively on the
// concrete type rather than guarding optional fields.
type Set interface {
	Metric() MetricType
}

// StrengthSet is a set of a strength exercise. Weight == 0 means a
// bodyweight set, not a zero-load set — comparison and volume semantics
// differ for the two cases.
type StrengthSet struct {
	Reps       int        `json:"reps"`
	Weight     float64    `json:"weight"`
	Unit       WeightUnit `json:"unit"`
	RPE        *float64   `json:"rpe,omitempty"`
	Unilateral bool       `json:"unilateral,omitempty"`
}

// Metric implements Set.
func (StrengthSet) Metric() MetricType { return MetricStrength }

// WeightKg returns the logged weight normalized to kilograms.
func (s StrengthSet) WeightKg() float64 {
	if s.Unit == UnitLbs {
		return s.Weight * LbsToKg
	}
	return s.Weight
}

// Bodyweight reports whether this set was performed without external load.
func (s StrengthSet) Bodyweight() bool { return s.Weight == 0 }

// CardioSet is a set of a cardio exercise. Distance and time are tracked
// as independent metrics; they are never folded into tonnage.
type CardioSet struct {
	Distance float64      `json:"distance,omitempty"`
	Duration string       `json:"time,omitempty"`
	Unit     DistanceUnit `json:"unit,omitempty"`
}

// Metric implements Set.
func (CardioSet) Metric() MetricType { return MetricCardio }

// Minutes parses the logged duration. Accepts "MM:SS" and plain numeric
// minutes; anything unparseable is 0.
func (s CardioSet) Minutes() float64 {
	return ParseMinutes(s.Duration)
}

// ParseMinutes converts a duration string ("MM:SS" or numeric minutes)
// to fractional minutes. Malformed input yields 0.
func ParseMinutes(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if mm, ss, ok := strings.Cut(raw, ":"); ok {
		m, err1 := strconv.Atoi(strings.TrimSpace(mm))
		s, err2 := strconv.Atoi(strings.TrimSpace(ss))
		if err1 != nil || err2 != nil || m < 0 || s < 0 {
			return 0
		}
		return float64(m) + float64(s)/60
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// rawSet is the loosely-shaped set object produced by the voice/LLM
// extractor. Strength and cardio fields coexist; malformed values decode
// to zero instead of failing the whole payload.
type rawSet struct {
	Reps     looseInt    `json:"reps"`
	Weight   looseFloat  `json:"weight"`
	RPE      *looseFloat `json:"rpe"`
	Distance looseFloat  `json:"distance"`
	Duration looseString `json:"time"`
	Unit     looseString `json:"unit"`

	Unilateral bool `json:"unilateral"`
}

// toSet classifies a raw set into the tagged union. A set logged with
// distance, a duration, or a distance unit is cardio; everything else is
// strength.
func (r rawSet) toSet() Set {
	unit := strings.ToLower(strings.TrimSpace(string(r.Unit)))
	isCardioUnit := unit == string(UnitKm) || unit == string(UnitM) || unit == string(UnitMin)
	if r.Distance > 0 || r.Duration != "" || isCardioUnit {
		du := DistanceUnit(unit)
		if !isCardioUnit {
			du = UnitKm
		}
		return CardioSet{
			Distance: float64(r.Distance),
			Duration: string(r.Duration),
			Unit:     du,
		}
	}

	wu := UnitKg
	if unit == string(UnitLbs) {
		wu = UnitLbs
	}
	s := StrengthSet{
		Reps:       int(r.Reps),
		Weight:     float64(r.Weight),
		Unit:       wu,
		Unilateral: r.Unilateral,
	}
	if r.RPE != nil {
		v := float64(*r.RPE)
		s.RPE = &v
	}
	return s
}

// looseFloat decodes a JSON number or numeric string; anything else
// (null, objects, garbage text) becomes 0. Negative values are clamped
// to 0 — no set field is meaningfully negative.
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(data []byte) error {
	*f = 0
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	*f = looseFloat(v)
	return nil
}

// looseInt decodes like looseFloat, truncating to an int.
type looseInt int

func (i *looseInt) UnmarshalJSON(data []byte) error {
	var f looseFloat
	_ = f.UnmarshalJSON(data)
	*i = looseInt(f)
	return nil
}

// looseString decodes a JSON string; non-strings become "".
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	*s = ""
	var v string
	if err := json.Unmarshal(data, &v); err == nil {
		*s = looseString(v)
	}
	return nil
}
