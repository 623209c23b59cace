package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ExerciseEntry is one exercise performed in a workout. Name is the text
// as typed or voice-transcribed; it is resolved against the catalog fresh
// on every read, never cached here.
type ExerciseEntry struct {
	Name       string `json:"name"`
	Unilateral bool   `json:"unilateral,omitempty"`
	Sets       []Set  `json:"sets"`
}

// UnmarshalJSON decodes the extractor's loose set objects into the tagged
// union. Malformed fields degrade to zero values; the entry itself never
// fails to decode.
func (e *ExerciseEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name       string   `json:"name"`
		Unilateral bool     `json:"unilateral"`
		Sets       []rawSet `json:"sets"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Name = raw.Name
	e.Unilateral = raw.Unilateral
	e.Sets = make([]Set, 0, len(raw.Sets))
	for _, rs := range raw.Sets {
		e.Sets = append(e.Sets, rs.toSet())
	}
	return nil
}

// Workout is one training session on a calendar day. Immutable once
// created; an edit replaces the whole workout.
type Workout struct {
	ID           uuid.UUID       `json:"id"`
	UserID       int             `json:"user_id"`
	Day          time.Time       `json:"date"`
	BodyWeightKg *float64        `json:"body_weight_kg,omitempty"`
	Exercises    []ExerciseEntry `json:"exercises"`
}

// BodyWeightOr returns the athlete's weight at the time of this workout,
// falling back to the given profile weight when no historical value was
// recorded. Bodyweight-exercise volume depends on the weight at the time
// of the specific workout, not the current profile weight.
func (w Workout) BodyWeightOr(profileKg float64) float64 {
	if w.BodyWeightKg != nil && *w.BodyWeightKg > 0 {
		return *w.BodyWeightKg
	}
	return profileKg
}

// Midnight truncates a timestamp to its calendar day in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
