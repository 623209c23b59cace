// Package records folds workout history into per-exercise best records.
package records

import (
	"time"

	"github.com/claude/liftarena/internal/catalog"
	"github.com/claude/liftarena/internal/metrics"
	"github.com/claude/liftarena/internal/models"
)

// PersonalRecord is a derived best for one canonical exercise. Never
// persisted — recomputed from history on every read, so a workout edit
// or deletion can never leave a stale record behind.
type PersonalRecord struct {
	ExerciseID  string    `json:"exercise_id"`
	Value       float64   `json:"value"`
	DisplayUnit string    `json:"display_unit"`
	Bodyweight  bool      `json:"is_bodyweight"`
	OneRepMax   float64   `json:"one_rep_max,omitempty"`
	Reps        int       `json:"reps,omitempty"`
	AchievedOn  time.Time `json:"achieved_on"`
}

// Compute folds a user's full history into a best-record map keyed by
// canonical exercise id. The fold is commutative: workout order never
// changes the result (exact cross-workout ties excepted, where either
// date is acceptable). Records for different exercise ids never compete
// with each other.
func Compute(workouts []models.Workout, cat *catalog.Catalog) map[string]PersonalRecord {
	best := make(map[string]PersonalRecord)

	for _, w := range workouts {
		for _, entry := range w.Exercises {
			id := cat.ResolveID(entry.Name)
			for _, set := range entry.Sets {
				candidate, ok := recordFor(id, set, w.Day)
				if !ok {
					continue
				}
				current, exists := best[id]
				if !exists || beats(candidate, current) {
					best[id] = candidate
				}
			}
		}
	}
	return best
}

// recordFor builds the candidate record one set would produce. Sets with
// a zero comparison value (zero reps and zero weight, zero distance)
// are excluded — they can never displace a positive record.
func recordFor(id string, set models.Set, day time.Time) (PersonalRecord, bool) {
	value := metrics.ComparisonValue(set)
	if value <= 0 {
		return PersonalRecord{}, false
	}

	switch s := set.(type) {
	case models.StrengthSet:
		if s.Bodyweight() {
			return PersonalRecord{
				ExerciseID:  id,
				Value:       float64(s.Reps),
				DisplayUnit: "reps",
				Bodyweight:  true,
				Reps:        s.Reps,
				AchievedOn:  day,
			}, true
		}
		return PersonalRecord{
			ExerciseID:  id,
			Value:       s.WeightKg(),
			DisplayUnit: "kg",
			Reps:        s.Reps,
			OneRepMax:   metrics.Estimated1RM(s.WeightKg(), s.Reps),
			AchievedOn:  day,
		}, true
	case models.CardioSet:
		return PersonalRecord{
			ExerciseID:  id,
			Value:       s.Distance,
			DisplayUnit: string(s.Unit),
			AchievedOn:  day,
		}, true
	default:
		return PersonalRecord{}, false
	}
}

// beats applies the upgrade rules, first applicable wins:
// a loaded lift always supersedes a bodyweight record; two loaded lifts
// compare by estimated 1RM, then raw weight; two bodyweight records by
// reps; cardio by distance. Exact ties keep the existing record, which
// together with commutative candidates makes the fold order-independent.
func beats(candidate, current PersonalRecord) bool {
	// Cardio records carry no bodyweight semantics; both sides of a
	// cardio comparison are distance records.
	if candidate.DisplayUnit != "reps" && candidate.DisplayUnit != "kg" {
		return candidate.Value > current.Value
	}

	candidateLoaded := !candidate.Bodyweight
	currentLoaded := !current.Bodyweight

	switch {
	case candidateLoaded && !currentLoaded:
		return true
	case !candidateLoaded && currentLoaded:
		return false
	case candidateLoaded && currentLoaded:
		if candidate.OneRepMax != current.OneRepMax {
			return candidate.OneRepMax > current.OneRepMax
		}
		return candidate.Value > current.Value
	default: // both bodyweight
		return candidate.Reps > current.Reps
	}
}
