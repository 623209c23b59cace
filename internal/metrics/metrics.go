// Package metrics holds the pure per-set calculations: volume in kg,
// estimated one-rep-max, and the scalar used for record comparison.
// Everything here is total — malformed data degrades to 0, never errors.
package metrics

import (
	"math"

	"github.com/claude/liftarena/internal/models"
)

// SetVolume computes a set's training volume in kilograms.
// bodyWeightKg is the athlete's weight at the time of the workout;
// bodyweightStyle is whether the exercise's catalog category is
// inherently bodyweight (pull-ups, dips, push-ups).
//
// Strength, loaded: weight × reps. Bodyweight-style logged at weight 0:
// body mass plus any added load, × reps. Non-bodyweight-style logged at
// weight 0: assume the lifter moved their own mass. Cardio never
// contributes to tonnage — distance and time are separate metrics.
func SetVolume(set models.Set, bodyWeightKg float64, bodyweightStyle bool) float64 {
	switch s := set.(type) {
	case models.StrengthSet:
		if s.Reps <= 0 {
			return 0
		}
		w := s.WeightKg()
		if bodyweightStyle && s.Bodyweight() {
			// Added load (weighted vest, assistance delta) stacks on
			// top of body mass; plain bodyweight sets have w == 0.
			w = bodyWeightKg + w
		} else if s.Bodyweight() {
			w = bodyWeightKg
		}
		if w < 0 {
			return 0
		}
		return w * float64(s.Reps)
	case models.CardioSet:
		return 0
	default:
		return 0
	}
}

// Estimated1RM estimates a one-rep-max with the Epley formula, rounded
// to the nearest whole kg. A single rep is the lift itself. This is the
// one 1RM formula used anywhere in the system.
func Estimated1RM(weightKg float64, reps int) float64 {
	if reps <= 0 || weightKg <= 0 {
		return 0
	}
	if reps == 1 {
		return weightKg
	}
	return math.Round(weightKg * (1 + float64(reps)/30))
}

// ComparisonValue is the scalar that decides "is this the new best".
// Cardio: raw distance. Bodyweight strength set: rep count. Loaded
// strength set: estimated 1RM, so 100kg×3 outranks 100kg×1.
func ComparisonValue(set models.Set) float64 {
	switch s := set.(type) {
	case models.StrengthSet:
		if s.Reps <= 0 {
			return 0
		}
		if s.Bodyweight() {
			return float64(s.Reps)
		}
		return Estimated1RM(s.WeightKg(), s.Reps)
	case models.CardioSet:
		return s.Distance
	default:
		return 0
	}
}
