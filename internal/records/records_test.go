package records

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/claude/liftarena/internal/catalog"
	"github.com/claude/liftarena/internal/models"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func workout(d string, entries ...models.ExerciseEntry) models.Workout {
	return models.Workout{Day: day(d), Exercises: entries}
}

func strengthEntry(name string, sets ...models.StrengthSet) models.ExerciseEntry {
	e := models.ExerciseEntry{Name: name}
	for _, s := range sets {
		e.Sets = append(e.Sets, s)
	}
	return e
}

// TestComputeSingleRecord walks the full path for one set: "press banca"
// 80 kg × 10 resolves to bench-press with value 80 kg and Epley 1RM 107.
func TestComputeSingleRecord(t *testing.T) {
	cat := catalog.Fallback()
	workouts := []models.Workout{
		workout("2024-01-01", strengthEntry("press banca",
			models.StrengthSet{Reps: 10, Weight: 80, Unit: models.UnitKg})),
	}

	recs := Compute(workouts, cat)
	pr, ok := recs["bench-press"]
	if !ok {
		t.Fatalf("no bench-press record; got %v", recs)
	}
	if pr.Value != 80 {
		t.Errorf("value = %v, want 80", pr.Value)
	}
	if pr.OneRepMax != 107 {
		t.Errorf("one_rep_max = %v, want 107", pr.OneRepMax)
	}
	if pr.Bodyweight {
		t.Error("loaded record flagged bodyweight")
	}
	if !pr.AchievedOn.Equal(day("2024-01-01")) {
		t.Errorf("achieved_on = %v", pr.AchievedOn)
	}
}

// TestLoadedBeatsBodyweight verifies a loaded set always supersedes a
// bodyweight record, even when its 1RM is numerically smaller than the
// bodyweight rep count.
func TestLoadedBeatsBodyweight(t *testing.T) {
	cat := catalog.Fallback()
	workouts := []models.Workout{
		workout("2024-01-01", strengthEntry("pull-up",
			models.StrengthSet{Reps: 20}, // bodyweight, value 20
			models.StrengthSet{Reps: 15})),
		workout("2024-02-01", strengthEntry("pull-up",
			models.StrengthSet{Reps: 3, Weight: 10, Unit: models.UnitKg})), // 1RM 11 < 20
	}

	pr := Compute(workouts, cat)["pull-up"]
	if pr.Bodyweight {
		t.Fatal("loaded set must displace the bodyweight record")
	}
	if pr.Value != 10 {
		t.Errorf("value = %v, want 10 kg", pr.Value)
	}
}

// TestBodyweightNeverDisplacesLoaded is the mirror case.
func TestBodyweightNeverDisplacesLoaded(t *testing.T) {
	cat := catalog.Fallback()
	workouts := []models.Workout{
		workout("2024-01-01", strengthEntry("dominadas",
			models.StrengthSet{Reps: 5, Weight: 20, Unit: models.UnitKg})),
		workout("2024-02-01", strengthEntry("Pull-up",
			models.StrengthSet{Reps: 30})),
	}

	pr := Compute(workouts, cat)["pull-up"]
	if pr.Bodyweight || pr.Value != 20 {
		t.Errorf("record = %+v, want loaded 20 kg", pr)
	}
}

// TestLoadedTieBreakByRawWeight verifies equal 1RMs fall through to raw
// weight: 110×1 (1RM 110) beats 100×3 (1RM 110) on weight.
func TestLoadedTieBreakByRawWeight(t *testing.T) {
	cat := catalog.Fallback()
	workouts := []models.Workout{
		workout("2024-01-01", strengthEntry("bench press",
			models.StrengthSet{Reps: 3, Weight: 100, Unit: models.UnitKg})),
		workout("2024-01-08", strengthEntry("bench press",
			models.StrengthSet{Reps: 1, Weight: 110, Unit: models.UnitKg})),
	}

	pr := Compute(workouts, cat)["bench-press"]
	if pr.Value != 110 {
		t.Errorf("value = %v, want 110 (raw-weight tie-break)", pr.Value)
	}
}

// TestCardioByDistance verifies cardio records compare by distance only.
func TestCardioByDistance(t *testing.T) {
	cat := catalog.Fallback()
	workouts := []models.Workout{
		workout("2024-01-01", models.ExerciseEntry{Name: "running", Sets: []models.Set{
			models.CardioSet{Distance: 5, Duration: "24:30", Unit: models.UnitKm},
		}}),
		workout("2024-01-15", models.ExerciseEntry{Name: "correr", Sets: []models.Set{
			models.CardioSet{Distance: 10, Duration: "55:00", Unit: models.UnitKm},
		}}),
	}

	pr := Compute(workouts, cat)["running"]
	if pr.Value != 10 {
		t.Errorf("value = %v, want 10", pr.Value)
	}
	if pr.DisplayUnit != "km" {
		t.Errorf("unit = %q, want km", pr.DisplayUnit)
	}
}

// TestZeroSetsNeverWin verifies empty sets contribute nothing and cannot
// displace an existing record.
func TestZeroSetsNeverWin(t *testing.T) {
	cat := catalog.Fallback()
	workouts := []models.Workout{
		workout("2024-01-01", strengthEntry("squat",
			models.StrengthSet{Reps: 5, Weight: 120, Unit: models.UnitKg})),
		workout("2024-02-01", strengthEntry("squat",
			models.StrengthSet{})), // no reps, no weight
	}

	recs := Compute(workouts, cat)
	if pr := recs["squat"]; pr.Value != 120 {
		t.Errorf("value = %v, want 120", pr.Value)
	}

	// A history of only zero sets yields no record at all.
	empty := Compute([]models.Workout{
		workout("2024-01-01", strengthEntry("squat", models.StrengthSet{})),
	}, cat)
	if len(empty) != 0 {
		t.Errorf("records = %v, want none", empty)
	}
}

// TestAdHocExercise verifies unresolvable names still earn records under
// their own identity.
func TestAdHocExercise(t *testing.T) {
	cat := catalog.Fallback()
	workouts := []models.Workout{
		workout("2024-01-01", strengthEntry("zercher carry",
			models.StrengthSet{Reps: 10, Weight: 60, Unit: models.UnitKg})),
	}

	if _, ok := Compute(workouts, cat)["zercher carry"]; !ok {
		t.Error("ad-hoc exercise should have a record under its own name")
	}
}

// TestComputeOrderIndependent verifies shuffling the workout slice never
// changes the resulting map.
func TestComputeOrderIndependent(t *testing.T) {
	cat := catalog.Fallback()
	workouts := []models.Workout{
		workout("2024-01-01", strengthEntry("bench press", models.StrengthSet{Reps: 8, Weight: 80, Unit: models.UnitKg})),
		workout("2024-01-08", strengthEntry("bench press", models.StrengthSet{Reps: 5, Weight: 90, Unit: models.UnitKg})),
		workout("2024-01-15", strengthEntry("squat", models.StrengthSet{Reps: 5, Weight: 140, Unit: models.UnitKg})),
		workout("2024-01-22", strengthEntry("pull-up", models.StrengthSet{Reps: 12})),
		workout("2024-01-29", strengthEntry("pull-up", models.StrengthSet{Reps: 4, Weight: 15, Unit: models.UnitKg})),
	}

	want := Compute(workouts, cat)

	rng := rand.New(rand.NewSource(1))
	for range 20 {
		shuffled := make([]models.Workout, len(workouts))
		copy(shuffled, workouts)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		if got := Compute(shuffled, cat); !reflect.DeepEqual(got, want) {
			t.Fatalf("shuffled result differs:\n got %v\nwant %v", got, want)
		}
	}
}
