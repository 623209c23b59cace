package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/liftarena/internal/catalog"
	"github.com/claude/liftarena/internal/metrics"
	"github.com/claude/liftarena/internal/models"
)

// InsertWorkout stores a workout with its exercises and sets in one
// transaction. An existing workout with the same id is replaced
// wholesale — edits never patch rows in place. Per-set volume_kg is
// denormalized at insert so SQL summaries can aggregate tonnage without
// re-deriving bodyweight semantics; it is a pure function of the
// immutable workout row and the catalog at write time.
func (db *DB) InsertWorkout(ctx context.Context, w models.Workout, cat *catalog.Catalog) error {
	if w.ID == uuid.Nil {
		return fmt.Errorf("workout id is required")
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Whole replacement; exercises and sets cascade.
	if _, err := tx.Exec(ctx,
		`DELETE FROM workouts WHERE id = $1 AND user_id = $2`, w.ID, w.UserID); err != nil {
		return fmt.Errorf("replacing workout: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO workouts (id, user_id, day, body_weight_kg)
		 VALUES ($1, $2, $3, $4)`,
		w.ID, w.UserID, models.Midnight(w.Day), w.BodyWeightKg); err != nil {
		return fmt.Errorf("inserting workout: %w", err)
	}

	// Bodyweight volume falls back to the current profile weight when
	// the workout carries no historical value.
	var profileKg *float64
	if err := tx.QueryRow(ctx,
		`SELECT body_weight_kg FROM users WHERE id = $1`, w.UserID).Scan(&profileKg); err != nil {
		return fmt.Errorf("fetching profile weight: %w", err)
	}
	bw := 0.0
	if profileKg != nil {
		bw = *profileKg
	}
	bw = w.BodyWeightOr(bw)

	for pos, entry := range w.Exercises {
		var exerciseID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO workout_exercises (workout_id, position, name, unilateral)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			w.ID, pos, entry.Name, entry.Unilateral).Scan(&exerciseID)
		if err != nil {
			return fmt.Errorf("inserting exercise %q: %w", entry.Name, err)
		}

		canonical := cat.ResolveID(entry.Name)
		style := cat.BodyweightStyle(canonical)
		for setPos, set := range entry.Sets {
			if err := insertSet(ctx, tx, exerciseID, setPos, set,
				metrics.SetVolume(set, bw, style)); err != nil {
				return fmt.Errorf("inserting set %d of %q: %w", setPos+1, entry.Name, err)
			}
		}
	}

	return tx.Commit(ctx)
}

func insertSet(ctx context.Context, tx pgx.Tx, exerciseID int64, pos int, set models.Set, volumeKg float64) error {
	switch s := set.(type) {
	case models.StrengthSet:
		_, err := tx.Exec(ctx,
			`INSERT INTO exercise_sets
			   (exercise_id, position, metric_type, reps, weight, weight_unit, rpe, volume_kg)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			exerciseID, pos, models.MetricStrength, s.Reps, s.Weight, s.Unit, s.RPE, volumeKg)
		return err
	case models.CardioSet:
		_, err := tx.Exec(ctx,
			`INSERT INTO exercise_sets
			   (exercise_id, position, metric_type, distance, duration, distance_unit, volume_kg)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			exerciseID, pos, models.MetricCardio, s.Distance, s.Duration, s.Unit, volumeKg)
		return err
	default:
		return fmt.Errorf("unknown set type %T", set)
	}
}

// DeleteWorkout removes a workout and its rows.
func (db *DB) DeleteWorkout(ctx context.Context, id uuid.UUID, userID int) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workouts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workout %s not found", id)
	}
	return nil
}

// QueryWorkouts reconstructs full workouts (exercises, tagged sets) in a
// date range, newest first.
func (db *DB) QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT w.id, w.user_id, w.day, w.body_weight_kg,
		        e.id, e.name, e.unilateral,
		        s.metric_type, s.reps, s.weight, s.weight_unit, s.rpe,
		        s.distance, s.duration, s.distance_unit
		 FROM workouts w
		 LEFT JOIN workout_exercises e ON e.workout_id = w.id
		 LEFT JOIN exercise_sets s ON s.exercise_id = e.id
		 WHERE w.user_id = $1 AND w.day >= $2 AND w.day < $3
		 ORDER BY w.day DESC, w.id, e.position, s.position`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// GetUserHistory loads a user's entire workout history. Records and
// arena standings always fold over the full history, never a window.
func (db *DB) GetUserHistory(ctx context.Context, userID int) ([]models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT w.id, w.user_id, w.day, w.body_weight_kg,
		        e.id, e.name, e.unilateral,
		        s.metric_type, s.reps, s.weight, s.weight_unit, s.rpe,
		        s.distance, s.duration, s.distance_unit
		 FROM workouts w
		 LEFT JOIN workout_exercises e ON e.workout_id = w.id
		 LEFT JOIN exercise_sets s ON s.exercise_id = e.id
		 WHERE w.user_id = $1
		 ORDER BY w.day DESC, w.id, e.position, s.position`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// scanWorkouts folds the flat join back into the nested model. Null
// columns from the LEFT JOINs mark workouts without exercises or
// exercises without sets.
func scanWorkouts(rows pgx.Rows) ([]models.Workout, error) {
	var result []models.Workout
	var current *models.Workout
	var currentExerciseID int64

	for rows.Next() {
		var (
			wID          uuid.UUID
			userID       int
			day          time.Time
			bodyWeightKg *float64

			exerciseID *int64
			name       *string
			unilateral *bool

			metricType   *string
			reps         *int
			weight       *float64
			weightUnit   *string
			rpe          *float64
			distance     *float64
			duration     *string
			distanceUnit *string
		)
		if err := rows.Scan(&wID, &userID, &day, &bodyWeightKg,
			&exerciseID, &name, &unilateral,
			&metricType, &reps, &weight, &weightUnit, &rpe,
			&distance, &duration, &distanceUnit); err != nil {
			return nil, fmt.Errorf("scanning workout row: %w", err)
		}

		if current == nil || current.ID != wID {
			if current != nil {
				result = append(result, *current)
			}
			current = &models.Workout{ID: wID, UserID: userID, Day: day, BodyWeightKg: bodyWeightKg}
			currentExerciseID = 0
		}

		if exerciseID == nil {
			continue
		}
		if currentExerciseID != *exerciseID {
			entry := models.ExerciseEntry{Name: *name}
			if unilateral != nil {
				entry.Unilateral = *unilateral
			}
			current.Exercises = append(current.Exercises, entry)
			currentExerciseID = *exerciseID
		}

		if metricType == nil {
			continue
		}
		entry := &current.Exercises[len(current.Exercises)-1]
		entry.Sets = append(entry.Sets, rowToSet(*metricType, reps, weight, weightUnit, rpe, distance, duration, distanceUnit))
	}
	if current != nil {
		result = append(result, *current)
	}
	return result, rows.Err()
}

// rowToSet rebuilds the tagged union from nullable columns, defaulting
// missing values to zero like everywhere else in the engine.
func rowToSet(metricType string, reps *int, weight *float64, weightUnit *string,
	rpe *float64, distance *float64, duration *string, distanceUnit *string) models.Set {

	if metricType == string(models.MetricCardio) {
		s := models.CardioSet{}
		if distance != nil {
			s.Distance = *distance
		}
		if duration != nil {
			s.Duration = *duration
		}
		if distanceUnit != nil {
			s.Unit = models.DistanceUnit(*distanceUnit)
		}
		return s
	}

	s := models.StrengthSet{Unit: models.UnitKg}
	if reps != nil {
		s.Reps = *reps
	}
	if weight != nil {
		s.Weight = *weight
	}
	if weightUnit != nil && *weightUnit != "" {
		s.Unit = models.WeightUnit(*weightUnit)
	}
	s.RPE = rpe
	return s
}
