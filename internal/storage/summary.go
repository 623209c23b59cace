package storage

import (
	"context"
	"fmt"
	"time"
)

// VolumePeriod holds aggregated tonnage for one time bucket.
type VolumePeriod struct {
	Period      string  `json:"period"`
	Workouts    int     `json:"workouts"`
	WorkingSets int     `json:"working_sets"`
	TotalReps   int     `json:"total_reps"`
	TonnageKg   float64 `json:"tonnage_kg"`
	CardioKm    float64 `json:"cardio_km"`
}

// GetVolumeSummary returns tonnage and cardio totals per period. Tonnage
// sums the volume_kg persisted with each set; cardio distance is
// normalized to km in SQL (m → km).
func (db *DB) GetVolumeSummary(ctx context.Context, start, end time.Time, bucket string, userID int) ([]VolumePeriod, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, w.day)::date AS period,
		        COUNT(DISTINCT w.id)::int,
		        COUNT(s.id) FILTER (WHERE s.metric_type = 'strength' AND s.reps > 0)::int,
		        COALESCE(SUM(s.reps) FILTER (WHERE s.metric_type = 'strength'), 0)::int,
		        COALESCE(SUM(s.volume_kg), 0),
		        COALESCE(SUM(CASE s.distance_unit WHEN 'km' THEN s.distance WHEN 'm' THEN s.distance / 1000 ELSE 0 END)
		                 FILTER (WHERE s.metric_type = 'cardio'), 0)
		 FROM workouts w
		 LEFT JOIN workout_exercises e ON e.workout_id = w.id
		 LEFT JOIN exercise_sets s ON s.exercise_id = e.id
		 WHERE w.day >= $2 AND w.day < $3 AND w.user_id = $4
		 GROUP BY period
		 ORDER BY period DESC`,
		truncInterval(bucket), start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying volume summary: %w", err)
	}
	defer rows.Close()

	var result []VolumePeriod
	for rows.Next() {
		var periodTime time.Time
		var vp VolumePeriod
		if err := rows.Scan(&periodTime, &vp.Workouts, &vp.WorkingSets, &vp.TotalReps, &vp.TonnageKg, &vp.CardioKm); err != nil {
			return nil, fmt.Errorf("scanning volume summary: %w", err)
		}
		vp.Period = periodTime.Format("2006-01-02")
		result = append(result, vp)
	}
	return result, rows.Err()
}

// DataStats holds aggregate statistics about a user's stored data.
type DataStats struct {
	TotalWorkouts  int64      `json:"total_workouts"`
	TotalExercises int64      `json:"total_exercises"`
	TotalSets      int64      `json:"total_sets"`
	EarliestDay    *time.Time `json:"earliest_day"`
	LatestDay      *time.Time `json:"latest_day"`
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(day), MAX(day) FROM workouts WHERE user_id = $1`, userID,
	).Scan(&stats.TotalWorkouts, &stats.EarliestDay, &stats.LatestDay)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM workout_exercises e
		 JOIN workouts w ON w.id = e.workout_id
		 WHERE w.user_id = $1`, userID,
	).Scan(&stats.TotalExercises)
	if err != nil {
		return nil, fmt.Errorf("counting exercises: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exercise_sets s
		 JOIN workout_exercises e ON e.id = s.exercise_id
		 JOIN workouts w ON w.id = e.workout_id
		 WHERE w.user_id = $1`, userID,
	).Scan(&stats.TotalSets)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	return stats, nil
}

// truncInterval converts bucket strings like "1 month" to the interval
// name that date_trunc expects.
func truncInterval(bucket string) string {
	switch bucket {
	case "1 week":
		return "week"
	case "1 month":
		return "month"
	default:
		return "month"
	}
}
