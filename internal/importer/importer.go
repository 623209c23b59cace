package importer

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/claude/liftarena/internal/catalog"
	"github.com/claude/liftarena/internal/models"
	"github.com/claude/liftarena/internal/storage"
)

// Stats tracks import progress.
type Stats struct {
	WorkoutsRead     int
	WorkoutsImported int
	WorkoutsSkipped  int
	ExercisesRead    int
	SetsRead         int
	SetsZeroed       int
}

// Importer reads a legacy SQLite export and inserts the workouts into
// the database. Workout IDs are derived deterministically from the
// legacy row IDs, so re-running an import replaces instead of
// duplicating.
type Importer struct {
	db     *storage.DB
	cat    *catalog.Catalog
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer.
func New(db *storage.DB, cat *catalog.Catalog, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, cat: cat, log: log, dryRun: dryRun}
}

// legacySet mirrors one row of the export's sets table. Everything is
// nullable; the old app validated almost nothing.
type legacySet struct {
	Reps     sql.NullInt64
	Weight   sql.NullFloat64
	Unit     sql.NullString
	Distance sql.NullFloat64
	Duration sql.NullString
}

// Import reads all workouts from the SQLite export at path and inserts
// them for the given user login.
func (imp *Importer) Import(ctx context.Context, path, login string) (*Stats, error) {
	legacy, err := sql.Open("sqlite", path)
	if err != nil {
		return &imp.stats, fmt.Errorf("opening export %s: %w", path, err)
	}
	defer legacy.Close()

	if err := legacy.PingContext(ctx); err != nil {
		return &imp.stats, fmt.Errorf("reading export %s: %w", path, err)
	}

	userID := 0
	if !imp.dryRun {
		userID, err = imp.db.GetOrCreateUser(ctx, login, "")
		if err != nil {
			return &imp.stats, fmt.Errorf("resolving user %q: %w", login, err)
		}
	}

	rows, err := legacy.QueryContext(ctx,
		`SELECT id, logged_on, body_weight FROM workouts ORDER BY logged_on, id`)
	if err != nil {
		return &imp.stats, fmt.Errorf("reading workouts: %w", err)
	}
	defer rows.Close()

	type legacyWorkout struct {
		id       int64
		loggedOn string
		bodyKg   sql.NullFloat64
	}
	var pending []legacyWorkout
	for rows.Next() {
		var lw legacyWorkout
		if err := rows.Scan(&lw.id, &lw.loggedOn, &lw.bodyKg); err != nil {
			return &imp.stats, fmt.Errorf("scanning workout: %w", err)
		}
		pending = append(pending, lw)
	}
	if err := rows.Err(); err != nil {
		return &imp.stats, err
	}

	for _, lw := range pending {
		imp.stats.WorkoutsRead++

		day, err := parseLegacyDay(lw.loggedOn)
		if err != nil {
			imp.log.Warn("skipping workout with unparseable date",
				"legacy_id", lw.id, "logged_on", lw.loggedOn)
			imp.stats.WorkoutsSkipped++
			continue
		}

		exercises, err := imp.readExercises(ctx, legacy, lw.id)
		if err != nil {
			return &imp.stats, fmt.Errorf("reading workout %d: %w", lw.id, err)
		}
		if len(exercises) == 0 {
			imp.stats.WorkoutsSkipped++
			continue
		}

		w := models.Workout{
			ID:        WorkoutUUID(login, lw.id),
			UserID:    userID,
			Day:       day,
			Exercises: exercises,
		}
		if lw.bodyKg.Valid && lw.bodyKg.Float64 > 0 {
			kg := lw.bodyKg.Float64
			w.BodyWeightKg = &kg
		}

		if imp.dryRun {
			imp.stats.WorkoutsImported++
			continue
		}
		if err := imp.db.InsertWorkout(ctx, w, imp.cat); err != nil {
			return &imp.stats, fmt.Errorf("inserting workout %d: %w", lw.id, err)
		}
		imp.stats.WorkoutsImported++
	}

	return &imp.stats, nil
}

func (imp *Importer) readExercises(ctx context.Context, legacy *sql.DB, workoutID int64) ([]models.ExerciseEntry, error) {
	rows, err := legacy.QueryContext(ctx,
		`SELECT e.id, e.name,
		        s.reps, s.weight, s.unit, s.distance, s.duration
		 FROM exercises e
		 LEFT JOIN sets s ON s.exercise_id = e.id
		 WHERE e.workout_id = ?
		 ORDER BY e.position, e.id, s.id`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("reading exercises: %w", err)
	}
	defer rows.Close()

	var entries []models.ExerciseEntry
	seen := map[int64]int{}
	for rows.Next() {
		var exID int64
		var name string
		var ls legacySet
		if err := rows.Scan(&exID, &name, &ls.Reps, &ls.Weight, &ls.Unit, &ls.Distance, &ls.Duration); err != nil {
			return nil, fmt.Errorf("scanning exercise row: %w", err)
		}

		idx, ok := seen[exID]
		if !ok {
			idx = len(entries)
			seen[exID] = idx
			entries = append(entries, models.ExerciseEntry{Name: name})
			imp.stats.ExercisesRead++
		}

		if !ls.Reps.Valid && !ls.Weight.Valid && !ls.Distance.Valid && !ls.Duration.Valid {
			continue
		}
		set, zeroed := convertSet(ls)
		if zeroed {
			imp.stats.SetsZeroed++
		}
		entries[idx].Sets = append(entries[idx].Sets, set)
		imp.stats.SetsRead++
	}
	return entries, rows.Err()
}

// convertSet maps a legacy set row onto the tagged union. Negative or
// missing values become zero; the second return reports whether any
// field had to be zeroed.
func convertSet(ls legacySet) (models.Set, bool) {
	zeroed := false

	unit := ""
	if ls.Unit.Valid {
		unit = strings.ToLower(strings.TrimSpace(ls.Unit.String))
	}

	isCardioUnit := unit == string(models.UnitKm) || unit == string(models.UnitM) || unit == string(models.UnitMin)
	if (ls.Distance.Valid && ls.Distance.Float64 != 0) || (ls.Duration.Valid && ls.Duration.String != "") || isCardioUnit {
		cs := models.CardioSet{Unit: models.UnitKm}
		if isCardioUnit {
			cs.Unit = models.DistanceUnit(unit)
		}
		if ls.Distance.Valid {
			if ls.Distance.Float64 < 0 {
				zeroed = true
			} else {
				cs.Distance = ls.Distance.Float64
			}
		}
		if ls.Duration.Valid {
			cs.Duration = strings.TrimSpace(ls.Duration.String)
			if cs.Duration != "" && models.ParseMinutes(cs.Duration) == 0 {
				zeroed = true
			}
		}
		return cs, zeroed
	}

	ss := models.StrengthSet{Unit: models.UnitKg}
	if unit == string(models.UnitLbs) {
		ss.Unit = models.UnitLbs
	}
	if ls.Reps.Valid {
		if ls.Reps.Int64 < 0 {
			zeroed = true
		} else {
			ss.Reps = int(ls.Reps.Int64)
		}
	}
	if ls.Weight.Valid {
		if ls.Weight.Float64 < 0 {
			zeroed = true
		} else {
			ss.Weight = ls.Weight.Float64
		}
	}
	return ss, zeroed
}

// WorkoutUUID derives a stable UUID from the user login and the legacy
// workout row ID.
func WorkoutUUID(login string, legacyID int64) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("liftarena:"+login+":"+strconv.FormatInt(legacyID, 10)))
}

func parseLegacyDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return models.Midnight(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
