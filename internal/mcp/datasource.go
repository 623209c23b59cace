package mcp

import (
	"context"
	"time"

	"github.com/claude/liftarena/internal/models"
	"github.com/claude/liftarena/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both Local (direct
// database access) and HTTPClient (remote via REST API) satisfy this
// interface. Users are addressed by login because remote mode never sees
// database IDs.
type DataSource interface {
	Workouts(ctx context.Context, login string, start, end time.Time) ([]models.Workout, error)
	History(ctx context.Context, login string) ([]models.Workout, error)
	ProfileWeight(ctx context.Context, login string) (float64, error)
	VolumeSummary(ctx context.Context, login string, start, end time.Time, bucket string) ([]storage.VolumePeriod, error)
	Stats(ctx context.Context, login string) (*storage.DataStats, error)
}

// Local implements DataSource against the database directly.
type Local struct {
	db *storage.DB
}

// Compile-time check: *Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

// NewLocal wraps a database handle as a DataSource.
func NewLocal(db *storage.DB) *Local {
	return &Local{db: db}
}

func (l *Local) userID(ctx context.Context, login string) (int, error) {
	u, err := l.db.GetUserByLogin(ctx, login)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

func (l *Local) Workouts(ctx context.Context, login string, start, end time.Time) ([]models.Workout, error) {
	id, err := l.userID(ctx, login)
	if err != nil {
		return nil, err
	}
	return l.db.QueryWorkouts(ctx, start, end, id)
}

func (l *Local) History(ctx context.Context, login string) ([]models.Workout, error) {
	id, err := l.userID(ctx, login)
	if err != nil {
		return nil, err
	}
	return l.db.GetUserHistory(ctx, id)
}

func (l *Local) ProfileWeight(ctx context.Context, login string) (float64, error) {
	id, err := l.userID(ctx, login)
	if err != nil {
		return 0, err
	}
	return l.db.ProfileWeight(ctx, id)
}

func (l *Local) VolumeSummary(ctx context.Context, login string, start, end time.Time, bucket string) ([]storage.VolumePeriod, error) {
	id, err := l.userID(ctx, login)
	if err != nil {
		return nil, err
	}
	return l.db.GetVolumeSummary(ctx, start, end, bucket, id)
}

func (l *Local) Stats(ctx context.Context, login string) (*storage.DataStats, error) {
	id, err := l.userID(ctx, login)
	if err != nil {
		return nil, err
	}
	return l.db.GetDataStats(ctx, id)
}
