package storage

import (
	"context"
	"fmt"
)

// User is an account row. BodyWeightKg is the current profile weight,
// used as the fallback when a workout carries no historical value.
type User struct {
	ID           int      `json:"id"`
	Login        string   `json:"login"`
	DisplayName  string   `json:"display_name"`
	BodyWeightKg *float64 `json:"body_weight_kg,omitempty"`
}

// GetOrCreateUser finds or creates a user by login name. Returns the
// user ID. Updates last_seen and display_name on each call.
func (db *DB) GetOrCreateUser(ctx context.Context, login, displayName string) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (login, display_name)
		VALUES ($1, $2)
		ON CONFLICT (login) DO UPDATE
			SET last_seen = NOW(), display_name = COALESCE(NULLIF($2, ''), users.display_name)
		RETURNING id
	`, login, displayName).Scan(&id)
	return id, err
}

// GetUser fetches a user by id.
func (db *DB) GetUser(ctx context.Context, userID int) (*User, error) {
	var u User
	err := db.Pool.QueryRow(ctx,
		`SELECT id, login, COALESCE(display_name, ''), body_weight_kg
		 FROM users WHERE id = $1`, userID,
	).Scan(&u.ID, &u.Login, &u.DisplayName, &u.BodyWeightKg)
	if err != nil {
		return nil, fmt.Errorf("fetching user %d: %w", userID, err)
	}
	return &u, nil
}

// GetUserByLogin fetches a user by login name.
func (db *DB) GetUserByLogin(ctx context.Context, login string) (*User, error) {
	var u User
	err := db.Pool.QueryRow(ctx,
		`SELECT id, login, COALESCE(display_name, ''), body_weight_kg
		 FROM users WHERE login = $1`, login,
	).Scan(&u.ID, &u.Login, &u.DisplayName, &u.BodyWeightKg)
	if err != nil {
		return nil, fmt.Errorf("fetching user %q: %w", login, err)
	}
	return &u, nil
}

// SetProfileWeight updates a user's current body weight.
func (db *DB) SetProfileWeight(ctx context.Context, userID int, kg float64) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE users SET body_weight_kg = $1 WHERE id = $2`, kg, userID)
	if err != nil {
		return fmt.Errorf("updating profile weight: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}
	return nil
}

// ProfileWeight returns the user's current body weight, 0 when unset.
func (db *DB) ProfileWeight(ctx context.Context, userID int) (float64, error) {
	u, err := db.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if u.BodyWeightKg == nil {
		return 0, nil
	}
	return *u.BodyWeightKg, nil
}
