package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/liftline/liftline/internal/models"
)

// GetOrCreateUser finds or creates a user by login name. Returns the user ID.
// Updates last_seen and display_name on each call.
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

// GetSettings returns the user's analytics settings. A user without a settings
// row gets the zero defaults (unknown bodyweight, kg display).
func (db *DB) GetSettings(ctx context.Context, userID int) (*models.UserSettings, error) {
	s := &models.UserSettings{PreferredUnit: models.UnitKg}
	err := db.Pool.QueryRow(ctx,
		`SELECT bodyweight_kg, preferred_unit FROM user_settings WHERE user_id = $1`,
		userID,
	).Scan(&s.BodyweightKg, &s.PreferredUnit)
	if err != nil {
		// No row is not an error; bodyweight stays unknown.
		if errors.Is(err, pgx.ErrNoRows) {
			return s, nil
		}
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	return s, nil
}

// PutSettings upserts the user's analytics settings.
func (db *DB) PutSettings(ctx context.Context, userID int, s models.UserSettings) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO user_settings (user_id, bodyweight_kg, preferred_unit)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
			SET bodyweight_kg = $2, preferred_unit = $3, updated_at = NOW()
	`, userID, s.BodyweightKg, s.PreferredUnit)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
