package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/liftline/liftline/internal/models"
)

// InsertWorkout inserts a workout row. Returns false if the workout already
// existed (same ID).
func (db *DB) InsertWorkout(ctx context.Context, w models.WorkoutRow) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO workouts (id, user_id, name, start_time, end_time, duration_sec, raw_json)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO NOTHING`,
		w.ID, w.UserID, w.Name, w.StartTime, w.EndTime, w.DurationSec, w.RawJSON)
	if err != nil {
		return false, fmt.Errorf("inserting workout: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QueryWorkouts retrieves workouts in a time range, newest first, optionally
// filtered by name.
func (db *DB) QueryWorkouts(ctx context.Context, start, end time.Time, userID int, nameFilter string) ([]models.WorkoutRow, error) {
	query := `SELECT id, user_id, name, start_time, end_time, duration_sec
		 FROM workouts
		 WHERE start_time >= $1 AND start_time < $2 AND user_id = $3`
	args := []any{start, end, userID}

	if nameFilter != "" {
		query += ` AND name ILIKE '%' || $4 || '%'`
		args = append(args, nameFilter)
	}
	query += ` ORDER BY start_time DESC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutRow
	for rows.Next() {
		var w models.WorkoutRow
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.StartTime, &w.EndTime, &w.DurationSec); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// GetWorkout retrieves one workout with its logged sets.
func (db *DB) GetWorkout(ctx context.Context, id uuid.UUID, userID int) (*WorkoutDetail, error) {
	var w models.WorkoutRow
	err := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, name, start_time, end_time, duration_sec
		 FROM workouts WHERE id = $1 AND user_id = $2`, id, userID,
	).Scan(&w.ID, &w.UserID, &w.Name, &w.StartTime, &w.EndTime, &w.DurationSec)
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT user_id, workout_id, workout_name, session_date, exercise_name,
		 exercise_type, group_id, group_position, set_number, set_type,
		 reps, weight_kg, entry_unit, completed, logged_at
		 FROM logged_sets WHERE workout_id = $1 AND user_id = $2
		 ORDER BY exercise_name, set_number`, id, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	defer rows.Close()

	detail := &WorkoutDetail{Workout: w}
	for rows.Next() {
		var r models.LoggedSetRow
		if err := rows.Scan(&r.UserID, &r.WorkoutID, &r.WorkoutName, &r.SessionDate,
			&r.ExerciseName, &r.ExerciseType, &r.GroupID, &r.GroupPosition,
			&r.SetNumber, &r.SetType, &r.Reps, &r.WeightKg, &r.EntryUnit,
			&r.Completed, &r.LoggedAt); err != nil {
			return nil, fmt.Errorf("scanning workout set: %w", err)
		}
		detail.Sets = append(detail.Sets, r)
	}
	return detail, rows.Err()
}

// WorkoutDetail is a workout plus all its logged sets.
type WorkoutDetail struct {
	Workout models.WorkoutRow     `json:"workout"`
	Sets    []models.LoggedSetRow `json:"sets"`
}
