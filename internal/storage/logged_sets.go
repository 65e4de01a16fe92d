package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/liftline/liftline/internal/models"
)

// InsertLoggedSets batch-inserts logged set rows. Returns count inserted;
// duplicates (same workout, exercise, set number) are skipped.
func (db *DB) InsertLoggedSets(ctx context.Context, rows []models.LoggedSetRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO logged_sets (user_id, workout_id, workout_name, session_date,
		exercise_name, exercise_type, group_id, group_position, set_number, set_type,
		reps, weight_kg, entry_unit, completed, logged_at) VALUES `
	args := make([]any, 0, len(rows)*15)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 15
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8,
			base+9, base+10, base+11, base+12, base+13, base+14, base+15,
		))
		args = append(args, r.UserID, r.WorkoutID, r.WorkoutName, r.SessionDate,
			r.ExerciseName, r.ExerciseType, r.GroupID, r.GroupPosition,
			r.SetNumber, r.SetType, r.Reps, r.WeightKg, r.EntryUnit,
			r.Completed, r.LoggedAt)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting logged sets: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryLoggedSets retrieves logged sets in a date range, optionally filtered
// by exercise name (partial, case-insensitive match).
func (db *DB) QueryLoggedSets(ctx context.Context, start, end time.Time, userID int, exerciseFilter string) ([]models.LoggedSetRow, error) {
	query := `SELECT user_id, workout_id, workout_name, session_date, exercise_name,
		 exercise_type, group_id, group_position, set_number, set_type,
		 reps, weight_kg, entry_unit, completed, logged_at
		 FROM logged_sets
		 WHERE session_date >= $1 AND session_date < $2 AND user_id = $3`
	args := []any{start, end, userID}

	if exerciseFilter != "" {
		query += ` AND exercise_name ILIKE '%' || $4 || '%'`
		args = append(args, exerciseFilter)
	}
	query += ` ORDER BY session_date ASC, set_number ASC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying logged sets: %w", err)
	}
	defer rows.Close()

	var result []models.LoggedSetRow
	for rows.Next() {
		var r models.LoggedSetRow
		if err := rows.Scan(&r.UserID, &r.WorkoutID, &r.WorkoutName, &r.SessionDate,
			&r.ExerciseName, &r.ExerciseType, &r.GroupID, &r.GroupPosition,
			&r.SetNumber, &r.SetType, &r.Reps, &r.WeightKg, &r.EntryUnit,
			&r.Completed, &r.LoggedAt); err != nil {
			return nil, fmt.Errorf("scanning logged set: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// DeleteSessionSets removes all sets logged on a session date so re-ingest of
// an export always reflects the latest file contents.
func (db *DB) DeleteSessionSets(ctx context.Context, sessionDate time.Time, userID int) error {
	dayStart := time.Date(sessionDate.Year(), sessionDate.Month(), sessionDate.Day(), 0, 0, 0, 0, time.UTC)
	_, err := db.Pool.Exec(ctx,
		`DELETE FROM logged_sets WHERE user_id = $1 AND session_date >= $2 AND session_date < $3`,
		userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return fmt.Errorf("deleting session sets: %w", err)
	}
	return nil
}

// ListExercises returns distinct exercise names with set counts, most logged
// first.
func (db *DB) ListExercises(ctx context.Context, userID int) ([]ExerciseEntry, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT exercise_name, exercise_type, COUNT(*)::int, MAX(session_date)
		 FROM logged_sets
		 WHERE user_id = $1
		 GROUP BY exercise_name, exercise_type
		 ORDER BY COUNT(*) DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []ExerciseEntry
	for rows.Next() {
		var e ExerciseEntry
		if err := rows.Scan(&e.Name, &e.Type, &e.TotalSets, &e.LastLogged); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// ExerciseEntry is one row of the exercise catalog listing.
type ExerciseEntry struct {
	Name       string              `json:"name"`
	Type       models.ExerciseType `json:"type"`
	TotalSets  int                 `json:"total_sets"`
	LastLogged time.Time           `json:"last_logged"`
}
