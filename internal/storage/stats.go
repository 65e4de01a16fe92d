package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about all stored training data.
type DataStats struct {
	TotalWorkouts  int64              `json:"total_workouts"`
	TotalSets      int64              `json:"total_sets"`
	TotalExercises int64              `json:"total_exercises"`
	EarliestData   *time.Time         `json:"earliest_data"`
	LatestData     *time.Time         `json:"latest_data"`
	SetsByType     []ExerciseTypeStat `json:"sets_by_type"`
}

// ExerciseTypeStat holds summary stats for a single exercise type.
type ExerciseTypeStat struct {
	Type      string  `json:"type"`
	Sets      int64   `json:"sets"`
	TotalReps int64   `json:"total_reps"`
	TonnageKg float64 `json:"tonnage_kg"`
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}

	// Total workouts
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM workouts WHERE user_id = $1`, userID,
	).Scan(&stats.TotalWorkouts)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	// Total sets and distinct exercises
	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT exercise_name) FROM logged_sets WHERE user_id = $1`, userID,
	).Scan(&stats.TotalSets, &stats.TotalExercises)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	// Date range (earliest/latest across workouts and sets)
	err = db.Pool.QueryRow(ctx,
		`SELECT MIN(t), MAX(t) FROM (
			SELECT MIN(start_time) AS t FROM workouts WHERE user_id = $1
			UNION ALL
			SELECT MIN(session_date) FROM logged_sets WHERE user_id = $1
			UNION ALL
			SELECT MAX(start_time) FROM workouts WHERE user_id = $1
			UNION ALL
			SELECT MAX(session_date) FROM logged_sets WHERE user_id = $1
		) sub`, userID,
	).Scan(&stats.EarliestData, &stats.LatestData)
	if err != nil {
		return nil, fmt.Errorf("querying date range: %w", err)
	}

	// Working-set breakdown by exercise type. Volume here is bar weight only;
	// bodyweight contributions need settings and live in the metrics package.
	rows, err := db.Pool.Query(ctx,
		`SELECT exercise_type, COUNT(*), COALESCE(SUM(reps), 0), COALESCE(SUM(weight_kg * reps), 0)
		 FROM logged_sets
		 WHERE user_id = $1 AND completed AND set_type != 'warmup'
		 GROUP BY exercise_type
		 ORDER BY COUNT(*) DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying sets by type: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s ExerciseTypeStat
		if err := rows.Scan(&s.Type, &s.Sets, &s.TotalReps, &s.TonnageKg); err != nil {
			return nil, fmt.Errorf("scanning exercise type stat: %w", err)
		}
		stats.SetsByType = append(stats.SetsByType, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
