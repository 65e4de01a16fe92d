package storage

import (
	"context"
	"fmt"
	"time"
)

// SessionPeriodSummary holds aggregated workout session stats for one period.
type SessionPeriodSummary struct {
	Sessions    int     `json:"sessions"`
	AvgDuration float64 `json:"avg_duration_sec"`
}

// StrengthVolumeSummary holds aggregated strength training stats for a period.
// Tonnage is bar weight times reps; bodyweight load is layered on by callers
// that know the lifter's bodyweight.
type StrengthVolumeSummary struct {
	WorkingSets       int     `json:"working_sets"`
	TotalReps         int     `json:"total_reps"`
	TonnageKg         float64 `json:"tonnage_kg"`
	Exercises         int     `json:"exercises"`
	Sessions          int     `json:"sessions"`
	AvgSetsPerSession float64 `json:"avg_sets_per_session"`
}

// TrainingSummaryPeriod holds combined session + strength data for one time period.
type TrainingSummaryPeriod struct {
	Period   string                 `json:"period"`
	Workouts *SessionPeriodSummary  `json:"workouts,omitempty"`
	Strength *StrengthVolumeSummary `json:"strength,omitempty"`
}

// GetTrainingSummary returns aggregated workout and strength volume stats per period.
func (db *DB) GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string, userID int) ([]TrainingSummaryPeriod, error) {
	// Query 1: workout session stats grouped by period
	workoutRows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, start_time)::date AS period,
		        COUNT(*)::int,
		        COALESCE(AVG(duration_sec), 0)
		 FROM workouts
		 WHERE start_time >= $2 AND start_time < $3 AND user_id = $4
		 GROUP BY period
		 ORDER BY period DESC`,
		truncInterval(bucket), start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workout summary: %w", err)
	}
	defer workoutRows.Close()

	periodMap := make(map[string]*TrainingSummaryPeriod)
	var periodOrder []string

	for workoutRows.Next() {
		var periodTime time.Time
		var ws SessionPeriodSummary
		if err := workoutRows.Scan(&periodTime, &ws.Sessions, &ws.AvgDuration); err != nil {
			return nil, fmt.Errorf("scanning workout summary: %w", err)
		}
		key := periodTime.Format("2006-01-02")
		if _, ok := periodMap[key]; !ok {
			periodMap[key] = &TrainingSummaryPeriod{Period: key}
			periodOrder = append(periodOrder, key)
		}
		periodMap[key].Workouts = &ws
	}
	if err := workoutRows.Err(); err != nil {
		return nil, err
	}

	// Query 2: strength set volume grouped by period. Warmup and uncompleted
	// sets do not count toward working volume.
	strengthRows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, session_date)::date AS period,
		        COUNT(*) FILTER (WHERE completed AND set_type != 'warmup')::int AS working_sets,
		        COALESCE(SUM(reps) FILTER (WHERE completed AND set_type != 'warmup'), 0)::int AS total_reps,
		        COALESCE(SUM(weight_kg * reps) FILTER (WHERE completed AND set_type != 'warmup'), 0) AS tonnage,
		        COUNT(DISTINCT exercise_name)::int AS exercises,
		        COUNT(DISTINCT session_date::date)::int AS sessions
		 FROM logged_sets
		 WHERE session_date >= $2 AND session_date < $3 AND user_id = $4
		 GROUP BY period
		 ORDER BY period DESC`,
		truncInterval(bucket), start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying strength summary: %w", err)
	}
	defer strengthRows.Close()

	for strengthRows.Next() {
		var periodTime time.Time
		var sv StrengthVolumeSummary
		if err := strengthRows.Scan(&periodTime, &sv.WorkingSets, &sv.TotalReps, &sv.TonnageKg, &sv.Exercises, &sv.Sessions); err != nil {
			return nil, fmt.Errorf("scanning strength summary: %w", err)
		}
		if sv.Sessions > 0 {
			sv.AvgSetsPerSession = float64(sv.WorkingSets) / float64(sv.Sessions)
		}
		key := periodTime.Format("2006-01-02")
		if _, ok := periodMap[key]; !ok {
			periodMap[key] = &TrainingSummaryPeriod{Period: key}
			periodOrder = append(periodOrder, key)
		}
		periodMap[key].Strength = &sv
	}
	if err := strengthRows.Err(); err != nil {
		return nil, err
	}

	result := make([]TrainingSummaryPeriod, 0, len(periodOrder))
	for _, key := range periodOrder {
		result = append(result, *periodMap[key])
	}
	return result, nil
}

// truncInterval converts bucket strings like "1 month" to the interval name
// that date_trunc expects (e.g. "month", "week").
func truncInterval(bucket string) string {
	switch bucket {
	case "1 day":
		return "day"
	case "1 week":
		return "week"
	case "1 month":
		return "month"
	default:
		return "month"
	}
}
