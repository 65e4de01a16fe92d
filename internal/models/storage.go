package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutRow is a row ready for insertion into the workouts table.
type WorkoutRow struct {
	ID          uuid.UUID `json:"id"`
	UserID      int       `json:"-"`
	Name        string    `json:"name"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	DurationSec float64   `json:"duration_sec"`
	RawJSON     []byte    `json:"-"`
}

// LoggedSetRow is a row for the logged_sets table: one set plus the session
// and exercise context it was logged under. GroupID/GroupPosition carry
// superset linkage for display; they never enter the volume math.
type LoggedSetRow struct {
	UserID        int          `json:"-"`
	WorkoutID     uuid.UUID    `json:"workout_id"`
	WorkoutName   string       `json:"workout_name"`
	SessionDate   time.Time    `json:"session_date"`
	ExerciseName  string       `json:"exercise_name"`
	ExerciseType  ExerciseType `json:"exercise_type"`
	GroupID       *string      `json:"group_id,omitempty"`
	GroupPosition *int         `json:"group_position,omitempty"`
	SetNumber     int          `json:"set_number"`
	SetType       SetType      `json:"set_type"`
	Reps          int          `json:"reps"`
	WeightKg      float64      `json:"weight_kg"`
	EntryUnit     WeightUnit   `json:"entry_unit"`
	Completed     bool         `json:"completed"`
	LoggedAt      time.Time    `json:"logged_at"`
}

// Set extracts the plain LoggedSet view of the row.
func (r LoggedSetRow) Set() LoggedSet {
	return LoggedSet{
		SetNumber: r.SetNumber,
		Reps:      r.Reps,
		WeightKg:  r.WeightKg,
		Unit:      r.EntryUnit,
		Completed: r.Completed,
		Type:      r.SetType,
		LoggedAt:  r.LoggedAt,
	}
}

// UserSettings holds per-user analytics inputs: the bodyweight used for
// bodyweight-involved volume math and the preferred display unit.
type UserSettings struct {
	BodyweightKg  float64    `json:"bodyweight_kg"`
	PreferredUnit WeightUnit `json:"preferred_unit"`
}
