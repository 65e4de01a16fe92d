package models

// Shapes for the mobile app's JSON backup export. Timestamps arrive as epoch
// milliseconds; exercise type metadata is loosely typed and goes through
// ResolveExerciseType before anything else touches it.

// Backup is the top-level backup file.
type Backup struct {
	Version   int              `json:"version"`
	Profile   BackupProfile    `json:"profile"`
	Exercises []BackupCatalog  `json:"exercises"`
	Workouts  []BackupWorkout  `json:"workouts"`
}

// BackupProfile carries the lifter's bodyweight and display preferences.
type BackupProfile struct {
	BodyWeight     float64 `json:"bodyWeight"`
	BodyWeightUnit string  `json:"bodyWeightUnit"`
	DefaultUnit    string  `json:"defaultUnit"`
}

// BackupCatalog is one exercise catalog entry. Older exports populate
// exerciseType instead of type; both fields are kept and resolved together.
type BackupCatalog struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	ExerciseType string `json:"exerciseType"`
	MuscleGroup  string `json:"muscleGroup"`
}

// BackupWorkout is one finished workout.
type BackupWorkout struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Date        int64            `json:"date"` // epoch ms
	DurationSec float64          `json:"durationSec"`
	Exercises   []BackupExercise `json:"exercises"`
}

// BackupExercise is one exercise instance within a workout.
type BackupExercise struct {
	Name          string      `json:"name"`
	Type          string      `json:"type"`
	GroupID       *string     `json:"groupId"`
	GroupPosition *int        `json:"groupPosition"`
	Sets          []BackupSet `json:"sets"`
}

// BackupSet is one logged set. Weight is in the entry unit; normalization to
// kilograms happens at ingest.
type BackupSet struct {
	SetNumber int     `json:"setNumber"`
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
	Unit      string  `json:"unit"`
	Completed bool    `json:"completed"`
	SetType   string  `json:"setType"`
	Timestamp int64   `json:"timestamp"` // epoch ms
}

// ResolvedType returns the exercise type for a workout exercise, falling back
// to the catalog entry when the instance is untyped.
func (e BackupExercise) ResolvedType(catalog map[string]BackupCatalog) ExerciseType {
	if meta, ok := catalog[e.Name]; ok {
		return ResolveExerciseType(e.Type, meta.Type, meta.ExerciseType)
	}
	return ResolveExerciseType(e.Type)
}
