package backup

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/liftline/liftline/internal/models"
)

const sampleBackup = `{
  "version": 2,
  "profile": {"bodyWeight": 181.0, "bodyWeightUnit": "lbs", "defaultUnit": "lbs"},
  "exercises": [
    {"name": "Bench Press", "type": "weighted", "muscleGroup": "chest"},
    {"name": "Pull Ups", "exerciseType": "weighted-bodyweight", "muscleGroup": "back"}
  ],
  "workouts": [
    {
      "id": "7d9f0b7e-0f0e-4f6a-9a1e-2f4f0a6b8c3d",
      "name": "Push Day",
      "date": 1772474400000,
      "durationSec": 3600,
      "exercises": [
        {
          "name": "Bench Press",
          "type": "",
          "sets": [
            {"setNumber": 1, "reps": 8, "weight": 100, "unit": "kg", "completed": true, "setType": "working", "timestamp": 1772475000000},
            {"setNumber": 2, "reps": 5, "weight": 60, "unit": "kg", "completed": true, "setType": "warmup"}
          ]
        }
      ]
    }
  ]
}`

// TestBackupDecode verifies the backup shapes decode and the catalog fallback
// resolves exercise types for untyped workout exercises.
func TestBackupDecode(t *testing.T) {
	var b models.Backup
	if err := json.Unmarshal([]byte(sampleBackup), &b); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if b.Version != 2 {
		t.Errorf("version = %d, want 2", b.Version)
	}
	if b.Profile.BodyWeight != 181.0 {
		t.Errorf("bodyweight = %f, want 181", b.Profile.BodyWeight)
	}
	if len(b.Workouts) != 1 {
		t.Fatalf("workouts = %d, want 1", len(b.Workouts))
	}

	catalog := make(map[string]models.BackupCatalog)
	for _, e := range b.Exercises {
		catalog[e.Name] = e
	}

	w := b.Workouts[0]
	if got := w.Exercises[0].ResolvedType(catalog); got != models.Weighted {
		t.Errorf("resolved type = %q, want weighted", got)
	}
	if len(w.Exercises[0].Sets) != 2 {
		t.Fatalf("sets = %d, want 2", len(w.Exercises[0].Sets))
	}
	if models.ParseSetType(w.Exercises[0].Sets[1].SetType) != models.SetWarmup {
		t.Error("second set should parse as warmup")
	}
}

// TestParseWorkoutID verifies UUID passthrough, empty fallback, and the stable
// name-derived fallback for non-UUID IDs.
func TestParseWorkoutID(t *testing.T) {
	want := "7d9f0b7e-0f0e-4f6a-9a1e-2f4f0a6b8c3d"
	got, err := parseWorkoutID(want)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != want {
		t.Errorf("parseWorkoutID = %s, want %s", got, want)
	}

	// Empty ID gets a fresh random UUID.
	fresh, err := parseWorkoutID("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh == uuid.Nil {
		t.Error("empty ID should produce a non-nil UUID")
	}

	// Non-UUID IDs map deterministically.
	a, _ := parseWorkoutID("legacy-workout-42")
	b, _ := parseWorkoutID("legacy-workout-42")
	if a != b {
		t.Errorf("name-derived UUID not stable: %s != %s", a, b)
	}
}

// TestParseUnit verifies unit tag mapping with kg as the default.
func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want models.WeightUnit
	}{
		{"kg", models.UnitKg},
		{"lbs", models.UnitLbs},
		{"lb", models.UnitLbs},
		{"pounds", models.UnitLbs},
		{"", models.UnitKg},
		{"stone", models.UnitKg},
	}
	for _, tt := range tests {
		if got := parseUnit(tt.in); got != tt.want {
			t.Errorf("parseUnit(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
