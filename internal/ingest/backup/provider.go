// Package backup ingests the mobile app's JSON backup export: profile
// settings, the exercise catalog, and every logged workout with its sets.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/liftline/liftline/internal/ingest"
	"github.com/liftline/liftline/internal/metrics"
	"github.com/liftline/liftline/internal/models"
	"github.com/liftline/liftline/internal/storage"
)

// Provider processes JSON backup exports.
type Provider struct {
	db  *storage.DB
	log *slog.Logger
}

// NewProvider creates a new backup ingest provider.
func NewProvider(db *storage.DB, log *slog.Logger) *Provider {
	return &Provider{db: db, log: log}
}

// Ingest decodes a backup file and stores its workouts and sets. Weights are
// normalized to kilograms on the way in; the entry unit is kept for display.
// Profile bodyweight and unit preferences update the user's settings.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, userID int) (*ingest.Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}

	var b models.Backup
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decoding backup: %w", err)
	}

	result := &ingest.Result{}

	if b.Profile.BodyWeight > 0 {
		unit := parseUnit(b.Profile.BodyWeightUnit)
		settings := models.UserSettings{
			BodyweightKg:  metrics.NormalizeWeight(b.Profile.BodyWeight, unit),
			PreferredUnit: parseUnit(b.Profile.DefaultUnit),
		}
		if err := p.db.PutSettings(ctx, userID, settings); err != nil {
			return nil, fmt.Errorf("saving profile settings: %w", err)
		}
		result.SettingsUpdated = true
	}

	catalog := make(map[string]models.BackupCatalog, len(b.Exercises))
	for _, entry := range b.Exercises {
		catalog[entry.Name] = entry
	}

	result.WorkoutsReceived = len(b.Workouts)
	var allRows []models.LoggedSetRow

	for _, w := range b.Workouts {
		workoutID, err := parseWorkoutID(w.ID)
		if err != nil {
			return nil, fmt.Errorf("workout %q: %w", w.Name, err)
		}
		start := models.MillisToTime(w.Date)
		end := start.Add(time.Duration(w.DurationSec * float64(time.Second)))

		rawWorkout, err := json.Marshal(w)
		if err != nil {
			return nil, fmt.Errorf("encoding workout %q: %w", w.Name, err)
		}

		inserted, err := p.db.InsertWorkout(ctx, models.WorkoutRow{
			ID:          workoutID,
			UserID:      userID,
			Name:        w.Name,
			StartTime:   start,
			EndTime:     end,
			DurationSec: w.DurationSec,
			RawJSON:     rawWorkout,
		})
		if err != nil {
			return nil, fmt.Errorf("inserting workout %q: %w", w.Name, err)
		}
		if inserted {
			result.WorkoutsInserted++
		} else {
			result.WorkoutsSkipped++
		}

		for _, ex := range w.Exercises {
			exType := ex.ResolvedType(catalog)
			for _, set := range ex.Sets {
				unit := parseUnit(set.Unit)
				loggedAt := start
				if set.Timestamp > 0 {
					loggedAt = models.MillisToTime(set.Timestamp)
				}
				allRows = append(allRows, models.LoggedSetRow{
					UserID:        userID,
					WorkoutID:     workoutID,
					WorkoutName:   w.Name,
					SessionDate:   start,
					ExerciseName:  ex.Name,
					ExerciseType:  exType,
					GroupID:       ex.GroupID,
					GroupPosition: ex.GroupPosition,
					SetNumber:     set.SetNumber,
					SetType:       models.ParseSetType(set.SetType),
					Reps:          set.Reps,
					WeightKg:      metrics.NormalizeWeight(set.Weight, unit),
					EntryUnit:     unit,
					Completed:     set.Completed,
					LoggedAt:      loggedAt,
				})
			}
		}
	}

	result.SetsReceived = len(allRows)
	if len(allRows) > 0 {
		inserted, err := p.db.InsertLoggedSets(ctx, allRows)
		if err != nil {
			return nil, fmt.Errorf("inserting sets: %w", err)
		}
		result.SetsInserted = inserted
		result.SetsSkipped = int64(len(allRows)) - inserted
	}

	p.log.Info("backup ingested",
		"workouts", result.WorkoutsInserted,
		"sets", result.SetsInserted,
		"skipped", result.SetsSkipped)

	return result, nil
}

// parseWorkoutID accepts the app's UUID workout IDs and falls back to a
// name-derived UUID for exports that predate stable IDs.
func parseWorkoutID(id string) (uuid.UUID, error) {
	if id == "" {
		return uuid.New(), nil
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(id)), nil
	}
	return parsed, nil
}

func parseUnit(s string) models.WeightUnit {
	switch s {
	case "lbs", "lb", "pounds":
		return models.UnitLbs
	}
	return models.UnitKg
}
