package setlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/liftline/liftline/internal/ingest"
	"github.com/liftline/liftline/internal/metrics"
	"github.com/liftline/liftline/internal/models"
	"github.com/liftline/liftline/internal/storage"
)

// Provider processes CSV set-log exports.
type Provider struct {
	db  *storage.DB
	log *slog.Logger
}

// NewProvider creates a new set-log ingest provider.
func NewProvider(db *storage.DB, log *slog.Logger) *Provider {
	return &Provider{db: db, log: log}
}

// Ingest parses a CSV export and stores the workout set data. Sessions are
// replaced wholesale on re-import so the database always reflects the latest
// export.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, userID int) (*ingest.Result, error) {
	sessions, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	result := &ingest.Result{WorkoutsReceived: len(sessions)}
	var allRows []models.LoggedSetRow

	// Delete existing sets per session so re-imports always reflect the latest export.
	for _, s := range sessions {
		if err := p.db.DeleteSessionSets(ctx, s.Date, userID); err != nil {
			return nil, fmt.Errorf("deleting existing sets for session %s: %w", s.Date.Format("2006-01-02"), err)
		}

		workoutID := sessionWorkoutID(s)
		inserted, err := p.db.InsertWorkout(ctx, models.WorkoutRow{
			ID:        workoutID,
			UserID:    userID,
			Name:      s.Name,
			StartTime: s.Date,
			EndTime:   s.Date,
		})
		if err != nil {
			return nil, fmt.Errorf("inserting workout %q: %w", s.Name, err)
		}
		if inserted {
			result.WorkoutsInserted++
		} else {
			result.WorkoutsSkipped++
		}

		for _, ex := range s.Exercises {
			unit := entryUnit(ex.Unit)
			for _, set := range ex.Sets {
				allRows = append(allRows, models.LoggedSetRow{
					UserID:       userID,
					WorkoutID:    workoutID,
					WorkoutName:  s.Name,
					SessionDate:  s.Date,
					ExerciseName: ex.Name,
					ExerciseType: exerciseType(ex, set),
					SetNumber:    set.Number,
					SetType:      models.ParseSetType(set.Type),
					Reps:         set.Reps,
					WeightKg:     metrics.NormalizeWeight(set.Weight, unit),
					EntryUnit:    unit,
					Completed:    !set.Skipped,
					LoggedAt:     s.Date,
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

	p.log.Info("set log ingested",
		"sessions", len(sessions),
		"sets", result.SetsInserted,
		"skipped", result.SetsSkipped)

	return result, nil
}

// sessionWorkoutID derives a stable UUID from the session's name and start
// time so re-imports hit the same workout row.
func sessionWorkoutID(s Session) uuid.UUID {
	key := s.Name + "|" + s.Date.UTC().Format("2006-01-02T15:04")
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
}

// exerciseType resolves the header's type tag, upgrading plain weighted
// exercises to weighted-bodyweight when a set uses "+" notation.
func exerciseType(ex Exercise, set Set) models.ExerciseType {
	t := models.ResolveExerciseType(ex.Type)
	if set.IsBodyweightPlus && t == models.Weighted {
		return models.WeightedBodyweight
	}
	return t
}

func entryUnit(s string) models.WeightUnit {
	if s == "lbs" {
		return models.UnitLbs
	}
	return models.UnitKg
}
