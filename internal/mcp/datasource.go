package mcp

import (
	"context"
	"time"

	"github.com/liftline/liftline/internal/models"
	"github.com/liftline/liftline/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface. Tools fetch raw
// rows and run the metrics math themselves, so local and remote mode produce
// identical numbers.
type DataSource interface {
	QueryLoggedSets(ctx context.Context, start, end time.Time, userID int, exerciseFilter string) ([]models.LoggedSetRow, error)
	QueryWorkouts(ctx context.Context, start, end time.Time, userID int, nameFilter string) ([]models.WorkoutRow, error)
	ListExercises(ctx context.Context, userID int) ([]storage.ExerciseEntry, error)
	GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string, userID int) ([]storage.TrainingSummaryPeriod, error)
	GetSettings(ctx context.Context, userID int) (*models.UserSettings, error)
	GetDataStats(ctx context.Context, userID int) (*storage.DataStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
