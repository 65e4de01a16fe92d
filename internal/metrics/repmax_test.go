package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/liftline/liftline/internal/models"
)

// TestEpley1RM verifies the base formula: one-rep sets are their own max,
// multi-rep sets extrapolate, zero reps estimate nothing.
func TestEpley1RM(t *testing.T) {
	tests := []struct {
		weight float64
		reps   int
		want   float64
	}{
		{100, 1, 100},
		{100, 5, 100 * (1 + 5.0/30)},
		{60, 10, 60 * (1 + 10.0/30)},
		{100, 0, 0},
		{100, -2, 0},
		{0, 5, 0},
	}

	for _, tt := range tests {
		got := Epley1RM(tt.weight, tt.reps)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Epley1RM(%.1f, %d) = %.4f, want %.4f", tt.weight, tt.reps, got, tt.want)
		}
	}
}

// TestRepMaxCurveMonotonic verifies estimate(1) >= estimate(2) >= ... >=
// estimate(12) for a single input set.
func TestRepMaxCurveMonotonic(t *testing.T) {
	curve := RepMaxCurve([]TopSet{{WeightKg: 100, Reps: 5, LoggedAt: time.Now()}}, DefaultRepMaxReps)
	if len(curve) != DefaultRepMaxReps {
		t.Fatalf("curve length = %d, want %d", len(curve), DefaultRepMaxReps)
	}
	for i := 1; i < len(curve); i++ {
		if curve[i].WeightKg > curve[i-1].WeightKg {
			t.Errorf("curve not monotonic at reps %d: %.4f > %.4f",
				curve[i].Reps, curve[i].WeightKg, curve[i-1].WeightKg)
		}
	}
}

// TestRepMaxCurveSingleSetReduces verifies that with a single known set the
// blend reduces to pure Epley: the curve passes through the set itself.
func TestRepMaxCurveSingleSetReduces(t *testing.T) {
	curve := RepMaxCurve([]TopSet{{WeightKg: 100, Reps: 5, LoggedAt: time.Now()}}, DefaultRepMaxReps)

	want1RM := Epley1RM(100, 5)
	if math.Abs(curve[0].WeightKg-want1RM) > 1e-9 {
		t.Errorf("estimate(1) = %.4f, want pure Epley %.4f", curve[0].WeightKg, want1RM)
	}
	// estimate(5) should recover the original set weight.
	if math.Abs(curve[4].WeightKg-100) > 1e-9 {
		t.Errorf("estimate(5) = %.4f, want 100", curve[4].WeightKg)
	}
}

// TestBlendedOneRepMaxRecency verifies newer sets dominate the blend: the
// estimate sits between the two sets' individual estimates, closer to the
// more recent one.
func TestBlendedOneRepMaxRecency(t *testing.T) {
	now := time.Now()
	recent := TopSet{WeightKg: 90, Reps: 5, LoggedAt: now}
	old := TopSet{WeightKg: 110, Reps: 5, LoggedAt: now.AddDate(0, -6, 0)}

	blended := BlendedOneRepMax([]TopSet{old, recent})
	recentEst := Epley1RM(recent.WeightKg, recent.Reps)
	oldEst := Epley1RM(old.WeightKg, old.Reps)

	if blended <= recentEst || blended >= oldEst {
		t.Fatalf("blend %.4f outside (%.4f, %.4f)", blended, recentEst, oldEst)
	}
	mid := (recentEst + oldEst) / 2
	if blended >= mid {
		t.Errorf("blend %.4f not weighted toward recent set (midpoint %.4f)", blended, mid)
	}
}

// TestBlendedOneRepMaxCaps verifies only the five most recent sets count.
func TestBlendedOneRepMaxCaps(t *testing.T) {
	now := time.Now()
	sets := make([]TopSet, 0, 8)
	for i := range 5 {
		sets = append(sets, TopSet{WeightKg: 100, Reps: 5, LoggedAt: now.AddDate(0, 0, -i)})
	}
	// Older outliers that must not move the estimate.
	for i := 5; i < 8; i++ {
		sets = append(sets, TopSet{WeightKg: 500, Reps: 5, LoggedAt: now.AddDate(0, 0, -i)})
	}

	got := BlendedOneRepMax(sets)
	want := Epley1RM(100, 5)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("blend = %.4f, want %.4f (outliers beyond top 5 leaked in)", got, want)
	}
}

// TestRepMaxCurveEmpty verifies no estimate is produced without any usable set.
func TestRepMaxCurveEmpty(t *testing.T) {
	if curve := RepMaxCurve(nil, DefaultRepMaxReps); curve != nil {
		t.Errorf("curve from no sets = %v, want nil", curve)
	}
	if curve := RepMaxCurve([]TopSet{{WeightKg: 0, Reps: 5}}, DefaultRepMaxReps); curve != nil {
		t.Errorf("curve from zero-weight set = %v, want nil", curve)
	}
}

// TestFailurePoints verifies failure sets surface as annotations and nothing
// else leaks in.
func TestFailurePoints(t *testing.T) {
	rows := []models.LoggedSetRow{
		{SetType: models.SetFailure, Completed: true, Reps: 6, WeightKg: 95},
		{SetType: models.SetFailure, Completed: false, Reps: 8, WeightKg: 90},
		{SetType: models.SetWorking, Completed: true, Reps: 5, WeightKg: 100},
	}
	points := FailurePoints(rows)
	if len(points) != 1 {
		t.Fatalf("got %d failure points, want 1", len(points))
	}
	if points[0].Reps != 6 || points[0].WeightKg != 95 {
		t.Errorf("failure point = %+v, want reps 6 weight 95", points[0])
	}
}

// TestTopSetsFromRows verifies per-session best-set selection limits itself
// to weighted/doubled work and orders newest first.
func TestTopSetsFromRows(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	rows := []models.LoggedSetRow{
		{SessionDate: day1, ExerciseType: models.Weighted, Completed: true, SetType: models.SetWorking, WeightKg: 100, Reps: 5},
		{SessionDate: day1, ExerciseType: models.Weighted, Completed: true, SetType: models.SetWorking, WeightKg: 100, Reps: 8},
		{SessionDate: day2, ExerciseType: models.Weighted, Completed: true, SetType: models.SetWorking, WeightKg: 105, Reps: 5},
		{SessionDate: day2, ExerciseType: models.Bodyweight, Completed: true, SetType: models.SetWorking, WeightKg: 0, Reps: 12},
		{SessionDate: day2, ExerciseType: models.Weighted, Completed: true, SetType: models.SetWarmup, WeightKg: 200, Reps: 10},
	}

	sets := TopSetsFromRows(rows)
	if len(sets) != 2 {
		t.Fatalf("got %d top sets, want 2", len(sets))
	}
	if !sets[0].LoggedAt.Equal(day2) {
		t.Errorf("top sets not newest-first: first is %v", sets[0].LoggedAt)
	}
	// Day 1's best by Epley is the 8-rep set.
	if sets[1].Reps != 8 {
		t.Errorf("day1 best set reps = %d, want 8", sets[1].Reps)
	}
}
