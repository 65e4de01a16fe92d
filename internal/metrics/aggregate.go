package metrics

import (
	"sort"
	"time"

	"github.com/liftline/liftline/internal/models"
)

// Mode selects the per-bucket reduction for an exercise series.
type Mode string

const (
	ModeBestSet        Mode = "best_set"
	ModeAvgSet         Mode = "avg_set"
	ModeTotalVolume    Mode = "total_volume"
	ModeHeaviestWeight Mode = "heaviest_weight"
	ModeWeeklyVolume   Mode = "weekly_volume"
	ModeEstimated1RM   Mode = "estimated_1rm"
)

// ParseMode maps a raw mode string to a Mode, defaulting to total_volume.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeBestSet, ModeAvgSet, ModeTotalVolume, ModeHeaviestWeight,
		ModeWeeklyVolume, ModeEstimated1RM:
		return Mode(s)
	}
	return ModeTotalVolume
}

// SeriesPoint is one chart-ready data point. WeightKg and Reps carry the
// winning set's values for tooltip display where the mode has a single
// winning set; Sets is the qualifying set count in the bucket.
type SeriesPoint struct {
	Date     time.Time `json:"date"`
	Value    float64   `json:"value"`
	WeightKg float64   `json:"weight_kg,omitempty"`
	Reps     int       `json:"reps,omitempty"`
	Sets     int       `json:"sets"`
}

// ExerciseSeries reduces logged sets into a chronological chart series for
// the given mode. Sessions group by calendar date; weekly_volume groups by
// Monday-anchored ISO week regardless of any display week-start preference.
// Warmup and not-completed sets are excluded before any per-set math runs.
// Recomputation over the same rows is idempotent; input order does not affect
// the output.
func ExerciseSeries(rows []models.LoggedSetRow, mode Mode, bodyweightKg float64) []SeriesPoint {
	buckets := make(map[time.Time][]models.LoggedSetRow)
	for _, r := range rows {
		if !r.Set().Qualifies() {
			continue
		}
		key := bucketDate(r.SessionDate, mode)
		buckets[key] = append(buckets[key], r)
	}

	points := make([]SeriesPoint, 0, len(buckets))
	for date, group := range buckets {
		p := reduceBucket(group, mode, bodyweightKg)
		p.Date = date
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// bucketDate truncates a session timestamp to its grouping key.
func bucketDate(t time.Time, mode Mode) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if mode != ModeWeeklyVolume {
		return day
	}
	// Monday-anchored ISO week start.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func reduceBucket(group []models.LoggedSetRow, mode Mode, bodyweightKg float64) SeriesPoint {
	p := SeriesPoint{Sets: len(group)}

	switch mode {
	case ModeBestSet:
		// Max volume; ties go to the heavier set so output is reproducible
		// regardless of input ordering.
		for _, r := range group {
			vol := SetVolume(r.Set(), r.ExerciseType, bodyweightKg)
			ew := EffectiveWeight(r.Set(), r.ExerciseType, bodyweightKg)
			if vol > p.Value || (vol == p.Value && ew > p.WeightKg) {
				p.Value = vol
				p.WeightKg = ew
				p.Reps = r.Reps
			}
		}

	case ModeAvgSet:
		var sumW, sumR float64
		for _, r := range group {
			sumW += EffectiveWeight(r.Set(), r.ExerciseType, bodyweightKg)
			sumR += float64(sanitizeReps(r.Reps))
		}
		n := float64(len(group))
		p.Value = (sumW / n) * (sumR / n)
		p.WeightKg = sumW / n

	case ModeTotalVolume, ModeWeeklyVolume:
		for _, r := range group {
			p.Value += SetVolume(r.Set(), r.ExerciseType, bodyweightKg)
		}

	case ModeHeaviestWeight:
		// Max effective weight, not volume; equal weights go to more reps.
		for _, r := range group {
			ew := EffectiveWeight(r.Set(), r.ExerciseType, bodyweightKg)
			if ew > p.Value || (ew == p.Value && r.Reps > p.Reps) {
				p.Value = ew
				p.WeightKg = ew
				p.Reps = r.Reps
			}
		}

	case ModeEstimated1RM:
		for _, r := range group {
			est := Epley1RM(EffectiveWeight(r.Set(), r.ExerciseType, bodyweightKg), r.Reps)
			ew := EffectiveWeight(r.Set(), r.ExerciseType, bodyweightKg)
			if est > p.Value || (est == p.Value && ew > p.WeightKg) {
				p.Value = est
				p.WeightKg = ew
				p.Reps = r.Reps
			}
		}
	}

	return p
}

// SeriesValues projects a series to plain time points for rolling-average and
// regression input.
func SeriesValues(points []SeriesPoint) []TimePoint {
	out := make([]TimePoint, len(points))
	for i, p := range points {
		out[i] = TimePoint{Date: p.Date, Value: p.Value}
	}
	return out
}

// SeriesRegression fits a trendline over a series using the point's ordinal
// position as x, so the rate reads as change per session (or per week for
// weekly series).
func SeriesRegression(points []SeriesPoint) *Regression {
	pts := make([]Point, len(points))
	for i, p := range points {
		pts[i] = Point{X: float64(i), Y: p.Value}
	}
	return LinearRegression(pts)
}
