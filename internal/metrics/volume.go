package metrics

import "github.com/liftline/liftline/internal/models"

// EffectiveWeight returns the weight that actually enters volume and 1RM math
// for a set, after the exercise-type bodyweight adjustment. A bodyweight of 0
// means "unknown" and contributes nothing.
func EffectiveWeight(set models.LoggedSet, exType models.ExerciseType, bodyweightKg float64) float64 {
	w := sanitize(set.WeightKg)
	bw := sanitize(bodyweightKg)

	switch exType {
	case models.Bodyweight:
		// Stored weight is ignored even if present.
		return bw
	case models.WeightedBodyweight:
		return bw + w
	case models.AssistedBodyweight:
		// Assistance reduces load; never below zero.
		if bw < w {
			return 0
		}
		return bw - w
	case models.Weighted, models.Doubled:
		return w
	}
	// Unrecognized type behaves as weighted.
	return w
}

// SetVolume returns the volume contribution of a single set in kg·reps.
// Filtering of warmup and not-completed sets is the aggregation layer's
// responsibility; this is the bare per-set formula.
func SetVolume(set models.LoggedSet, exType models.ExerciseType, bodyweightKg float64) float64 {
	return EffectiveWeight(set, exType, bodyweightKg) * float64(sanitizeReps(set.Reps))
}

// ExerciseVolume sums SetVolume over all qualifying sets (completed, not
// warmup). An empty slice yields 0.
func ExerciseVolume(sets []models.LoggedSet, exType models.ExerciseType, bodyweightKg float64) float64 {
	var total float64
	for _, s := range sets {
		if !s.Qualifies() {
			continue
		}
		total += SetVolume(s, exType, bodyweightKg)
	}
	return total
}
