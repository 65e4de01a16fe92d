// Package metrics implements the volume, rep-max, rolling-average, trend, and
// aggregation math behind Liftline's charts. Everything here is pure and total:
// no I/O, no shared state, and malformed inputs coerce to zero instead of
// erroring, so one bad data point never takes down a whole series.
package metrics

import (
	"math"

	"github.com/liftline/liftline/internal/models"
)

// KgPerLb is the exact avoirdupois pound.
const KgPerLb = 0.45359237

// LbsToKg converts pounds to kilograms.
func LbsToKg(lbs float64) float64 {
	return sanitize(lbs) * KgPerLb
}

// KgToLbs converts kilograms to pounds.
func KgToLbs(kg float64) float64 {
	return sanitize(kg) / KgPerLb
}

// NormalizeWeight converts a weight in the given entry unit to kilograms,
// the canonical storage unit.
func NormalizeWeight(value float64, unit models.WeightUnit) float64 {
	if unit == models.UnitLbs {
		return LbsToKg(value)
	}
	return sanitize(value)
}

// DisplayWeight converts a kilogram value to the given display unit.
func DisplayWeight(kg float64, unit models.WeightUnit) float64 {
	if unit == models.UnitLbs {
		return KgToLbs(kg)
	}
	return sanitize(kg)
}

// sanitize coerces negative and non-finite values to 0.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// sanitizeReps coerces negative rep counts to 0.
func sanitizeReps(r int) int {
	if r < 0 {
		return 0
	}
	return r
}
