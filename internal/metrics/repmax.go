package metrics

import (
	"sort"
	"time"

	"github.com/liftline/liftline/internal/models"
)

// DefaultRepMaxReps is the rep range a rep-max curve covers.
const DefaultRepMaxReps = 12

// repMaxBlendSets caps how many recent best sets feed the blended estimate.
const repMaxBlendSets = 5

// repMaxDecay is the geometric recency weight applied per step back in time:
// the most recent set gets weight 1, the next 0.75, then 0.5625, and so on.
const repMaxDecay = 0.75

// TopSet is one near-maximal set feeding the rep-max estimate.
type TopSet struct {
	WeightKg float64   `json:"weight_kg"`
	Reps     int       `json:"reps"`
	LoggedAt time.Time `json:"logged_at"`
}

// RepMaxEstimate is the estimated max weight liftable for a given rep count.
type RepMaxEstimate struct {
	Reps     int     `json:"reps"`
	WeightKg float64 `json:"weight_kg"`
}

// Epley1RM estimates a one-rep max from a single set using the Epley formula.
// A one-rep set is its own 1RM; zero or negative reps estimate nothing.
func Epley1RM(weightKg float64, reps int) float64 {
	w := sanitize(weightKg)
	if reps <= 0 {
		return 0
	}
	if reps == 1 {
		return w
	}
	return w * (1 + float64(reps)/30)
}

// RepMaxCurve derives an estimated rep-max curve for reps 1..maxReps from a
// set of recent near-maximal sets. Each set's Epley 1RM is blended with
// geometric recency weighting (newest first), then the blended 1RM is
// inverted per target rep count. With a single input set the blend reduces to
// the pure Epley estimate, so the curve passes exactly through that set.
// The result is clamped to be monotonically non-increasing.
func RepMaxCurve(topSets []TopSet, maxReps int) []RepMaxEstimate {
	if maxReps <= 0 {
		maxReps = DefaultRepMaxReps
	}
	oneRM := BlendedOneRepMax(topSets)
	if oneRM <= 0 {
		return nil
	}

	curve := make([]RepMaxEstimate, 0, maxReps)
	prev := oneRM
	for r := 1; r <= maxReps; r++ {
		est := oneRM
		if r > 1 {
			est = oneRM / (1 + float64(r)/30)
		}
		// Guard the monotonic invariant even if the formula ever changes.
		if est > prev {
			est = prev
		}
		prev = est
		curve = append(curve, RepMaxEstimate{Reps: r, WeightKg: est})
	}
	return curve
}

// BlendedOneRepMax combines up to five of the most recent top sets into a
// single 1RM estimate, weighting newer sets more heavily so the curve tracks
// current strength rather than a lifetime-best outlier.
func BlendedOneRepMax(topSets []TopSet) float64 {
	sets := make([]TopSet, 0, len(topSets))
	for _, s := range topSets {
		if sanitize(s.WeightKg) > 0 && s.Reps > 0 {
			sets = append(sets, s)
		}
	}
	if len(sets) == 0 {
		return 0
	}

	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].LoggedAt.After(sets[j].LoggedAt)
	})
	if len(sets) > repMaxBlendSets {
		sets = sets[:repMaxBlendSets]
	}

	var weighted, totalWeight float64
	w := 1.0
	for _, s := range sets {
		weighted += w * Epley1RM(s.WeightKg, s.Reps)
		totalWeight += w
		w *= repMaxDecay
	}
	return weighted / totalWeight
}

// FailurePoints extracts completed failure-tagged sets as ground-truth
// annotations for the rep-max chart. They never feed the estimate.
func FailurePoints(rows []models.LoggedSetRow) []RepMaxEstimate {
	var points []RepMaxEstimate
	for _, r := range rows {
		if r.SetType != models.SetFailure || !r.Completed {
			continue
		}
		points = append(points, RepMaxEstimate{Reps: sanitizeReps(r.Reps), WeightKg: sanitize(r.WeightKg)})
	}
	return points
}

// TopSetsFromRows picks the best qualifying set per session (by Epley
// estimate, effective weight as tie-break) for weighted and doubled
// exercises. Bodyweight-only work has no meaningful 1RM.
func TopSetsFromRows(rows []models.LoggedSetRow) []TopSet {
	type best struct {
		set TopSet
		est float64
	}
	bestBySession := make(map[string]best)

	for _, r := range rows {
		if r.ExerciseType != models.Weighted && r.ExerciseType != models.Doubled {
			continue
		}
		if !r.Set().Qualifies() {
			continue
		}
		est := Epley1RM(r.WeightKg, r.Reps)
		if est <= 0 {
			continue
		}
		key := r.SessionDate.Format("2006-01-02")
		cur, ok := bestBySession[key]
		if !ok || est > cur.est || (est == cur.est && r.WeightKg > cur.set.WeightKg) {
			bestBySession[key] = best{
				set: TopSet{WeightKg: r.WeightKg, Reps: r.Reps, LoggedAt: r.SessionDate},
				est: est,
			}
		}
	}

	sets := make([]TopSet, 0, len(bestBySession))
	for _, b := range bestBySession {
		sets = append(sets, b.set)
	}
	sort.Slice(sets, func(i, j int) bool {
		return sets[i].LoggedAt.After(sets[j].LoggedAt)
	})
	return sets
}
