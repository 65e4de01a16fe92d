package models

// ExerciseType determines how a set's stored weight translates into effective
// load. Bodyweight-involved types fold the lifter's bodyweight into the math.
type ExerciseType string

const (
	// Weighted is plain external load (barbell, dumbbell, machine).
	Weighted ExerciseType = "weighted"
	// Bodyweight is pure bodyweight work; the stored weight field is ignored.
	Bodyweight ExerciseType = "bodyweight"
	// AssistedBodyweight is bodyweight work where the stored weight is the
	// assistance amount subtracted from bodyweight (band pull-ups, assisted dips).
	AssistedBodyweight ExerciseType = "assisted-bodyweight"
	// WeightedBodyweight is bodyweight work with added resistance on top
	// (weighted pull-ups, weighted dips).
	WeightedBodyweight ExerciseType = "weighted-bodyweight"
	// Doubled counts the stored weight as-is but is logged per-hand
	// (e.g. two dumbbells); volume math treats it like Weighted.
	Doubled ExerciseType = "doubled"
)

// ParseExerciseType reports whether s names a known exercise type.
func ParseExerciseType(s string) (ExerciseType, bool) {
	switch ExerciseType(s) {
	case Weighted, Bodyweight, AssistedBodyweight, WeightedBodyweight, Doubled:
		return ExerciseType(s), true
	}
	return "", false
}

// ResolveExerciseType encodes the fallback precedence for loosely-typed
// exercise metadata in one place: the first recognized candidate wins,
// anything else falls back to Weighted.
func ResolveExerciseType(candidates ...string) ExerciseType {
	for _, c := range candidates {
		if t, ok := ParseExerciseType(c); ok {
			return t
		}
	}
	return Weighted
}

// UsesBodyweight reports whether the type needs the lifter's bodyweight to
// compute effective load.
func (t ExerciseType) UsesBodyweight() bool {
	switch t {
	case Bodyweight, AssistedBodyweight, WeightedBodyweight:
		return true
	}
	return false
}
