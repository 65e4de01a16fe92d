package models

import "time"

// SetType tags how a set was performed. Warmup sets are excluded from all
// volume/PR aggregation; failure sets count toward volume and are additionally
// surfaced as ground-truth points on rep-max charts.
type SetType string

const (
	SetWorking SetType = "working"
	SetWarmup  SetType = "warmup"
	SetFailure SetType = "failure"
)

// ParseSetType maps a raw tag to a SetType, defaulting to working.
func ParseSetType(s string) SetType {
	switch SetType(s) {
	case SetWarmup, SetFailure:
		return SetType(s)
	}
	return SetWorking
}

// WeightUnit is the display unit a set was entered in. Storage is always
// kilogram-normalized; the unit is informational only.
type WeightUnit string

const (
	UnitKg  WeightUnit = "kg"
	UnitLbs WeightUnit = "lbs"
)

// LoggedSet is one completed (or planned) set within an exercise.
type LoggedSet struct {
	SetNumber int        `json:"set_number"`
	Reps      int        `json:"reps"`
	WeightKg  float64    `json:"weight_kg"`
	Unit      WeightUnit `json:"unit"`
	Completed bool       `json:"completed"`
	Type      SetType    `json:"set_type"`
	LoggedAt  time.Time  `json:"logged_at"`
}

// Qualifies reports whether the set counts toward volume and PR aggregation.
// Every aggregation entry point filters on this before doing any math.
func (s LoggedSet) Qualifies() bool {
	return s.Completed && s.Type != SetWarmup
}

// MillisToTime converts an epoch-milliseconds timestamp (the mobile app's
// native format) to a time.Time in UTC.
func MillisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
