package ingest

// Result holds the outcome of an ingest operation.
type Result struct {
	WorkoutsReceived int `json:"workouts_received"`
	WorkoutsInserted int `json:"workouts_inserted"`
	WorkoutsSkipped  int `json:"workouts_skipped"`

	SetsReceived int   `json:"sets_received"`
	SetsInserted int64 `json:"sets_inserted"`
	SetsSkipped  int64 `json:"sets_skipped"`

	SettingsUpdated bool `json:"settings_updated,omitempty"`

	Message string `json:"message,omitempty"`
}

// Merge folds another result's counters into this one.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.WorkoutsReceived += other.WorkoutsReceived
	r.WorkoutsInserted += other.WorkoutsInserted
	r.WorkoutsSkipped += other.WorkoutsSkipped
	r.SetsReceived += other.SetsReceived
	r.SetsInserted += other.SetsInserted
	r.SetsSkipped += other.SetsSkipped
	r.SettingsUpdated = r.SettingsUpdated || other.SettingsUpdated
}
