package setlog

import (
	"strings"
	"testing"
)

const sampleCSV = `
"Push Day · Week 4";"2026-03-02 18:10";"58 min"
"1. Bench Press · weighted"
#;WEIGHT;REPS;TYPE
1;60;8;warmup
2;102,5;8;working
3;102,5;7;working
4;102,5;6;failure
"2. Pull Ups · weighted-bodyweight"
#;WEIGHT;REPS;TYPE
1;+0;10;warmup
2;+25;8;working
3;+25;7;working
"3. Dumbbell Press · doubled · lbs"
#;WEIGHT;REPS;TYPE
1;65;10;working
2;65;10;working
3;65;8;skipped

"Legs";"2026-03-04 7:05"
"1. Hack Squat · weighted"
#;WEIGHT;REPS
1;115;10
2;115;10
`

// TestParseCompleteSessions verifies parsing a multi-session export with
// exercises and sets. This is the primary happy-path test for the parser.
func TestParseCompleteSessions(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}

	s1 := sessions[0]
	if s1.Name != "Push Day · Week 4" {
		t.Errorf("s1.Name = %q", s1.Name)
	}
	if s1.Duration != "58 min" {
		t.Errorf("s1.Duration = %q", s1.Duration)
	}
	if got := s1.Date.Format("2006-01-02 15:04"); got != "2026-03-02 18:10" {
		t.Errorf("s1.Date = %q", got)
	}
	if len(s1.Exercises) != 3 {
		t.Fatalf("s1 exercises = %d, want 3", len(s1.Exercises))
	}

	// Exercise 1: warmup, two working sets, one failure set
	ex1 := s1.Exercises[0]
	if ex1.Name != "Bench Press" {
		t.Errorf("ex1.Name = %q, want Bench Press", ex1.Name)
	}
	if ex1.Type != "weighted" {
		t.Errorf("ex1.Type = %q, want weighted", ex1.Type)
	}
	if ex1.Unit != "kg" {
		t.Errorf("ex1.Unit = %q, want kg default", ex1.Unit)
	}
	if len(ex1.Sets) != 4 {
		t.Fatalf("ex1 sets = %d, want 4", len(ex1.Sets))
	}
	if ex1.Sets[0].Type != "warmup" {
		t.Errorf("set 1 type = %q, want warmup", ex1.Sets[0].Type)
	}
	if ex1.Sets[1].Weight != 102.5 {
		t.Errorf("set 2 weight = %f, want 102.5", ex1.Sets[1].Weight)
	}
	if ex1.Sets[3].Type != "failure" {
		t.Errorf("set 4 type = %q, want failure", ex1.Sets[3].Type)
	}

	// Exercise 2: bodyweight-plus notation
	ex2 := s1.Exercises[1]
	if ex2.Type != "weighted-bodyweight" {
		t.Errorf("ex2.Type = %q", ex2.Type)
	}
	if !ex2.Sets[1].IsBodyweightPlus || ex2.Sets[1].Weight != 25 {
		t.Errorf("ex2 set 2 = %+v, want bodyweight-plus 25", ex2.Sets[1])
	}
	if !ex2.Sets[0].IsBodyweightPlus || ex2.Sets[0].Weight != 0 {
		t.Errorf("ex2 set 1 = %+v, want bodyweight-plus 0", ex2.Sets[0])
	}

	// Exercise 3: lbs unit and a skipped set
	ex3 := s1.Exercises[2]
	if ex3.Unit != "lbs" {
		t.Errorf("ex3.Unit = %q, want lbs", ex3.Unit)
	}
	last := ex3.Sets[2]
	if !last.Skipped {
		t.Error("ex3 set 3 should be skipped")
	}
	if last.Type != "working" {
		t.Errorf("skipped set type = %q, want working", last.Type)
	}

	// Second session: no duration, no TYPE column
	s2 := sessions[1]
	if s2.Name != "Legs" {
		t.Errorf("s2.Name = %q", s2.Name)
	}
	if s2.Duration != "" {
		t.Errorf("s2.Duration = %q, want empty", s2.Duration)
	}
	if len(s2.Exercises) != 1 || len(s2.Exercises[0].Sets) != 2 {
		t.Fatalf("s2 shape = %+v", s2.Exercises)
	}
	if s2.Exercises[0].Sets[0].Type != "working" {
		t.Errorf("untyped set type = %q, want working", s2.Exercises[0].Sets[0].Type)
	}
}

// TestEuropeanDecimal verifies comma decimal separators parse correctly.
func TestEuropeanDecimal(t *testing.T) {
	if got := parseEuropeanFloat("102,5"); got != 102.5 {
		t.Errorf("parseEuropeanFloat(102,5) = %f, want 102.5", got)
	}
	if got := parseEuropeanFloat("0,25"); got != 0.25 {
		t.Errorf("parseEuropeanFloat(0,25) = %f, want 0.25", got)
	}
}

// TestBodyweightPlus verifies the +N notation for bodyweight exercises.
func TestBodyweightPlus(t *testing.T) {
	weight, isBW := parseWeight("+25")
	if !isBW {
		t.Error("expected bodyweight-plus")
	}
	if weight != 25 {
		t.Errorf("weight = %f, want 25", weight)
	}

	weight, isBW = parseWeight("+0")
	if !isBW || weight != 0 {
		t.Errorf("parseWeight(+0) = (%f, %v), want (0, true)", weight, isBW)
	}

	weight, isBW = parseWeight("102,5")
	if isBW {
		t.Error("plain weight should not be bodyweight-plus")
	}
	if weight != 102.5 {
		t.Errorf("weight = %f, want 102.5", weight)
	}
}

// TestEmptyInput verifies that empty input returns no sessions without error.
func TestEmptyInput(t *testing.T) {
	sessions, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("sessions = %d, want 0", len(sessions))
	}
}

// TestSetWithoutExercise verifies that orphan set lines fail loudly.
func TestSetWithoutExercise(t *testing.T) {
	input := `"Push";"2026-03-02 18:10"
1;100;8;working
`
	if _, err := Parse(strings.NewReader(input)); err == nil {
		t.Error("expected error for set data without exercise")
	}
}

// TestStableWorkoutID verifies that the same session always maps to the same
// workout row across re-imports.
func TestStableWorkoutID(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	a := sessionWorkoutID(sessions[0])
	b := sessionWorkoutID(sessions[0])
	if a != b {
		t.Errorf("workout ID not stable: %s != %s", a, b)
	}
	if a == sessionWorkoutID(sessions[1]) {
		t.Error("different sessions should get different workout IDs")
	}
}
