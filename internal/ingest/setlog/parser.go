// Package setlog ingests the app's CSV set-log export. The format is
// semicolon-separated with European decimal commas: a quoted session header,
// then per exercise a quoted header line followed by one line per set.
//
//	"Push Day";"2026-03-02 18:10";"58 min"
//	"1. Bench Press · weighted"
//	#;WEIGHT;REPS;TYPE
//	1;102,5;8;working
//	"2. Pull Ups · weighted-bodyweight · lbs"
//	#;WEIGHT;REPS;TYPE
//	1;+25;10;failure
//
// Weights prefixed with "+" are added resistance on a bodyweight movement.
// A blank line ends the session.
package setlog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// sessionHeaderRe matches: "Push Day";"2026-03-02 18:10";"58 min"
	sessionHeaderRe = regexp.MustCompile(`^"(.+)";"(\d{4}-\d{2}-\d{2}\s+\d+:\d+)"(?:;"(.+)")?$`)

	// exerciseHeaderRe matches: "1. Bench Press · weighted[ · lbs]"
	exerciseHeaderRe = regexp.MustCompile(`^"(\d+)\.\s+(.+?)\s+·\s+([a-z-]+)(?:\s+·\s+(kg|lbs))?"$`)

	// setDataRe matches: 1;102,5;8;working (type field optional)
	setDataRe = regexp.MustCompile(`^(\d+);([^;]+);(\d+)(?:;([a-z]+))?$`)

	// columnHeaderRe matches: #;WEIGHT;REPS;TYPE
	columnHeaderRe = regexp.MustCompile(`^#;WEIGHT;REPS(?:;TYPE)?$`)
)

// Session is one workout session parsed from the export.
type Session struct {
	Name      string
	Date      time.Time
	Duration  string
	Exercises []Exercise
}

// Exercise is one exercise block within a session.
type Exercise struct {
	Number int
	Name   string
	Type   string
	Unit   string
	Sets   []Set
}

// Set is one logged set line. Weight is in the exercise's entry unit.
type Set struct {
	Number           int
	Weight           float64
	IsBodyweightPlus bool
	Reps             int
	Type             string
	Skipped          bool
}

// Parse reads a CSV set-log export and returns parsed sessions.
func Parse(r io.Reader) ([]Session, error) {
	scanner := bufio.NewScanner(r)
	var sessions []Session
	var current *Session
	var currentExercise *Exercise

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Blank line = session boundary
		if line == "" {
			if current != nil {
				if currentExercise != nil {
					current.Exercises = append(current.Exercises, *currentExercise)
					currentExercise = nil
				}
				sessions = append(sessions, *current)
				current = nil
			}
			continue
		}

		// Skip column headers
		if columnHeaderRe.MatchString(line) {
			continue
		}

		// Try session header
		if m := sessionHeaderRe.FindStringSubmatch(line); m != nil {
			if current != nil {
				if currentExercise != nil {
					current.Exercises = append(current.Exercises, *currentExercise)
					currentExercise = nil
				}
				sessions = append(sessions, *current)
			}
			date, err := parseSessionDate(m[2])
			if err != nil {
				return nil, fmt.Errorf("parsing session date %q: %w", m[2], err)
			}
			current = &Session{
				Name:     m[1],
				Date:     date,
				Duration: m[3],
			}
			continue
		}

		// Try exercise header
		if m := exerciseHeaderRe.FindStringSubmatch(line); m != nil {
			if current == nil {
				return nil, fmt.Errorf("exercise without session: %q", line)
			}
			if currentExercise != nil {
				current.Exercises = append(current.Exercises, *currentExercise)
			}
			num, _ := strconv.Atoi(m[1])
			unit := m[4]
			if unit == "" {
				unit = "kg"
			}
			currentExercise = &Exercise{
				Number: num,
				Name:   strings.TrimSpace(m[2]),
				Type:   m[3],
				Unit:   unit,
			}
			continue
		}

		// Try set data
		if m := setDataRe.FindStringSubmatch(line); m != nil {
			if currentExercise == nil {
				return nil, fmt.Errorf("set data without exercise: %q", line)
			}
			setNum, _ := strconv.Atoi(m[1])
			weight, isBW := parseWeight(m[2])
			reps, _ := strconv.Atoi(m[3])

			setType := m[4]
			skipped := setType == "skipped"
			if setType == "" || skipped {
				setType = "working"
			}

			currentExercise.Sets = append(currentExercise.Sets, Set{
				Number:           setNum,
				Weight:           weight,
				IsBodyweightPlus: isBW,
				Reps:             reps,
				Type:             setType,
				Skipped:          skipped,
			})
			continue
		}

		// Unknown line, skip silently (could be notes or other metadata)
	}

	// Flush remaining
	if current != nil {
		if currentExercise != nil {
			current.Exercises = append(current.Exercises, *currentExercise)
		}
		sessions = append(sessions, *current)
	}

	return sessions, scanner.Err()
}

// parseSessionDate parses "2026-03-02 18:10" into a time.Time.
func parseSessionDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 3:04"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q", s)
}

// parseWeight handles European decimals and bodyweight-plus notation.
// "+25" -> (25, true), "102,5" -> (102.5, false), "+0" -> (0, true)
func parseWeight(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "+") {
		return parseEuropeanFloat(s[1:]), true
	}
	return parseEuropeanFloat(s), false
}

// parseEuropeanFloat converts a European decimal string to float64.
// "102,5" -> 102.5, "0,5" -> 0.5
func parseEuropeanFloat(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
