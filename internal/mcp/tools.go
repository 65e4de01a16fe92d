package mcp

import (
	"context"
	"time"

	"github.com/liftline/liftline/internal/metrics"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultTimeRange returns start/end defaulting to the last 90 days, enough
// history for progression analysis.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -90)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// bodyweightFor fetches the user's bodyweight for effective-load math.
// Missing settings degrade to 0, which zeroes bodyweight-exercise volume
// rather than failing the whole query.
func (h *handlers) bodyweightFor(ctx context.Context, uid int) float64 {
	settings, err := h.ds.GetSettings(ctx, uid)
	if err != nil {
		h.log.Warn("mcp settings lookup failed", "error", err)
		return 0
	}
	return settings.BodyweightKg
}

// --- Tool definitions ---

var toolGetExerciseSeries = mcp.NewTool("get_exercise_series",
	mcp.WithDescription("Per-exercise progression series. Groups qualifying sets by session (or ISO week for weekly_volume) and reduces each bucket per the chosen mode. Includes an OLS trendline and optional trailing rolling average."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (partial match, e.g. 'bench press')")),
	mcp.WithString("mode", mcp.Description("Aggregation mode. Defaults to total_volume."), mcp.Enum("best_set", "avg_set", "total_volume", "heaviest_weight", "weekly_volume", "estimated_1rm")),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithNumber("rolling", mcp.Description("Trailing rolling-average window in points. Omit to skip.")),
)

var toolGetRepMaxCurve = mcp.NewTool("get_rep_max_curve",
	mcp.WithDescription("Estimated rep-max curve for an exercise: blended Epley 1RM from recent top sets, inverted per rep count 1..12, plus logged failure sets as ground-truth overlay points."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (partial match)")),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithNumber("reps", mcp.Description("Highest rep count on the curve. Defaults to 12.")),
)

var toolGetVolumeTrend = mcp.NewTool("get_volume_trend",
	mcp.WithDescription("Linear trend over an exercise's series: slope, per-session rate, and direction (increasing/decreasing/stable)."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (partial match)")),
	mcp.WithString("mode", mcp.Description("Series mode the trend is fitted over. Defaults to total_volume."), mcp.Enum("best_set", "avg_set", "total_volume", "heaviest_weight", "weekly_volume", "estimated_1rm")),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetTrainingSummary = mcp.NewTool("get_training_summary",
	mcp.WithDescription("Aggregated training volume per period: working sets, reps, tonnage, distinct exercises, and session counts."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 6 months ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("bucket", mcp.Description("Aggregation period. Defaults to '1 month'."), mcp.Enum("1 week", "1 month")),
)

var toolGetWorkoutSets = mcp.NewTool("get_workout_sets",
	mcp.WithDescription("Raw logged sets with exercise, weight (kg), reps, set type, and superset grouping."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("exercise", mcp.Description("Filter by exercise name (partial match)")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List all logged exercises with their type, total set counts, and last-logged dates."),
)

// --- Tool handlers ---

func (h *handlers) getExerciseSeries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	mode := metrics.ParseMode(req.GetString("mode", ""))
	uid := UserIDFromContext(ctx)

	rows, err := h.ds.QueryLoggedSets(ctx, start, end, uid, exercise)
	if err != nil {
		h.log.Error("mcp get_exercise_series", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	series := metrics.ExerciseSeries(rows, mode, h.bodyweightFor(ctx, uid))
	resp := map[string]any{
		"exercise": exercise,
		"mode":     mode,
		"points":   series,
		"trend":    metrics.SeriesRegression(series),
	}

	if window := req.GetInt("rolling", 0); window > 0 {
		resp["rolling"] = metrics.RollingAverage(metrics.SeriesValues(series), window)
	}

	result, err := mcp.NewToolResultJSON(resp)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRepMaxCurve(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	maxReps := req.GetInt("reps", metrics.DefaultRepMaxReps)
	uid := UserIDFromContext(ctx)

	rows, err := h.ds.QueryLoggedSets(ctx, start, end, uid, exercise)
	if err != nil {
		h.log.Error("mcp get_rep_max_curve", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	topSets := metrics.TopSetsFromRows(rows)
	result, err := mcp.NewToolResultJSON(map[string]any{
		"exercise":       exercise,
		"curve":          metrics.RepMaxCurve(topSets, maxReps),
		"top_sets":       topSets,
		"failure_points": metrics.FailurePoints(rows),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getVolumeTrend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	mode := metrics.ParseMode(req.GetString("mode", ""))
	uid := UserIDFromContext(ctx)

	rows, err := h.ds.QueryLoggedSets(ctx, start, end, uid, exercise)
	if err != nil {
		h.log.Error("mcp get_volume_trend", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	series := metrics.ExerciseSeries(rows, mode, h.bodyweightFor(ctx, uid))
	trend := metrics.SeriesRegression(series)
	if trend == nil {
		return mcp.NewToolResultError("not enough data points for a trend (need at least 2 sessions)"), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"exercise": exercise,
		"mode":     mode,
		"sessions": len(series),
		"trend":    trend,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	endStr := req.GetString("end", "")
	startStr := req.GetString("start", "")

	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return mcp.NewToolResultError("invalid end date: " + err.Error()), nil
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return mcp.NewToolResultError("invalid start date: " + err.Error()), nil
		}
	} else {
		start = end.AddDate(0, -6, 0)
	}

	bucket := req.GetString("bucket", "1 month")
	uid := UserIDFromContext(ctx)

	summary, err := h.ds.GetTrainingSummary(ctx, start, end, bucket, uid)
	if err != nil {
		h.log.Error("mcp get_training_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(summary)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	exerciseFilter := req.GetString("exercise", "")

	sets, err := h.ds.QueryLoggedSets(ctx, start, end, uid, exerciseFilter)
	if err != nil {
		h.log.Error("mcp get_workout_sets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sets)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	exercises, err := h.ds.ListExercises(ctx, uid)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
