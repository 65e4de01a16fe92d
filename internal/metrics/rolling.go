package metrics

import "time"

// TimePoint is one (date, value) sample in a chronological series.
type TimePoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// RollingAverage computes a trailing moving average over a chronological
// series. The first window-1 points average however many points are available
// (no padding), output length equals input length, and dates pass through
// unchanged. The series must be pre-sorted ascending; window must be >= 1 or
// the result is nil.
func RollingAverage(series []TimePoint, window int) []TimePoint {
	if window < 1 || series == nil {
		return nil
	}

	out := make([]TimePoint, len(series))
	var sum float64
	for i, p := range series {
		sum += p.Value
		if i >= window {
			sum -= series[i-window].Value
		}
		n := i + 1
		if n > window {
			n = window
		}
		out[i] = TimePoint{Date: p.Date, Value: sum / float64(n)}
	}
	return out
}
