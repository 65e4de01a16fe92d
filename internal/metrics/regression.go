package metrics

import "math"

// Trend classifies a regression slope.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Point is an (x, y) pair for regression. X is typically a session ordinal,
// not wall-clock time, so RatePerStep means "change per x-step"; callers with
// known calendar spacing convert to per-day/per-week rates themselves.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Regression holds an ordinary-least-squares fit over a series.
type Regression struct {
	Slope       float64   `json:"slope"`
	Intercept   float64   `json:"intercept"`
	Predictions []float64 `json:"predictions"`
	Trend       Trend     `json:"trend"`
	RatePerStep float64   `json:"rate_per_step"`
}

// trendEpsilonRatio scales the flat-slope threshold relative to the data's
// value magnitude: a slope is a trend only when each x-step moves the value
// by more than 0.1% of the series' mean level. This keeps noise on large
// values (weekly tonnage in the thousands) from classifying as a trend while
// still catching genuine drift on small values.
const trendEpsilonRatio = 0.001

// LinearRegression fits y = slope*x + intercept by ordinary least squares.
// Fewer than 2 points, or a degenerate x-range, yields nil (caller treats as
// absent). Non-finite inputs are dropped.
func LinearRegression(points []Point) *Regression {
	clean := points[:0:0]
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			continue
		}
		clean = append(clean, p)
	}
	n := float64(len(clean))
	if len(clean) < 2 {
		return nil
	}

	var sumX, sumY, sumXY, sumXX float64
	for _, p := range clean {
		sumX += p.X
		sumY += p.Y
		sumXY += p.X * p.Y
		sumXX += p.X * p.X
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return nil
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	predictions := make([]float64, len(clean))
	for i, p := range clean {
		predictions[i] = slope*p.X + intercept
	}

	meanY := sumY / n
	eps := trendEpsilonRatio * math.Max(1, math.Abs(meanY))
	trend := TrendStable
	switch {
	case slope > eps:
		trend = TrendIncreasing
	case slope < -eps:
		trend = TrendDecreasing
	}

	return &Regression{
		Slope:       slope,
		Intercept:   intercept,
		Predictions: predictions,
		Trend:       trend,
		RatePerStep: slope,
	}
}
