package metrics

import (
	"math"
	"testing"
)

func points(ys ...float64) []Point {
	out := make([]Point, len(ys))
	for i, y := range ys {
		out[i] = Point{X: float64(i), Y: y}
	}
	return out
}

// TestRegressionFlat verifies a clearly flat series classifies as stable with
// slope ≈ 0.
func TestRegressionFlat(t *testing.T) {
	reg := LinearRegression(points(10, 10, 10, 10))
	if reg == nil {
		t.Fatal("regression is nil")
	}
	if math.Abs(reg.Slope) > 1e-9 {
		t.Errorf("slope = %.6f, want ≈ 0", reg.Slope)
	}
	if reg.Trend != TrendStable {
		t.Errorf("trend = %q, want %q", reg.Trend, TrendStable)
	}
}

// TestRegressionIncreasing verifies a clearly increasing series: slope ≈ 1,
// trend increasing, predictions on the fitted line.
func TestRegressionIncreasing(t *testing.T) {
	reg := LinearRegression(points(1, 2, 3, 4, 5))
	if reg == nil {
		t.Fatal("regression is nil")
	}
	if math.Abs(reg.Slope-1) > 1e-9 {
		t.Errorf("slope = %.6f, want 1", reg.Slope)
	}
	if math.Abs(reg.Intercept-1) > 1e-9 {
		t.Errorf("intercept = %.6f, want 1", reg.Intercept)
	}
	if reg.Trend != TrendIncreasing {
		t.Errorf("trend = %q, want %q", reg.Trend, TrendIncreasing)
	}
	for i, p := range reg.Predictions {
		want := float64(i) + 1
		if math.Abs(p-want) > 1e-9 {
			t.Errorf("prediction %d = %.4f, want %.4f", i, p, want)
		}
	}
	if reg.RatePerStep != reg.Slope {
		t.Errorf("rate_per_step = %.6f, want slope %.6f", reg.RatePerStep, reg.Slope)
	}
}

// TestRegressionDecreasing verifies the decreasing classification.
func TestRegressionDecreasing(t *testing.T) {
	reg := LinearRegression(points(100, 95, 90, 85))
	if reg == nil {
		t.Fatal("regression is nil")
	}
	if reg.Trend != TrendDecreasing {
		t.Errorf("trend = %q, want %q", reg.Trend, TrendDecreasing)
	}
}

// TestRegressionNoiseIsStable verifies the relative epsilon keeps tiny drift
// on large values from classifying as a trend.
func TestRegressionNoiseIsStable(t *testing.T) {
	// Weekly tonnage around 10000 kg with a 1 kg/step drift: noise.
	reg := LinearRegression(points(10000, 10001, 10002, 10003))
	if reg == nil {
		t.Fatal("regression is nil")
	}
	if reg.Trend != TrendStable {
		t.Errorf("trend = %q, want %q (slope %.4f on mean %.0f)", reg.Trend, TrendStable, reg.Slope, 10001.5)
	}
}

// TestRegressionTooFewPoints verifies fewer than 2 points yields no fit.
func TestRegressionTooFewPoints(t *testing.T) {
	if reg := LinearRegression(nil); reg != nil {
		t.Errorf("nil input gave %+v, want nil", reg)
	}
	if reg := LinearRegression(points(42)); reg != nil {
		t.Errorf("single point gave %+v, want nil", reg)
	}
}

// TestRegressionDegenerateX verifies identical x values yield no fit rather
// than a divide-by-zero.
func TestRegressionDegenerateX(t *testing.T) {
	pts := []Point{{X: 1, Y: 5}, {X: 1, Y: 10}}
	if reg := LinearRegression(pts); reg != nil {
		t.Errorf("degenerate x gave %+v, want nil", reg)
	}
}
