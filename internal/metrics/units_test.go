package metrics

import (
	"math"
	"testing"

	"github.com/liftline/liftline/internal/models"
)

// TestUnitConversion verifies kg/lbs conversion and that the canonical unit
// round-trips within floating epsilon.
func TestUnitConversion(t *testing.T) {
	tests := []struct {
		lbs    float64
		wantKg float64
	}{
		{0, 0},
		{45, 20.41165665},
		{225, 102.05828325},
	}

	for _, tt := range tests {
		got := LbsToKg(tt.lbs)
		if math.Abs(got-tt.wantKg) > 1e-6 {
			t.Errorf("LbsToKg(%.2f) = %.8f, want %.8f", tt.lbs, got, tt.wantKg)
		}
		back := KgToLbs(got)
		if math.Abs(back-tt.lbs) > 1e-9 {
			t.Errorf("round trip of %.2f lbs = %.12f", tt.lbs, back)
		}
	}
}

// TestNormalizeWeight verifies kg passthrough, lbs conversion, and defensive
// coercion of garbage inputs.
func TestNormalizeWeight(t *testing.T) {
	if got := NormalizeWeight(100, models.UnitKg); got != 100 {
		t.Errorf("kg passthrough = %.2f, want 100", got)
	}
	if got := NormalizeWeight(100, models.UnitLbs); math.Abs(got-45.359237) > 1e-9 {
		t.Errorf("lbs normalize = %.6f, want 45.359237", got)
	}
	for _, bad := range []float64{-5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := NormalizeWeight(bad, models.UnitKg); got != 0 {
			t.Errorf("NormalizeWeight(%v) = %.2f, want 0", bad, got)
		}
	}
}
