package stats

import (
	"math"
	"testing"
)

func TestNanMean_SkipsMissing(t *testing.T) {
	got := NanMean([]float64{10, math.NaN(), 20})
	if got != 15 {
		t.Fatalf("expected 15, got %v", got)
	}
	if !math.IsNaN(NanMean([]float64{math.NaN()})) {
		t.Fatalf("expected NaN for an all-missing slice")
	}
}

func TestNanSum(t *testing.T) {
	if got := NanSum([]float64{1, math.NaN(), 2.5}); got != 3.5 {
		t.Fatalf("expected 3.5, got %v", got)
	}
}

func TestShannonTerm(t *testing.T) {
	if ShannonTerm(0) != 0 {
		t.Fatalf("0*ln(0) must be 0")
	}
	got := -(ShannonTerm(0.5) + ShannonTerm(0.2))
	if math.Abs(got-0.668461) > 1e-6 {
		t.Fatalf("expected 0.668461, got %v", got)
	}
}

func TestCorrelation_PerfectLine(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{3, 5, 7, 9}
	if got := Correlation(x, y); math.Abs(got-1) > 1e-12 {
		t.Fatalf("expected 1, got %v", got)
	}
}

func TestMinMax_IgnoresNaN(t *testing.T) {
	lo, hi := MinMax([]float64{math.NaN(), 4, -2, 9})
	if lo != -2 || hi != 9 {
		t.Fatalf("expected (-2, 9), got (%v, %v)", lo, hi)
	}
}

func TestDropNaNPairs(t *testing.T) {
	x, y := DropNaNPairs([]float64{1, math.NaN(), 3}, []float64{4, 5, math.NaN()})
	if len(x) != 1 || x[0] != 1 || y[0] != 4 {
		t.Fatalf("unexpected pairs: %v %v", x, y)
	}
}
