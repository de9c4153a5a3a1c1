// Package stats holds the NaN-aware numeric helpers the aggregations share.
package stats

import "math"

// NanMean averages the non-NaN values of x. It returns NaN when x holds no
// usable value, the way a group-by mean reports an all-missing group.
func NanMean(x []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// NanSum adds the non-NaN values of x.
func NanSum(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		if !math.IsNaN(v) {
			s += v
		}
	}
	return s
}

// MinMax returns the minimum and maximum values in the slice, ignoring NaN.
func MinMax(x []float64) (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if math.IsInf(min, 1) {
		return 0, 0
	}
	return min, max
}

// Correlation computes the Pearson correlation coefficient between two slices in a single pass.
func Correlation(x, y []float64) float64 {
	n := float64(len(x))
	if n == 0 || len(y) != len(x) {
		return 0
	}
	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for i := range x {
		xi, yi := x[i], y[i]
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
		sumY2 += yi * yi
	}
	numerator := n*sumXY - sumX*sumY
	denominator := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// ShannonTerm returns p*ln(p), with 0*ln(0) taken as 0.
func ShannonTerm(p float64) float64 {
	if p == 0 {
		return 0
	}
	return p * math.Log(p)
}

// DropNaNPairs keeps the positions where both x and y are present.
func DropNaNPairs(x, y []float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}
