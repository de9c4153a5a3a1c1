package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFitted is returned when predicting with a model that has not been fit.
	ErrNotFitted = errors.New("model: not fitted")
	// ErrShape is returned for empty or ragged inputs.
	ErrShape = errors.New("model: bad input shape")
)

// Classifier predicts integer class labels.
type Classifier interface {
	Fit(X [][]float64, y []int) error
	Predict(X [][]float64) ([]int, error)
}

// Regressor predicts continuous targets.
type Regressor interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) ([]float64, error)
}

// checkShape validates an n x p design matrix against n targets and returns p.
func checkShape(X [][]float64, n int) (int, error) {
	if len(X) == 0 {
		return 0, fmt.Errorf("%w: empty X", ErrShape)
	}
	if len(X) != n {
		return 0, fmt.Errorf("%w: %d rows but %d targets", ErrShape, len(X), n)
	}
	p := len(X[0])
	if p == 0 {
		return 0, fmt.Errorf("%w: no features", ErrShape)
	}
	for i := range X {
		if len(X[i]) != p {
			return 0, fmt.Errorf("%w: row %d has %d features, want %d", ErrShape, i, len(X[i]), p)
		}
	}
	return p, nil
}

// checkPredict validates rows passed to Predict against the fitted width.
func checkPredict(X [][]float64, p int) error {
	for i := range X {
		if len(X[i]) != p {
			return fmt.Errorf("%w: row %d has %d features, want %d", ErrShape, i, len(X[i]), p)
		}
	}
	return nil
}
