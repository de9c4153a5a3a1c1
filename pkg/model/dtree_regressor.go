package model

import (
	"fmt"
	"math"
	"math/rand"
)

// DecisionTreeRegressor is a CART regression tree splitting on mean squared
// error. Leaves predict the mean target of their samples.
type DecisionTreeRegressor struct {
	TreeParams

	root      *dtNode
	nFeatures int
}

// NewDecisionTreeRegressor returns a regressor with sensible defaults.
func NewDecisionTreeRegressor(opts ...Option) *DecisionTreeRegressor {
	return &DecisionTreeRegressor{TreeParams: defaultTreeParams(opts)}
}

// Fit trains the tree. Targets must not be NaN.
func (t *DecisionTreeRegressor) Fit(X [][]float64, y []float64) error {
	if _, err := checkShape(X, len(y)); err != nil {
		return err
	}
	for i, v := range y {
		if math.IsNaN(v) {
			return fmt.Errorf("%w: target %d is NaN", ErrShape, i)
		}
	}
	return t.fitIndices(X, y, allIndices(len(X)))
}

func (t *DecisionTreeRegressor) fitIndices(X [][]float64, y []float64, idx []int) error {
	t.nFeatures = len(X[0])
	g := &grower{
		TreeParams: t.TreeParams,
		X:          X,
		p:          t.nFeatures,
		rnd:        rand.New(rand.NewSource(t.RandomState)),
		impurity: func(idx []int) float64 {
			s, ss := sums(y, idx)
			return sse(s, ss, float64(len(idx))) / float64(len(idx))
		},
		makeLeaf: func(idx []int) *dtNode {
			s, _ := sums(y, idx)
			return &dtNode{isLeaf: true, n: len(idx), value: s / float64(len(idx))}
		},
		bestSplit: func(idx []int, f int, parent float64) splitResult {
			return varianceSplit(X, y, idx, f, parent, t.MinSamplesLeaf)
		},
	}
	t.root = g.build(idx, 0)
	return nil
}

// varianceSplit scans the thresholds of feature f keeping running sums of
// the targets on the left side.
func varianceSplit(X [][]float64, y []float64, idx []int, f int, parent float64, minLeaf int) splitResult {
	result := splitResult{feature: -1}
	valid, nans := sortedFeature(X, idx, f)
	if len(valid) < 2 {
		return result
	}

	nanSum, nanSq := sums(y, nans)
	var totSum, totSq float64
	for _, pv := range valid {
		totSum += y[pv.i]
		totSq += y[pv.i] * y[pv.i]
	}

	n := float64(len(idx))
	var lSum, lSq float64
	try := func(nanLeft bool, s int, thr float64) {
		nL, nR := float64(s), float64(len(valid)-s)
		ls, lq := lSum, lSq
		rs, rq := totSum-lSum, totSq-lSq
		if nanLeft {
			nL += float64(len(nans))
			ls, lq = ls+nanSum, lq+nanSq
		} else {
			nR += float64(len(nans))
			rs, rq = rs+nanSum, rq+nanSq
		}
		if int(nL) < minLeaf || int(nR) < minLeaf {
			return
		}
		weighted := (sse(ls, lq, nL) + sse(rs, rq, nR)) / n
		if gain := parent - weighted; gain > result.gain {
			result = splitResult{gain: gain, feature: f, threshold: thr, nanLeft: nanLeft}
		}
	}

	for s := 1; s < len(valid); s++ {
		v := y[valid[s-1].i]
		lSum += v
		lSq += v * v
		if valid[s].v == valid[s-1].v {
			continue
		}
		thr := (valid[s-1].v + valid[s].v) / 2.0
		try(false, s, thr)
		if len(nans) > 0 {
			try(true, s, thr)
		}
	}
	return result
}

func sums(y []float64, idx []int) (float64, float64) {
	var s, ss float64
	for _, ii := range idx {
		s += y[ii]
		ss += y[ii] * y[ii]
	}
	return s, ss
}

// sse is the sum of squared deviations from the mean given the running sums.
func sse(sum, sumSq, n float64) float64 {
	if n == 0 {
		return 0
	}
	v := sumSq - sum*sum/n
	// cancellation noise on constant targets
	if v <= 1e-12*sumSq {
		return 0
	}
	return v
}

// Predict returns the leaf mean for each row.
func (t *DecisionTreeRegressor) Predict(X [][]float64) ([]float64, error) {
	if t.root == nil {
		return nil, ErrNotFitted
	}
	if err := checkPredict(X, t.nFeatures); err != nil {
		return nil, err
	}
	out := make([]float64, len(X))
	for i := range X {
		out[i] = t.root.leaf(X[i]).value
	}
	return out, nil
}

// Depth is the length of the longest root-to-leaf path.
func (t *DecisionTreeRegressor) Depth() int { return depth(t.root) }
