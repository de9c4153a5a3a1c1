package model

import (
	"runtime"
	"sort"
	"sync"
)

// KNN is a k-nearest-neighbours classifier voting by majority. Ties between
// classes go to the lowest label; ties in distance keep the earlier training row.
type KNN struct {
	K int
	X [][]float64
	y []int
}

// NewKNN creates and returns a new KNN model.
func NewKNN(k int) *KNN {
	return &KNN{K: k}
}

// Fit trains the model by simply storing the training data and labels.
func (m *KNN) Fit(X [][]float64, y []int) error {
	if _, err := checkShape(X, len(y)); err != nil {
		return err
	}
	m.X = X
	m.y = y
	return nil
}

// Predict finds the K-nearest neighbors for each row, spreading rows over
// one goroutine per CPU.
func (m *KNN) Predict(X [][]float64) ([]int, error) {
	if len(m.X) == 0 {
		return nil, ErrNotFitted
	}
	if err := checkPredict(X, len(m.X[0])); err != nil {
		return nil, err
	}
	if len(X) == 0 {
		return nil, nil
	}

	out := make([]int, len(X))
	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (len(X) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := min(start+rowsPerWorker, len(X))
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				out[i] = m.predictSingle(X[i])
			}
		}(start, end)
	}

	wg.Wait()
	return out, nil
}

// predictSingle finds the K-nearest neighbors for a single test point.
func (m *KNN) predictSingle(xi []float64) int {
	type neighbor struct {
		d float64
		v int
	}

	k := min(m.K, len(m.X))
	// small sorted slice of the K-nearest neighbors found so far
	nbrs := make([]neighbor, 0, k+1)
	for j, xj := range m.X {
		d := euclidSquared(xi, xj)
		if len(nbrs) < k {
			nbrs = append(nbrs, neighbor{d: d, v: m.y[j]})
			sort.SliceStable(nbrs, func(a, b int) bool { return nbrs[a].d < nbrs[b].d })
		} else if d < nbrs[len(nbrs)-1].d {
			nbrs[len(nbrs)-1] = neighbor{d: d, v: m.y[j]}
			sort.SliceStable(nbrs, func(a, b int) bool { return nbrs[a].d < nbrs[b].d })
		}
	}

	votes := make(map[int]int, k)
	for _, nb := range nbrs {
		votes[nb.v]++
	}
	best, bestCount := 0, -1
	for cls, cnt := range votes {
		if cnt > bestCount || (cnt == bestCount && cls < best) {
			best, bestCount = cls, cnt
		}
	}
	return best
}

// euclidSquared computes the squared Euclidean distance between two vectors.
func euclidSquared(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
