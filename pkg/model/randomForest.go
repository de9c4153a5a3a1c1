package model

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ForestParams configures a random forest of either kind.
type ForestParams struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int // 0 => classifier uses sqrt(p), regressor uses all p
	Bootstrap       bool
	RandomState     int64
}

// RandomForestOption functional config for RandomForest
type RandomForestOption func(*ForestParams)

func WithNEstimators(n int) RandomForestOption { return func(rf *ForestParams) { rf.NEstimators = n } }
func WithBootstrap(b bool) RandomForestOption  { return func(rf *ForestParams) { rf.Bootstrap = b } }
func WithForestSeed(seed int64) RandomForestOption {
	return func(rf *ForestParams) { rf.RandomState = seed }
}
func WithForestMaxFeatures(k int) RandomForestOption {
	return func(rf *ForestParams) { rf.MaxFeatures = k }
}
func WithForestMaxDepth(d int) RandomForestOption {
	return func(rf *ForestParams) { rf.MaxDepth = d }
}

func defaultForestParams(opts []RandomForestOption) ForestParams {
	p := ForestParams{
		NEstimators:     100,
		MinSamplesSplit: 2,
		Bootstrap:       true,
		RandomState:     time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(&p)
	}
	return p
}

// samples draws the bootstrap rows of tree number k.
func (fp ForestParams) samples(n, k int) []int {
	if !fp.Bootstrap {
		return allIndices(n)
	}
	r := rand.New(rand.NewSource(fp.RandomState + int64(k)))
	idx := make([]int, n)
	for j := range idx {
		idx[j] = r.Intn(n)
	}
	return idx
}

func (fp ForestParams) treeOptions(k, maxFeatures int) []Option {
	return []Option{
		WithMaxDepth(fp.MaxDepth),
		WithMinSamplesSplit(fp.MinSamplesSplit),
		WithMaxFeatures(maxFeatures),
		WithRandomState(fp.RandomState + int64(k)), // unique seed for each tree
	}
}

// grow fits NEstimators trees concurrently. fit receives the tree number and
// its bootstrap rows.
func (fp ForestParams) grow(n int, fit func(k int, idx []int) error) error {
	var wg sync.WaitGroup
	errCh := make(chan error, fp.NEstimators)
	for k := 0; k < fp.NEstimators; k++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			if err := fit(k, fp.samples(n, k)); err != nil {
				errCh <- err
			}
		}(k)
	}
	wg.Wait()
	close(errCh)
	if err, ok := <-errCh; ok {
		return err
	}
	return nil
}

// fitted reports whether every tree of a forest was grown.
func fitted[T any](trees []*T) bool {
	if len(trees) == 0 {
		return false
	}
	for _, t := range trees {
		if t == nil {
			return false
		}
	}
	return true
}

// RandomForest for classification
type RandomForest struct {
	ForestParams

	Trees     []*DecisionTreeClassifier
	nFeatures int
}

// NewRandomForest initializes the forest with sensible defaults.
func NewRandomForest(opts ...RandomForestOption) *RandomForest {
	return &RandomForest{ForestParams: defaultForestParams(opts)}
}

// Fit trains every tree on its own bootstrap sample, considering sqrt(p)
// features per split unless MaxFeatures says otherwise.
func (rf *RandomForest) Fit(X [][]float64, y []int) error {
	p, err := checkShape(X, len(y))
	if err != nil {
		return err
	}
	rf.nFeatures = p
	maxFeatures := rf.MaxFeatures
	if maxFeatures == 0 {
		maxFeatures = max(1, int(math.Sqrt(float64(p))))
	}

	rf.Trees = make([]*DecisionTreeClassifier, rf.NEstimators)
	err = rf.grow(len(X), func(k int, idx []int) error {
		tree := NewDecisionTreeClassifier(rf.treeOptions(k, maxFeatures)...)
		if err := tree.fitIndices(X, y, idx); err != nil {
			return err
		}
		rf.Trees[k] = tree
		return nil
	})
	if err != nil {
		rf.Trees = nil
	}
	return err
}

// Predict returns the majority vote of all trees (a hard vote, not averaged
// class probabilities); ties go to the lowest label.
func (rf *RandomForest) Predict(X [][]float64) ([]int, error) {
	if !fitted(rf.Trees) {
		return nil, ErrNotFitted
	}
	if err := checkPredict(X, rf.nFeatures); err != nil {
		return nil, err
	}

	allPreds := make([][]int, len(rf.Trees))
	var g errgroup.Group
	for k, tree := range rf.Trees {
		g.Go(func() error {
			preds, err := tree.Predict(X)
			if err != nil {
				return err
			}
			allPreds[k] = preds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]int, len(X))
	counts := make(map[int]int)
	for i := range X {
		clear(counts)
		for k := range allPreds {
			counts[allPreds[k][i]]++
		}
		best, bestCount := 0, -1
		for cls, cnt := range counts {
			if cnt > bestCount || (cnt == bestCount && cls < best) {
				best, bestCount = cls, cnt
			}
		}
		out[i] = best
	}
	return out, nil
}

// RandomForestRegressor averages bootstrap regression trees.
type RandomForestRegressor struct {
	ForestParams

	Trees     []*DecisionTreeRegressor
	nFeatures int
}

// NewRandomForestRegressor initializes the forest with sensible defaults.
func NewRandomForestRegressor(opts ...RandomForestOption) *RandomForestRegressor {
	return &RandomForestRegressor{ForestParams: defaultForestParams(opts)}
}

// Fit trains every tree on its own bootstrap sample.
func (rf *RandomForestRegressor) Fit(X [][]float64, y []float64) error {
	p, err := checkShape(X, len(y))
	if err != nil {
		return err
	}
	rf.nFeatures = p
	rf.Trees = nil
	for i, v := range y {
		if math.IsNaN(v) {
			return fmt.Errorf("%w: target %d is NaN", ErrShape, i)
		}
	}

	rf.Trees = make([]*DecisionTreeRegressor, rf.NEstimators)
	err = rf.grow(len(X), func(k int, idx []int) error {
		tree := NewDecisionTreeRegressor(rf.treeOptions(k, rf.MaxFeatures)...)
		if err := tree.fitIndices(X, y, idx); err != nil {
			return err
		}
		rf.Trees[k] = tree
		return nil
	})
	if err != nil {
		rf.Trees = nil
	}
	return err
}

// Predict averages the trees' predictions.
func (rf *RandomForestRegressor) Predict(X [][]float64) ([]float64, error) {
	if !fitted(rf.Trees) {
		return nil, ErrNotFitted
	}
	if err := checkPredict(X, rf.nFeatures); err != nil {
		return nil, err
	}
	out := make([]float64, len(X))
	for _, t := range rf.Trees {
		preds, err := t.Predict(X)
		if err != nil {
			return nil, err
		}
		for i, v := range preds {
			out[i] += v
		}
	}
	for i := range out {
		out[i] /= float64(len(rf.Trees))
	}
	return out, nil
}
