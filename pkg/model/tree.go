package model

import (
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// TreeParams are the growth controls shared by classification and
// regression trees.
type TreeParams struct {
	MaxDepth            int     // maximum depth (root depth = 0). 0 => no limit
	MinSamplesSplit     int     // minimum samples to attempt a split
	MinSamplesLeaf      int     // minimum samples required in each leaf
	Criterion           string  // classification only: "gini" (default) or "entropy"
	MaxFeatures         int     // 0 => use all features, >0 => number of features sampled per split
	MinImpurityDecrease float64 // minimal impurity decrease to accept a split
	RandomState         int64   // seed for feature subsampling
}

// Option functional config
type Option func(*TreeParams)

func WithMaxDepth(d int) Option         { return func(t *TreeParams) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) Option  { return func(t *TreeParams) { t.MinSamplesSplit = n } }
func WithMinSamplesLeaf(n int) Option   { return func(t *TreeParams) { t.MinSamplesLeaf = n } }
func WithCriterion(c string) Option     { return func(t *TreeParams) { t.Criterion = c } }
func WithMaxFeatures(k int) Option      { return func(t *TreeParams) { t.MaxFeatures = k } }
func WithRandomState(seed int64) Option { return func(t *TreeParams) { t.RandomState = seed } }
func WithMinImpurityDecrease(v float64) Option {
	return func(t *TreeParams) { t.MinImpurityDecrease = v }
}

func defaultTreeParams(opts []Option) TreeParams {
	p := TreeParams{
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Criterion:       "gini",
		RandomState:     time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(&p)
	}
	return p
}

// dtNode holds a node in the tree.
type dtNode struct {
	isLeaf    bool
	feature   int
	threshold float64 // x <= threshold => left
	nanLeft   bool    // missing values follow the left branch
	left      *dtNode
	right     *dtNode

	// leaf data
	n      int
	probas []float64 // classification: distribution aligned with the tree's classes
	value  float64   // regression: mean target
}

// leaf walks x down to its leaf.
func (node *dtNode) leaf(x []float64) *dtNode {
	for !node.isLeaf {
		val := x[node.feature]
		switch {
		case math.IsNaN(val):
			if node.nanLeft {
				node = node.left
			} else {
				node = node.right
			}
		case val <= node.threshold:
			node = node.left
		default:
			node = node.right
		}
	}
	return node
}

// splitResult is the best split found on one feature.
type splitResult struct {
	gain      float64
	feature   int
	threshold float64
	nanLeft   bool
}

// pair is a feature value and its sample index.
type pair struct {
	v float64
	i int
}

// sortedFeature returns the non-missing values of feature f over idx in
// ascending order, plus the indices whose value is missing.
func sortedFeature(X [][]float64, idx []int, f int) ([]pair, []int) {
	valid := make([]pair, 0, len(idx))
	var nans []int
	for _, ii := range idx {
		v := X[ii][f]
		if math.IsNaN(v) {
			nans = append(nans, ii)
			continue
		}
		valid = append(valid, pair{v, ii})
	}
	sort.Slice(valid, func(a, b int) bool {
		if valid[a].v == valid[b].v {
			return valid[a].i < valid[b].i
		}
		return valid[a].v < valid[b].v
	})
	return valid, nans
}

// grower holds what differs between classification and regression trees.
type grower struct {
	TreeParams
	X   [][]float64
	p   int
	rnd *rand.Rand

	impurity  func(idx []int) float64
	makeLeaf  func(idx []int) *dtNode
	bestSplit func(idx []int, f int, parentImpurity float64) splitResult
}

func (g *grower) build(idx []int, depth int) *dtNode {
	parent := g.impurity(idx)
	if parent <= 0 || len(idx) < g.MinSamplesSplit || len(idx) < 2*g.MinSamplesLeaf ||
		(g.MaxDepth > 0 && depth >= g.MaxDepth) {
		return g.makeLeaf(idx)
	}

	// determine features to try
	featIndices := make([]int, g.p)
	for j := range featIndices {
		featIndices[j] = j
	}
	if g.MaxFeatures > 0 && g.MaxFeatures < g.p {
		for i := 0; i < g.MaxFeatures; i++ {
			j := i + g.rnd.Intn(g.p-i)
			featIndices[i], featIndices[j] = featIndices[j], featIndices[i]
		}
		featIndices = featIndices[:g.MaxFeatures]
	}

	// Parallel search for the best split for each feature. Results are
	// slotted by position so that ties resolve the same way every run.
	results := make([]splitResult, len(featIndices))
	var wg sync.WaitGroup
	for k, f := range featIndices {
		wg.Add(1)
		go func(k, f int) {
			defer wg.Done()
			results[k] = g.bestSplit(idx, f, parent)
		}(k, f)
	}
	wg.Wait()

	best := splitResult{feature: -1}
	for _, r := range results {
		if r.feature >= 0 && r.gain > best.gain {
			best = r
		}
	}
	if best.feature == -1 || best.gain <= g.MinImpurityDecrease {
		return g.makeLeaf(idx)
	}

	leftIdx := make([]int, 0, len(idx))
	rightIdx := make([]int, 0, len(idx))
	for _, ii := range idx {
		v := g.X[ii][best.feature]
		if (math.IsNaN(v) && best.nanLeft) || v <= best.threshold {
			leftIdx = append(leftIdx, ii)
		} else {
			rightIdx = append(rightIdx, ii)
		}
	}

	return &dtNode{
		n:         len(idx),
		feature:   best.feature,
		threshold: best.threshold,
		nanLeft:   best.nanLeft,
		left:      g.build(leftIdx, depth+1),
		right:     g.build(rightIdx, depth+1),
	}
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
