package model

import (
	"math"
	"math/rand"
	"sort"
)

// DecisionTreeClassifier is a CART-style classifier.
type DecisionTreeClassifier struct {
	TreeParams

	root      *dtNode
	classes   []int // sorted class labels (order used by probas)
	nFeatures int
}

// NewDecisionTreeClassifier returns a classifier with sensible defaults.
func NewDecisionTreeClassifier(opts ...Option) *DecisionTreeClassifier {
	return &DecisionTreeClassifier{TreeParams: defaultTreeParams(opts)}
}

// Classes returns the labels seen during Fit, ascending.
func (t *DecisionTreeClassifier) Classes() []int { return t.classes }

// Fit trains the decision tree on X (n x p) and y (n labels as ints).
// Missing values must be math.NaN().
func (t *DecisionTreeClassifier) Fit(X [][]float64, y []int) error {
	if _, err := checkShape(X, len(y)); err != nil {
		return err
	}
	return t.fitIndices(X, y, allIndices(len(X)))
}

// fitIndices grows the tree on the rows listed in idx; repeated indices
// count once per occurrence.
func (t *DecisionTreeClassifier) fitIndices(X [][]float64, y []int, idx []int) error {
	t.nFeatures = len(X[0])

	seen := map[int]struct{}{}
	t.classes = t.classes[:0]
	for _, ii := range idx {
		if _, ok := seen[y[ii]]; !ok {
			seen[y[ii]] = struct{}{}
			t.classes = append(t.classes, y[ii])
		}
	}
	sort.Ints(t.classes)
	classOf := make(map[int]int, len(t.classes))
	for i, c := range t.classes {
		classOf[c] = i
	}
	yc := make([]int, len(y))
	for i, lab := range y {
		if ci, ok := classOf[lab]; ok {
			yc[i] = ci
		}
	}
	nClasses := len(t.classes)

	impurityFunc := giniFromCounts
	if t.Criterion == "entropy" {
		impurityFunc = entropyFromCounts
	}
	counts := func(idx []int) []int {
		c := make([]int, nClasses)
		for _, ii := range idx {
			c[yc[ii]]++
		}
		return c
	}

	g := &grower{
		TreeParams: t.TreeParams,
		X:          X,
		p:          t.nFeatures,
		rnd:        rand.New(rand.NewSource(t.RandomState)),
		impurity:   func(idx []int) float64 { return impurityFunc(counts(idx)) },
		makeLeaf: func(idx []int) *dtNode {
			return &dtNode{isLeaf: true, n: len(idx), probas: countsToProbas(counts(idx))}
		},
		bestSplit: func(idx []int, f int, parent float64) splitResult {
			return classSplit(X, yc, idx, f, nClasses, parent, t.MinSamplesLeaf, impurityFunc)
		},
	}
	t.root = g.build(idx, 0)
	return nil
}

// classSplit scans the thresholds of feature f once, moving samples from the
// right child to the left and keeping running class counts. Missing values
// are tried on both sides.
func classSplit(X [][]float64, yc []int, idx []int, f, nClasses int, parent float64, minLeaf int, impurity func([]int) float64) splitResult {
	result := splitResult{feature: -1}
	valid, nans := sortedFeature(X, idx, f)
	if len(valid) < 2 {
		return result
	}

	nanCounts := make([]int, nClasses)
	for _, ii := range nans {
		nanCounts[yc[ii]]++
	}
	validCounts := make([]int, nClasses)
	for _, pv := range valid {
		validCounts[yc[pv.i]]++
	}

	n := float64(len(idx))
	left := make([]int, nClasses)
	lc := make([]int, nClasses)
	rc := make([]int, nClasses)
	try := func(nanLeft bool, s int, thr float64) {
		nL, nR := s, len(valid)-s
		for c := range lc {
			lc[c] = left[c]
			rc[c] = validCounts[c] - left[c]
		}
		if nanLeft {
			nL += len(nans)
			for c := range lc {
				lc[c] += nanCounts[c]
			}
		} else {
			nR += len(nans)
			for c := range rc {
				rc[c] += nanCounts[c]
			}
		}
		if nL < minLeaf || nR < minLeaf {
			return
		}
		weighted := float64(nL)/n*impurity(lc) + float64(nR)/n*impurity(rc)
		if gain := parent - weighted; gain > result.gain {
			result = splitResult{gain: gain, feature: f, threshold: thr, nanLeft: nanLeft}
		}
	}

	for s := 1; s < len(valid); s++ {
		left[yc[valid[s-1].i]]++
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

// Predict returns predicted class labels aligned with the labels the tree was trained on.
// Ties between classes go to the lowest label.
func (t *DecisionTreeClassifier) Predict(X [][]float64) ([]int, error) {
	if t.root == nil {
		return nil, ErrNotFitted
	}
	if err := checkPredict(X, t.nFeatures); err != nil {
		return nil, err
	}
	out := make([]int, len(X))
	for i := range X {
		out[i] = t.classes[argmaxFloat(t.root.leaf(X[i]).probas)]
	}
	return out, nil
}

// PredictProba returns the per-class probability vectors for rows in X,
// aligned with Classes.
func (t *DecisionTreeClassifier) PredictProba(X [][]float64) ([][]float64, error) {
	if t.root == nil {
		return nil, ErrNotFitted
	}
	if err := checkPredict(X, t.nFeatures); err != nil {
		return nil, err
	}
	out := make([][]float64, len(X))
	for i := range X {
		out[i] = t.root.leaf(X[i]).probas
	}
	return out, nil
}

// Depth is the length of the longest root-to-leaf path.
func (t *DecisionTreeClassifier) Depth() int { return depth(t.root) }

func depth(node *dtNode) int {
	if node == nil || node.isLeaf {
		return 0
	}
	return 1 + max(depth(node.left), depth(node.right))
}

// ---------------------------
// Utilities: impurity & misc
// ---------------------------

func giniFromCounts(counts []int) float64 {
	n := 0.0
	for _, c := range counts {
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		p := float64(c) / n
		res += p * (1 - p)
	}
	return res
}

func entropyFromCounts(counts []int) float64 {
	n := 0.0
	for _, c := range counts {
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		res -= p * math.Log2(p)
	}
	return res
}

func countsToProbas(counts []int) []float64 {
	n := 0
	for _, c := range counts {
		n += c
	}
	p := make([]float64, len(counts))
	if n == 0 {
		return p
	}
	for i := range counts {
		p[i] = float64(counts[i]) / float64(n)
	}
	return p
}

func argmaxFloat(arr []float64) int {
	best := 0
	for i := 1; i < len(arr); i++ {
		if arr[i] > arr[best] {
			best = i
		}
	}
	return best
}
