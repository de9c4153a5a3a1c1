package learn

import (
	"math"
	"math/rand"
)

// Split controls the train/test partition.
type Split struct {
	TestRatio float64
	Seed      int64
}

// DefaultSplit holds out a third of the rows.
var DefaultSplit = Split{TestRatio: 0.33, Seed: 50}

// TestSize is ceil(TestRatio*n), clamped so both sides keep a row when n > 1.
func (s Split) TestSize(n int) int {
	k := int(math.Ceil(s.TestRatio * float64(n)))
	if n > 1 {
		k = min(max(k, 1), n-1)
	}
	return k
}

// TrainTestSplit splits X, Y into train and test sets from a seeded
// permutation of the rows.
func TrainTestSplit[T any](X [][]float64, Y []T, s Split) (XTrain, XTest [][]float64, YTrain, YTest []T) {
	n := len(X)
	indices := rand.New(rand.NewSource(s.Seed)).Perm(n)
	nTest := s.TestSize(n)
	for i := range n {
		if i < nTest {
			XTest = append(XTest, X[indices[i]])
			YTest = append(YTest, Y[indices[i]])
		} else {
			XTrain = append(XTrain, X[indices[i]])
			YTrain = append(YTrain, Y[indices[i]])
		}
	}
	return
}
