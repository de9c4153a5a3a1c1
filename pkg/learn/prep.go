// Package learn turns the analysis tables into train/test matrices for the
// selectivity classifiers and the SAT regressors.
package learn

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"

	"edustats/pkg/data"
)

// SelectivityFeatures are the enrollment shares the classifiers learn from.
var SelectivityFeatures = []string{
	"col_white", "col_black", "col_asian", "col_hispa", "col_pacis", "col_amind", "col_twora",
}

// SATTarget is the regression target column.
const SATTarget = "SAT_AVG"

// Classification is a split classification problem.
type Classification struct {
	Features []string
	Classes  []string // label code -> category name
	XTrain   [][]float64
	XTest    [][]float64
	YTrain   []int
	YTest    []int
	Dropped  int // rows removed for missing values
}

// Regression is a split regression problem.
type Regression struct {
	Features []string
	XTrain   [][]float64
	XTest    [][]float64
	YTrain   []float64
	YTest    []float64
	Dropped  int
}

// matrix reads cols of df row-major.
func matrix(df dataframe.DataFrame, cols []string) ([][]float64, error) {
	colVals := make([][]float64, len(cols))
	for j, c := range cols {
		v, err := data.Floats(df, c)
		if err != nil {
			return nil, err
		}
		colVals[j] = v
	}
	X := make([][]float64, df.Nrow())
	for i := range X {
		row := make([]float64, len(cols))
		for j := range cols {
			row[j] = colVals[j][i]
		}
		X[i] = row
	}
	return X, nil
}

// RaceSelectivity labels each institution with the name of its largest
// selectivity indicator (the first on ties) and learns it from the
// enrollment shares. Rows missing an indicator or a share are dropped.
func RaceSelectivity(df dataframe.DataFrame, s Split) (*Classification, error) {
	ind, err := matrix(df, data.SelectivityColumns)
	if err != nil {
		return nil, err
	}
	feats, err := matrix(df, SelectivityFeatures)
	if err != nil {
		return nil, err
	}

	var X [][]float64
	var names []string
	dropped := 0
	for i := range feats {
		best := -1
		for j, v := range ind[i] {
			if !math.IsNaN(v) && (best < 0 || v > ind[i][best]) {
				best = j
			}
		}
		if best < 0 || !data.AllPresent(feats[i]...) {
			dropped++
			continue
		}
		X = append(X, feats[i])
		names = append(names, data.SelectivityColumns[best])
	}
	if len(X) < 2 {
		return nil, fmt.Errorf("selectivity: %w: %d usable rows", data.ErrEmpty, len(X))
	}

	y, classes := LabelEncode(names)
	c := &Classification{Features: SelectivityFeatures, Classes: classes, Dropped: dropped}
	c.XTrain, c.XTest, c.YTrain, c.YTest = TrainTestSplit(X, y, s)
	return c, nil
}

// SocioSAT predicts the average SAT score from family income, first
// generation share and undergraduate racial shares. Rows with any missing or
// suppressed value are dropped.
func SocioSAT(df dataframe.DataFrame, s Split) (*Regression, error) {
	var features []string
	for _, c := range data.SocioColumns {
		if c != SATTarget {
			features = append(features, c)
		}
	}
	feats, err := matrix(df, features)
	if err != nil {
		return nil, err
	}
	target, err := data.Floats(df, SATTarget)
	if err != nil {
		return nil, err
	}

	var X [][]float64
	var y []float64
	dropped := 0
	for i := range feats {
		if math.IsNaN(target[i]) || !data.AllPresent(feats[i]...) {
			dropped++
			continue
		}
		X = append(X, feats[i])
		y = append(y, target[i])
	}
	if len(X) < 2 {
		return nil, fmt.Errorf("sat: %w: %d usable rows", data.ErrEmpty, len(X))
	}

	r := &Regression{Features: features, Dropped: dropped}
	r.XTrain, r.XTest, r.YTrain, r.YTest = TrainTestSplit(X, y, s)
	return r, nil
}
