package data

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"edustats/pkg/stats"
)

// Group is the set of rows sharing one key value.
type Group struct {
	Key  string
	Num  float64 // numeric key value, NaN for text keys
	Rows []int
}

// GroupBy partitions the rows of df by column key. Rows whose key is missing
// are dropped. Groups come back sorted by key: numerically for numeric
// columns, lexically otherwise.
func GroupBy(df dataframe.DataFrame, key string) ([]Group, error) {
	col := df.Col(key)
	if col.Err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, key)
	}
	numeric := col.Type() == series.Int || col.Type() == series.Float

	index := make(map[string]int)
	var groups []Group
	for i := 0; i < col.Len(); i++ {
		e := col.Elem(i)
		if e.IsNA() {
			continue
		}
		k, num := e.String(), math.NaN()
		if numeric {
			num = e.Float()
			k = strconv.FormatFloat(num, 'f', -1, 64)
		}
		gi, ok := index[k]
		if !ok {
			gi = len(groups)
			index[k] = gi
			groups = append(groups, Group{Key: k, Num: num})
		}
		groups[gi].Rows = append(groups[gi].Rows, i)
	}

	if numeric {
		sort.SliceStable(groups, func(a, b int) bool { return groups[a].Num < groups[b].Num })
	} else {
		sort.SliceStable(groups, func(a, b int) bool { return groups[a].Key < groups[b].Key })
	}
	return groups, nil
}

// Mean averages the group's non-missing entries of a column.
func (g Group) Mean(col []float64) float64 {
	return stats.NanMean(g.pick(col))
}

// Sum adds the group's non-missing entries of a column.
func (g Group) Sum(col []float64) float64 {
	return stats.NanSum(g.pick(col))
}

func (g Group) pick(col []float64) []float64 {
	out := make([]float64, len(g.Rows))
	for i, r := range g.Rows {
		out[i] = col[r]
	}
	return out
}

// GroupMeans groups df by key and averages each of cols within the groups.
// The result maps column name to one value per group, aligned with groups.
func GroupMeans(df dataframe.DataFrame, key string, cols []string) ([]Group, map[string][]float64, error) {
	groups, err := GroupBy(df, key)
	if err != nil {
		return nil, nil, err
	}
	out := make(map[string][]float64, len(cols))
	for _, c := range cols {
		vals, err := Floats(df, c)
		if err != nil {
			return nil, nil, err
		}
		means := make([]float64, len(groups))
		for i, g := range groups {
			means[i] = g.Mean(vals)
		}
		out[c] = means
	}
	return groups, out, nil
}
