package race

import (
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"

	"edustats/pkg/data"
	"edustats/pkg/stats"
)

// DefaultDiversityRaces is the category subset the index sums over. The
// small categories are left out; including them pushed scores for some
// institutions below zero in the source data.
var DefaultDiversityRaces = []Race{White, Hispanic}

// Institution is one institution's enrollment mix and diversity score.
type Institution struct {
	Name   string
	State  string
	Shares Composition // percent of enrollment
	Index  float64
}

// DiversityIndex scores every institution with the Shannon-Wiener index
// -sum(p*ln p), where p is a category's share of enrollment as a fraction
// and 0*ln 0 is 0. Only the categories in subset are summed; missing shares
// contribute nothing.
func DiversityIndex(df dataframe.DataFrame, subset []Race) ([]Institution, error) {
	if len(subset) == 0 {
		subset = DefaultDiversityRaces
	}
	names, err := data.Strings(df, "inst_name")
	if err != nil {
		return nil, err
	}
	states, err := data.Strings(df, StateKey)
	if err != nil {
		return nil, err
	}
	var shares [7][]float64
	for _, r := range All {
		if shares[r], err = data.Floats(df, "col_"+r.Code()); err != nil {
			return nil, err
		}
	}

	out := make([]Institution, len(names))
	for i := range names {
		inst := Institution{Name: names[i], State: states[i]}
		for _, r := range All {
			inst.Shares[r] = shares[r][i]
		}
		terms := make([]float64, len(subset))
		for j, r := range subset {
			terms[j] = stats.ShannonTerm(inst.Shares[r] / 100)
		}
		inst.Index = -stats.NanSum(terms)
		out[i] = inst
	}
	return out, nil
}

// TopBottom returns the n most diverse institutions followed by the n least
// diverse. Ties keep their input order.
func TopBottom(insts []Institution, n int) []Institution {
	scored := make([]Institution, 0, len(insts))
	for _, in := range insts {
		if !math.IsNaN(in.Index) {
			scored = append(scored, in)
		}
	}
	desc := append([]Institution(nil), scored...)
	sort.SliceStable(desc, func(a, b int) bool { return desc[a].Index > desc[b].Index })
	asc := append([]Institution(nil), scored...)
	sort.SliceStable(asc, func(a, b int) bool { return asc[a].Index < asc[b].Index })

	out := make([]Institution, 0, 2*n)
	out = append(out, desc[:min(n, len(desc))]...)
	out = append(out, asc[:min(n, len(asc))]...)
	return out
}
