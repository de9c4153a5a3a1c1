package race

import (
	"github.com/go-gota/gota/dataframe"

	"edustats/pkg/data"
	"edustats/pkg/geo"
)

// StateKey is the column holding the state name in the racial dataset.
const StateKey = "fips_ipeds"

// StateComposition is a per-state average composition joined to its boundary.
type StateComposition struct {
	State    string
	Boundary *geo.State // nil when the state has no boundary feature
	Composition
}

// Minority is the summed non-white share.
func (s StateComposition) Minority() float64 { return s.Composition.Minority() }

// PercentByState averages each institution's enrollment share per race
// within a state (col_ columns). Every state with data is kept even when it
// has no boundary.
func PercentByState(df dataframe.DataFrame, states geo.States) ([]StateComposition, error) {
	return byState(df, states, "col_", geo.Right)
}

// MarketShareByState averages the college-age population share per race
// within a state (mkt_ columns).
func MarketShareByState(df dataframe.DataFrame, states geo.States) ([]StateComposition, error) {
	return byState(df, states, "mkt_", geo.Right)
}

// EnrollmentDiffByState averages the enrollment-minus-market difference per
// race within a state (dif_ columns). Only states with a boundary are kept,
// in boundary-file order.
func EnrollmentDiffByState(df dataframe.DataFrame, states geo.States) ([]StateComposition, error) {
	return byState(df, states, "dif_", geo.Inner)
}

func byState(df dataframe.DataFrame, states geo.States, prefix string, how geo.JoinKind) ([]StateComposition, error) {
	cols := make([]string, len(All))
	for i, r := range All {
		cols[i] = prefix + r.Code()
	}
	groups, means, err := data.GroupMeans(df, StateKey, cols)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Key
	}

	matches := states.JoinNames(names, how)
	out := make([]StateComposition, 0, len(matches))
	for _, m := range matches {
		sc := StateComposition{State: names[m.Row], Boundary: m.State}
		for i, r := range All {
			sc.Composition[r] = means[cols[i]][m.Row]
		}
		out = append(out, sc)
	}
	return out, nil
}
