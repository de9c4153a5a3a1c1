// Package admissions aggregates scorecard admission rates by state.
package admissions

import (
	"github.com/go-gota/gota/dataframe"

	"edustats/pkg/data"
	"edustats/pkg/geo"
)

// StateKey is the scorecard column holding the numeric state FIPS code.
const StateKey = "ST_FIPS"

// StateRate is a state's mean institutional admission rate (a fraction).
type StateRate struct {
	FIPS     int
	Boundary *geo.State
	Rate     float64
}

// Name is the boundary's state name.
func (s StateRate) Name() string {
	if s.Boundary == nil {
		return ""
	}
	return s.Boundary.Name
}

// RateByState averages ADM_RATE per ST_FIPS and keeps the states that have a
// boundary, in boundary-file order.
func RateByState(df dataframe.DataFrame, states geo.States) ([]StateRate, error) {
	groups, means, err := data.GroupMeans(df, StateKey, []string{"ADM_RATE"})
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, data.ErrEmpty
	}
	codes := make([]int, len(groups))
	for i, g := range groups {
		codes[i] = int(g.Num)
	}

	var out []StateRate
	for _, m := range states.JoinFIPS(codes, geo.Inner) {
		out = append(out, StateRate{
			FIPS:     codes[m.Row],
			Boundary: m.State,
			Rate:     means["ADM_RATE"][m.Row],
		})
	}
	return out, nil
}
