// Package demographics relates enrollment and admissions figures of the IPEDS
// and scorecard tables to tuition, gender, first-generation status and
// residency.
package demographics

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"

	"edustats/pkg/data"
	"edustats/pkg/geo"
	"edustats/pkg/race"
	"edustats/pkg/stats"
)

// TuitionRaces are the categories compared against tuition, in plotting order.
var TuitionRaces = []race.Race{race.Black, race.Asian, race.Hispanic, race.White}

var ipedsRaceNames = map[race.Race]string{
	race.White:    "White",
	race.Black:    "Black or African American",
	race.Asian:    "Asian",
	race.Hispanic: "Hispanic/Latino",
}

// IPEDSRaceName is the wording the IPEDS percent columns use for r.
func IPEDSRaceName(r race.Race) (string, bool) {
	n, ok := ipedsRaceNames[r]
	return n, ok
}

// TuitionPoint is one institution in the tuition comparison.
type TuitionPoint struct {
	Tuition float64
	Count   float64 // students of the race
	Share   float64 // percent of total enrollment
}

// RaceTuition estimates each institution's headcount of race r as
// share/100 * total enrollment and pairs it with the institution's tuition.
// Institutions missing any of the three figures are left out.
func RaceTuition(df dataframe.DataFrame, r race.Race) ([]TuitionPoint, error) {
	name, ok := IPEDSRaceName(r)
	if !ok {
		return nil, fmt.Errorf("demographics: no IPEDS enrollment column for %s", r)
	}
	share, err := data.Floats(df, data.IPEDSPercentOfPfx+name)
	if err != nil {
		return nil, err
	}
	total, err := data.Floats(df, data.IPEDSTotal)
	if err != nil {
		return nil, err
	}
	tuition, err := data.Floats(df, data.IPEDSTuition)
	if err != nil {
		return nil, err
	}

	var out []TuitionPoint
	for i := range share {
		count := share[i] / 100 * total[i]
		if !data.AllPresent(count, tuition[i]) {
			continue
		}
		out = append(out, TuitionPoint{Tuition: tuition[i], Count: count, Share: share[i]})
	}
	return out, nil
}

// GenderShare is a state's average enrollment split by gender, in percent.
type GenderShare struct {
	State    string
	Boundary *geo.State
	Women    float64
	Men      float64
}

// Difference is Men - Women.
func (g GenderShare) Difference() float64 { return g.Men - g.Women }

// GenderShares averages the women's enrollment share per state. Men is the
// remainder to 100. States come back in name order.
func GenderShares(df dataframe.DataFrame) ([]GenderShare, error) {
	groups, means, err := data.GroupMeans(df, data.IPEDSState, []string{data.IPEDSWomen})
	if err != nil {
		return nil, err
	}
	out := make([]GenderShare, len(groups))
	for i, g := range groups {
		w := means[data.IPEDSWomen][i]
		out[i] = GenderShare{State: g.Key, Women: w, Men: 100 - w}
	}
	return out, nil
}

// GenderByState is GenderShares restricted to states with a boundary, in
// boundary-file order.
func GenderByState(df dataframe.DataFrame, states geo.States) ([]GenderShare, error) {
	shares, err := GenderShares(df)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(shares))
	for i, s := range shares {
		names[i] = s.State
	}
	var out []GenderShare
	for _, m := range states.JoinNames(names, geo.Inner) {
		s := shares[m.Row]
		s.Boundary = m.State
		out = append(out, s)
	}
	return out, nil
}

// GenderExtremes returns the n states with the smallest men-minus-women gap
// followed by the n with the largest. Ties keep their input order.
func GenderExtremes(shares []GenderShare, n int) []GenderShare {
	valid := make([]GenderShare, 0, len(shares))
	for _, s := range shares {
		if !math.IsNaN(s.Women) {
			valid = append(valid, s)
		}
	}
	asc := append([]GenderShare(nil), valid...)
	sort.SliceStable(asc, func(a, b int) bool { return asc[a].Difference() < asc[b].Difference() })
	desc := append([]GenderShare(nil), valid...)
	sort.SliceStable(desc, func(a, b int) bool { return desc[a].Difference() > desc[b].Difference() })

	out := make([]GenderShare, 0, 2*n)
	out = append(out, asc[:min(n, len(asc))]...)
	out = append(out, desc[:min(n, len(desc))]...)
	return out
}

// Relation is a set of paired observations with no missing side.
type Relation struct {
	X, Y []float64
}

// Len is the number of pairs.
func (r Relation) Len() int { return len(r.X) }

// Correlation is the Pearson coefficient of the pairs.
func (r Relation) Correlation() float64 { return stats.Correlation(r.X, r.Y) }

// FirstGenSelectivity pairs each institution's admission rate with its
// first-generation share, both in percent.
func FirstGenSelectivity(df dataframe.DataFrame) (Relation, error) {
	adm, err := data.Floats(df, "ADM_RATE")
	if err != nil {
		return Relation{}, err
	}
	first, err := data.Floats(df, "FIRST_GEN")
	if err != nil {
		return Relation{}, err
	}
	x := make([]float64, len(adm))
	y := make([]float64, len(first))
	for i := range adm {
		x[i] = adm[i] * 100
		y[i] = first[i] * 100
	}
	x, y = stats.DropNaNPairs(x, y)
	return Relation{X: x, Y: y}, nil
}

// ResidencyRelations compares first-time undergraduate counts by residency
// against the admission rate.
type ResidencyRelations struct {
	AdmissionRate []float64 // per institution, NaN without applicants
	InState       Relation
	OutOfState    Relation
	Foreign       Relation
}

// Residency computes admission rate = admissions / applicants * 100 and
// relates it to the in-state, out-of-state and foreign first-time counts.
func Residency(df dataframe.DataFrame) (ResidencyRelations, error) {
	var res ResidencyRelations
	admitted, err := data.Floats(df, data.IPEDSAdmissions)
	if err != nil {
		return res, err
	}
	applied, err := data.Floats(df, data.IPEDSApplicants)
	if err != nil {
		return res, err
	}
	res.AdmissionRate = make([]float64, len(admitted))
	for i := range admitted {
		if applied[i] == 0 {
			res.AdmissionRate[i] = math.NaN()
			continue
		}
		res.AdmissionRate[i] = admitted[i] / applied[i] * 100
	}

	for _, c := range []struct {
		col string
		dst *Relation
	}{
		{data.IPEDSInState, &res.InState},
		{data.IPEDSOutOfState, &res.OutOfState},
		{data.IPEDSForeign, &res.Foreign},
	} {
		counts, err := data.Floats(df, c.col)
		if err != nil {
			return res, err
		}
		x, y := stats.DropNaNPairs(res.AdmissionRate, counts)
		*c.dst = Relation{X: x, Y: y}
	}
	return res, nil
}
