package race

import (
	"github.com/go-gota/gota/dataframe"

	"edustats/pkg/data"
)

// YearComposition is the national picture for one year: summed enrollment
// and the mean institutional share per race.
type YearComposition struct {
	Year            int
	TotalEnrollment float64
	Composition
}

// Headcounts converts the mean shares into student counts against the
// year's total enrollment.
func (y YearComposition) Headcounts() Composition {
	return y.Composition.Scale(y.TotalEnrollment / 100)
}

// ByYear aggregates the racial dataset per year, oldest first.
func ByYear(df dataframe.DataFrame) ([]YearComposition, error) {
	cols := make([]string, len(All))
	for i, r := range All {
		cols[i] = "col_" + r.Code()
	}
	groups, means, err := data.GroupMeans(df, "year", cols)
	if err != nil {
		return nil, err
	}
	totals, err := data.Floats(df, "total_enrollment")
	if err != nil {
		return nil, err
	}

	out := make([]YearComposition, len(groups))
	for gi, g := range groups {
		yc := YearComposition{Year: int(g.Num), TotalEnrollment: g.Sum(totals)}
		for i, r := range All {
			yc.Composition[r] = means[cols[i]][gi]
		}
		out[gi] = yc
	}
	return out, nil
}

// Since keeps the years at or after first.
func Since(years []YearComposition, first int) []YearComposition {
	var out []YearComposition
	for _, y := range years {
		if y.Year >= first {
			out = append(out, y)
		}
	}
	return out
}
