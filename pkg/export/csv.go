package export

import (
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Frame converts t to a gota DataFrame.
func (t Table) Frame() dataframe.DataFrame {
	cols := make([]series.Series, len(t.Columns))
	for i, c := range t.Columns {
		if c.Strings != nil {
			cols[i] = series.New(c.Strings, series.String, c.Name)
		} else {
			cols[i] = series.New(c.Floats, series.Float, c.Name)
		}
	}
	return dataframe.New(cols...)
}

func writeCSV(w io.Writer, t Table) error {
	df := t.Frame()
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(w)
}
