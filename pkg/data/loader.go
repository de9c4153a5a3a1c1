package data

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

var (
	// ErrMissingColumn is returned when a table lacks a column an analysis needs.
	ErrMissingColumn = errors.New("missing column")
	// ErrEmpty is returned when a table has no rows left to work with.
	ErrEmpty = errors.New("empty table")
)

// MissingValues are the cell values read as NaN. The scorecard files use
// PrivacySuppressed for redacted figures.
var MissingValues = []string{"", "NA", "NaN", "<nil>", "PrivacySuppressed"}

// ReadCSV loads a CSV file with a header row into a DataFrame. Columns named
// in types are forced to that type, the rest are detected.
func ReadCSV(path string, types map[string]series.Type) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()
	df, err := DecodeCSV(f, types)
	if err != nil {
		return df, fmt.Errorf("%s: %w", path, err)
	}
	return df, nil
}

// DecodeCSV is ReadCSV over an arbitrary reader.
func DecodeCSV(r io.Reader, types map[string]series.Type) (dataframe.DataFrame, error) {
	opts := []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(MissingValues),
	}
	if len(types) > 0 {
		opts = append(opts, dataframe.WithTypes(types))
	}
	df := dataframe.ReadCSV(r, opts...)
	if df.Err != nil {
		return df, df.Err
	}
	return df, nil
}

// Floats returns column col as float64 values; missing cells are NaN.
func Floats(df dataframe.DataFrame, col string) ([]float64, error) {
	s := df.Col(col)
	if s.Err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
	}
	return s.Float(), nil
}

// Strings returns column col as strings; missing cells are empty.
func Strings(df dataframe.DataFrame, col string) ([]string, error) {
	s := df.Col(col)
	if s.Err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
	}
	out := make([]string, s.Len())
	for i := range out {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		out[i] = e.String()
	}
	return out, nil
}

// FilterEq keeps the rows whose column col equals value.
func FilterEq(df dataframe.DataFrame, col string, value interface{}) (dataframe.DataFrame, error) {
	if df.Col(col).Err != nil {
		return df, fmt.Errorf("%w: %q", ErrMissingColumn, col)
	}
	out := df.Filter(dataframe.F{Colname: col, Comparator: series.Eq, Comparando: value})
	if out.Err != nil {
		return out, out.Err
	}
	return out, nil
}

// LeftJoin joins right onto left where left[leftKey] == right[rightKey],
// keeping every left row. The joined key column keeps the left name.
func LeftJoin(left, right dataframe.DataFrame, leftKey, rightKey string) (dataframe.DataFrame, error) {
	if left.Col(leftKey).Err != nil {
		return left, fmt.Errorf("%w: %q", ErrMissingColumn, leftKey)
	}
	if right.Col(rightKey).Err != nil {
		return left, fmt.Errorf("%w: %q", ErrMissingColumn, rightKey)
	}
	if leftKey != rightKey {
		right = right.Rename(leftKey, rightKey)
		if right.Err != nil {
			return left, right.Err
		}
	}
	out := left.LeftJoin(right, leftKey)
	if out.Err != nil {
		return out, out.Err
	}
	return out, nil
}

// AllPresent reports whether none of the values is NaN.
func AllPresent(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}
