package admissions

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"

	"edustats/pkg/data"
	"edustats/pkg/geo"
)

func loadStates(t *testing.T) geo.States {
	t.Helper()
	ss, err := geo.Load("../../testdata/states.json")
	if err != nil {
		t.Fatalf("load states: %v", err)
	}
	return ss
}

func TestRateByState(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"INSTNM", "ST_FIPS", "ADM_RATE"},
		{"A", "53", "0.5"},
		{"B", "6", "0.2"},
		{"C", "53", "0.7"},
		{"D", "6", "NaN"},
		{"E", "72", "0.9"},
		{"F", "6", "0.4"},
	})
	rates, err := RateByState(df, loadStates(t))
	if err != nil {
		t.Fatalf("rate by state: %v", err)
	}
	if len(rates) != 2 {
		t.Fatalf("expected 2 joined states, got %+v", rates)
	}
	if rates[0].FIPS != 6 || rates[0].Name() != "California" || math.Abs(rates[0].Rate-0.3) > 1e-9 {
		t.Fatalf("unexpected California rate: %+v", rates[0])
	}
	if rates[1].FIPS != 53 || rates[1].Name() != "Washington" || math.Abs(rates[1].Rate-0.6) > 1e-9 {
		t.Fatalf("unexpected Washington rate: %+v", rates[1])
	}
}

func TestRateByState_Errors(t *testing.T) {
	noRate := dataframe.LoadRecords([][]string{{"ST_FIPS"}, {"6"}})
	if _, err := RateByState(noRate, loadStates(t)); !errors.Is(err, data.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	empty := dataframe.LoadRecords([][]string{{"ST_FIPS", "ADM_RATE"}, {"NaN", "0.5"}})
	if _, err := RateByState(empty, loadStates(t)); !errors.Is(err, data.ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}
