package race

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"

	"edustats/pkg/data"
	"edustats/pkg/geo"
)

const tol = 1e-6

func near(a, b float64) bool { return math.Abs(a-b) < tol }

func loadRacial(t *testing.T, name string) dataframe.DataFrame {
	t.Helper()
	df, err := data.RacialSchema.Load("testdata/" + name)
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return df
}

func loadStates(t *testing.T) geo.States {
	t.Helper()
	ss, err := geo.Load("../../testdata/states.json")
	if err != nil {
		t.Fatalf("load states: %v", err)
	}
	return ss
}

func TestParse(t *testing.T) {
	for in, want := range map[string]Race{"hispa": Hispanic, "Hispanic": Hispanic, "2+ races": TwoOrMore, "WHITE": White} {
		got, err := Parse(in)
		if err != nil || got != want {
			t.Fatalf("Parse(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := Parse("martian"); err == nil {
		t.Fatalf("expected error for unknown race")
	}
}

func TestPercentByState_AveragesPerState(t *testing.T) {
	rows, err := PercentByState(loadRacial(t, "racial.csv"), loadStates(t))
	if err != nil {
		t.Fatalf("percent by state: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 states, got %d", len(rows))
	}
	ca, wa := rows[0], rows[1]
	if ca.State != "California" || wa.State != "Washington" {
		t.Fatalf("unexpected state order: %s, %s", ca.State, wa.State)
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"ca white", ca.Composition[White], 140.0 / 3},
		{"wa white", wa.Composition[White], 130.0 / 3},
		{"ca black", ca.Composition[Black], 70.0 / 3},
		{"wa black", wa.Composition[Black], 20},
		{"ca hispanic", ca.Composition[Hispanic], 70.0 / 3},
		{"wa hispanic", wa.Composition[Hispanic], 20},
		{"ca twora", ca.Composition[TwoOrMore], 1.0 / 3},
		{"wa twora", wa.Composition[TwoOrMore], 0},
		{"ca minority", ca.Minority(), 160.0 / 3},
		{"wa minority", wa.Minority(), 170.0 / 3},
	}
	for _, c := range checks {
		if !near(c.got, c.want) {
			t.Fatalf("%s: got %v want %v", c.name, c.got, c.want)
		}
	}
	if ca.Boundary == nil || ca.Boundary.GeoID != "0400000US06" {
		t.Fatalf("California not joined to its boundary: %+v", ca.Boundary)
	}
	if wa.Boundary == nil || wa.Boundary.GeoID != "0400000US53" {
		t.Fatalf("Washington not joined to its boundary: %+v", wa.Boundary)
	}
}

func TestPercentByState_KeepsStatesWithoutBoundary(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"fips_ipeds", "col_white", "col_black", "col_asian", "col_hispa", "col_amind", "col_pacis", "col_twora"},
		{"Puerto Rico", "1", "0", "0", "99", "0", "0", "0"},
		{"Washington", "60", "10", "10", "20", "0", "0", "0"},
	})
	rows, err := PercentByState(df, loadStates(t))
	if err != nil {
		t.Fatalf("percent by state: %v", err)
	}
	if len(rows) != 2 || rows[0].State != "Puerto Rico" || rows[0].Boundary != nil {
		t.Fatalf("expected unmatched Puerto Rico kept first, got %+v", rows)
	}
}

func TestMarketShareByState(t *testing.T) {
	rows, err := MarketShareByState(loadRacial(t, "racial.csv"), loadStates(t))
	if err != nil {
		t.Fatalf("market share: %v", err)
	}
	if !near(rows[0].Composition[White], 137.0/3) || !near(rows[1].Composition[White], 124.0/3) {
		t.Fatalf("unexpected white market share: %v, %v", rows[0].Composition[White], rows[1].Composition[White])
	}
	if !near(rows[0].Composition[Hispanic], 28) || !near(rows[1].Composition[Hispanic], 68.0/3) {
		t.Fatalf("unexpected hispanic market share: %v, %v", rows[0].Composition[Hispanic], rows[1].Composition[Hispanic])
	}
}

func TestEnrollmentDiffByState(t *testing.T) {
	rows, err := EnrollmentDiffByState(loadRacial(t, "racial.csv"), loadStates(t))
	if err != nil {
		t.Fatalf("diff by state: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 states, got %d", len(rows))
	}
	want := map[Race][2]float64{
		White:    {1, 2},
		Hispanic: {-14.0 / 3, -8.0 / 3},
		Black:    {1.0 / 3, -5.0 / 3},
	}
	for r, w := range want {
		if !near(rows[0].Composition[r], w[0]) || !near(rows[1].Composition[r], w[1]) {
			t.Fatalf("%s: got (%v, %v) want %v", r, rows[0].Composition[r], rows[1].Composition[r], w)
		}
	}
	if rows[0].Boundary.GeoID != "0400000US06" || rows[1].Boundary.GeoID != "0400000US53" {
		t.Fatalf("unexpected boundaries: %s, %s", rows[0].Boundary.GeoID, rows[1].Boundary.GeoID)
	}
}

func TestDiversityIndex(t *testing.T) {
	insts, err := DiversityIndex(loadRacial(t, "racial.csv"), nil)
	if err != nil {
		t.Fatalf("diversity: %v", err)
	}
	want := []float64{0.576832, 0.668461, 0.668461, 0.668461, 0.722384, 0.727708}
	if len(insts) != len(want) {
		t.Fatalf("expected %d institutions, got %d", len(want), len(insts))
	}
	for i, w := range want {
		if !near(insts[i].Index, w) {
			t.Fatalf("%s: index %v want %v", insts[i].Name, insts[i].Index, w)
		}
	}
}

func TestDiversityIndex_ZeroShareAndCustomSubset(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"inst_name", "fips_ipeds", "col_white", "col_black", "col_asian", "col_hispa", "col_amind", "col_pacis", "col_twora"},
		{"Solo", "Ohio", "100", "0", "0", "0", "0", "0", "0"},
		{"Even", "Ohio", "25", "25", "25", "25", "0", "0", "0"},
	})
	insts, err := DiversityIndex(df, []Race{White, Black, Asian, Hispanic})
	if err != nil {
		t.Fatalf("diversity: %v", err)
	}
	if insts[0].Index != 0 {
		t.Fatalf("single-race institution must score 0, got %v", insts[0].Index)
	}
	if !near(insts[1].Index, math.Log(4)) {
		t.Fatalf("four equal shares must score ln 4, got %v", insts[1].Index)
	}
}

func TestTopBottom(t *testing.T) {
	insts, err := DiversityIndex(loadRacial(t, "racial.csv"), DefaultDiversityRaces)
	if err != nil {
		t.Fatalf("diversity: %v", err)
	}
	got := TopBottom(insts, 2)
	names := []string{}
	for _, in := range got {
		names = append(names, in.Name)
	}
	want := []string{"Charlie Institute", "Foxtrot College", "Delta College", "Alpha College"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestByYear_SingleYear(t *testing.T) {
	years, err := ByYear(loadRacial(t, "racial.csv"))
	if err != nil {
		t.Fatalf("by year: %v", err)
	}
	if len(years) != 1 || years[0].Year != 2017 {
		t.Fatalf("expected only 2017, got %+v", years)
	}
	y := years[0]
	if !near(y.Composition[White], 45) || !near(y.Composition[Black], 65.0/3) {
		t.Fatalf("unexpected averages: white %v black %v", y.Composition[White], y.Composition[Black])
	}
	if y.TotalEnrollment != 10000 {
		t.Fatalf("expected summed enrollment 10000, got %v", y.TotalEnrollment)
	}
	if hc := y.Headcounts(); !near(hc[White], 4500) {
		t.Fatalf("expected 4500 white students, got %v", hc[White])
	}
}

func TestByYear_SeveralYears(t *testing.T) {
	years, err := ByYear(loadRacial(t, "racial_years.csv"))
	if err != nil {
		t.Fatalf("by year: %v", err)
	}
	if len(years) != 3 || years[0].Year != 2009 || years[2].Year != 2011 {
		t.Fatalf("expected 2009..2011, got %+v", years)
	}
	if !near(years[0].Composition[White], 45) || !near(years[1].Composition[Black], 25) || !near(years[2].Composition[White], 40) {
		t.Fatalf("unexpected yearly averages: %+v", years)
	}
	if years[0].TotalEnrollment != 4000 {
		t.Fatalf("expected 4000 enrolled in 2009, got %v", years[0].TotalEnrollment)
	}
	recent := Since(years, 2010)
	if len(recent) != 2 || recent[0].Year != 2010 {
		t.Fatalf("expected 2010 and 2011, got %+v", recent)
	}
}
