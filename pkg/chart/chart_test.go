package chart

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"gonum.org/v1/plot/vg"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func assertPNG(t *testing.T, path string) {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if !bytes.HasPrefix(b, pngMagic) {
		t.Fatalf("%s is not a PNG file", path)
	}
}

func square(x, y, side float64) orb.MultiPolygon {
	return orb.MultiPolygon{{{
		{x, y}, {x + side, y}, {x + side, y + side}, {x, y + side}, {x, y},
	}}}
}

func TestChoropleth(t *testing.T) {
	regions := []Region{
		{Name: "A", Shape: square(-120, 35, 5), Value: 10},
		{Name: "B", Shape: square(-100, 35, 5), Value: 30},
		{Name: "C", Shape: square(-80, 35, 5), Value: math.NaN()},
		{Name: "D", Value: 99},
	}
	m, err := Choropleth("Avg Enrollment % of White Students Per State", "Enrollment %", regions, MapXMin, MapXMax)
	if err != nil {
		t.Fatalf("choropleth: %v", err)
	}
	if m.plot.X.Min != MapXMin || m.plot.X.Max != MapXMax {
		t.Fatalf("x range not applied: %v..%v", m.plot.X.Min, m.plot.X.Max)
	}
	out := filepath.Join(t.TempDir(), "state_race_white.png")
	if err := Save(out, Width, Height, m); err != nil {
		t.Fatalf("save: %v", err)
	}
	assertPNG(t, out)
}

func TestValueRange(t *testing.T) {
	shape := square(0, 0, 1)
	cases := []struct {
		name   string
		in     []Region
		lo, hi float64
	}{
		{"spread", []Region{{Shape: shape, Value: 2}, {Shape: shape, Value: 5}, {Value: 100}}, 2, 5},
		{"single", []Region{{Shape: shape, Value: 3}}, 2.5, 3.5},
		{"none", []Region{{Shape: shape, Value: math.NaN()}}, 0, 1},
	}
	for _, c := range cases {
		lo, hi := valueRange(c.in)
		if lo != c.lo || hi != c.hi {
			t.Fatalf("%s: got %v..%v want %v..%v", c.name, lo, hi, c.lo, c.hi)
		}
	}
}

func TestScatterAndRegPlot(t *testing.T) {
	dir := t.TempDir()
	sc, err := Scatter("Tuition", "Tuition ($)", "Count", []Point{{1, 2, 10}, {2, 3, 40}, {3, 5, 0}}, Red)
	if err != nil {
		t.Fatalf("scatter: %v", err)
	}
	if err := Save(filepath.Join(dir, "scatter.png"), Width, Height, sc); err != nil {
		t.Fatalf("save scatter: %v", err)
	}
	assertPNG(t, filepath.Join(dir, "scatter.png"))

	rp, err := RegPlot("Reg", "x", "y", []float64{1, 2, math.NaN(), 4}, []float64{2, 4, 5, 8}, Blue)
	if err != nil {
		t.Fatalf("regplot: %v", err)
	}
	if err := Save(filepath.Join(dir, "reg.png"), Width, Height, rp); err != nil {
		t.Fatalf("save regplot: %v", err)
	}
	assertPNG(t, filepath.Join(dir, "reg.png"))
}

func TestBars(t *testing.T) {
	cats := []string{"2010", "2011"}
	series := []Series{{"White", []float64{50, 48}}, {"Black", []float64{20, math.NaN()}}}
	dir := t.TempDir()

	st, err := StackedBars("Stacked", "Year", "Percentage", cats, series)
	if err != nil {
		t.Fatalf("stacked: %v", err)
	}
	if err := Save(filepath.Join(dir, "stacked.png"), Width, Height, st); err != nil {
		t.Fatalf("save stacked: %v", err)
	}
	gr, err := GroupedBars("Grouped", "Institution", "Racial Percentages", cats, series)
	if err != nil {
		t.Fatalf("grouped: %v", err)
	}
	if err := Save(filepath.Join(dir, "grouped.png"), Width, Height, gr); err != nil {
		t.Fatalf("save grouped: %v", err)
	}
	assertPNG(t, filepath.Join(dir, "stacked.png"))
	assertPNG(t, filepath.Join(dir, "grouped.png"))

	if _, err := StackedBars("bad", "", "", cats, []Series{{"short", []float64{1}}}); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestLinesAndStack(t *testing.T) {
	l, err := Lines("Enrollment", "Year", "Count", []float64{2010, 2011, 2012}, []Series{
		{"White", []float64{100, 110, 120}},
		{"Black", []float64{40, math.NaN(), 45}},
	})
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	m, err := Choropleth("Women", "Enrollment %", []Region{{Shape: square(-100, 40, 3), Value: 55}}, MapXMin, MapXMaxNarrow)
	if err != nil {
		t.Fatalf("choropleth: %v", err)
	}
	out := filepath.Join(t.TempDir(), "stack.png")
	if err := Save(out, Width, 2*Height, Stack("Two panels", l, m)); err != nil {
		t.Fatalf("save stack: %v", err)
	}
	assertPNG(t, out)
}

func TestSave_BadPath(t *testing.T) {
	l, err := Lines("x", "", "", []float64{1, 2}, []Series{{"a", []float64{1, 2}}})
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if err := Save(filepath.Join(t.TempDir(), "missing", "x.png"), 2*vg.Inch, 2*vg.Inch, l); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
