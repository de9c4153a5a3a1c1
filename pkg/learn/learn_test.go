package learn

import (
	"errors"
	"sort"
	"testing"

	"github.com/go-gota/gota/dataframe"

	"edustats/pkg/data"
)

func TestSplit_TestSize(t *testing.T) {
	cases := []struct {
		n, want int
	}{{10, 4}, {6, 2}, {3, 1}, {2, 1}, {100, 33}, {1, 1}}
	for _, c := range cases {
		if got := DefaultSplit.TestSize(c.n); got != c.want {
			t.Fatalf("TestSize(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestTrainTestSplit_PartitionsRows(t *testing.T) {
	var X [][]float64
	var y []int
	for i := 0; i < 10; i++ {
		X = append(X, []float64{float64(i)})
		y = append(y, i)
	}
	xtr, xte, ytr, yte := TrainTestSplit(X, y, DefaultSplit)
	if len(xte) != 4 || len(xtr) != 6 {
		t.Fatalf("expected 6/4 split, got %d/%d", len(xtr), len(xte))
	}
	seen := append(append([]int(nil), ytr...), yte...)
	sort.Ints(seen)
	for i, v := range seen {
		if v != i {
			t.Fatalf("rows lost or duplicated: %v", seen)
		}
	}
	for i := range xte {
		if int(xte[i][0]) != yte[i] {
			t.Fatalf("features and targets out of step")
		}
	}

	_, _, _, again := TrainTestSplit(X, y, DefaultSplit)
	for i := range yte {
		if again[i] != yte[i] {
			t.Fatalf("same seed gave a different split")
		}
	}
}

func TestLabelEncode_SortedClasses(t *testing.T) {
	codes, classes := LabelEncode([]string{"selective", "non_selective", "selective", "more_selective"})
	if len(classes) != 3 || classes[0] != "more_selective" || classes[2] != "selective" {
		t.Fatalf("unexpected classes %v", classes)
	}
	want := []int{2, 1, 2, 0}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, codes)
		}
	}
}

func TestRaceSelectivity(t *testing.T) {
	df, err := data.RacialSchema.Load("../race/testdata/racial.csv")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c, err := RaceSelectivity(df, DefaultSplit)
	if err != nil {
		t.Fatalf("selectivity: %v", err)
	}
	if len(c.XTrain) != 4 || len(c.XTest) != 2 || len(c.XTrain[0]) != 7 {
		t.Fatalf("unexpected shapes: train %d test %d", len(c.XTrain), len(c.XTest))
	}
	counts := map[string]int{}
	for _, y := range append(append([]int(nil), c.YTrain...), c.YTest...) {
		counts[c.Classes[y]]++
	}
	if counts["selective"] != 3 || counts["non_selective"] != 2 || counts["more_selective"] != 1 {
		t.Fatalf("unexpected label counts %v", counts)
	}
}

func TestRaceSelectivity_DropsIncompleteRowsAndBreaksTiesInColumnOrder(t *testing.T) {
	header := append(append([]string(nil), SelectivityFeatures...), data.SelectivityColumns...)
	df := dataframe.LoadRecords([][]string{
		header,
		{"50", "20", "10", "10", "5", "5", "0", "1", "1", "0"},
		{"40", "NaN", "10", "10", "5", "5", "0", "0", "1", "0"},
		{"30", "30", "10", "10", "5", "5", "10", "0", "0", "1"},
		{"20", "30", "20", "10", "5", "5", "10", "NaN", "NaN", "NaN"},
	})
	c, err := RaceSelectivity(df, Split{TestRatio: 0.5, Seed: 1})
	if err != nil {
		t.Fatalf("selectivity: %v", err)
	}
	if c.Dropped != 2 {
		t.Fatalf("expected 2 dropped rows, got %d", c.Dropped)
	}
	names := map[string]bool{}
	for _, y := range append(append([]int(nil), c.YTrain...), c.YTest...) {
		names[c.Classes[y]] = true
	}
	if !names["selective"] || !names["more_selective"] || names["non_selective"] {
		t.Fatalf("tie should resolve to the first indicator, got %v", names)
	}
}

func TestSocioSAT(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		data.SocioColumns,
		{"50000", "40000", "0.3", "1100", "0.5", "0.2", "0.1", "0.1", "0.05", "0.05"},
		{"60000", "45000", "0.2", "1200", "0.6", "0.1", "0.1", "0.1", "0.05", "0.05"},
		{"PrivacySuppressed", "45000", "0.2", "1200", "0.6", "0.1", "0.1", "0.1", "0.05", "0.05"},
		{"70000", "50000", "0.1", "NaN", "0.7", "0.1", "0.1", "0.05", "0.0", "0.05"},
		{"80000", "55000", "0.1", "1300", "0.7", "0.1", "0.1", "0.05", "0.0", "0.05"},
	}, dataframe.NaNValues(data.MissingValues))
	r, err := SocioSAT(df, DefaultSplit)
	if err != nil {
		t.Fatalf("sat: %v", err)
	}
	if r.Dropped != 2 {
		t.Fatalf("expected 2 dropped rows, got %d", r.Dropped)
	}
	if len(r.Features) != 9 || r.Features[3] != "UGDS_WHITE" {
		t.Fatalf("unexpected features %v", r.Features)
	}
	if len(r.XTrain)+len(r.XTest) != 3 || len(r.XTest) != 1 {
		t.Fatalf("unexpected split %d/%d", len(r.XTrain), len(r.XTest))
	}
	for _, y := range append(append([]float64(nil), r.YTrain...), r.YTest...) {
		if y < 1100 || y > 1300 {
			t.Fatalf("unexpected target %v", y)
		}
	}
}

func TestSocioSAT_TooFewRows(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		data.SocioColumns,
		{"50000", "40000", "0.3", "1100", "0.5", "0.2", "0.1", "0.1", "0.05", "0.05"},
	})
	if _, err := SocioSAT(df, DefaultSplit); !errors.Is(err, data.ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}
