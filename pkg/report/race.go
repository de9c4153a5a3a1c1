package report

import (
	"context"
	"fmt"
	"strconv"

	"edustats/pkg/chart"
	"edustats/pkg/race"
)

// mapRaces are the categories with a per-state enrollment map, after the
// minority total.
var mapRaces = []race.Race{race.White, race.Black, race.Asian, race.Hispanic}

func compositionRegions(rows []race.StateComposition, value func(race.StateComposition) float64) []chart.Region {
	regions := make([]chart.Region, 0, len(rows))
	for _, s := range rows {
		if s.Boundary == nil {
			continue
		}
		regions = append(regions, chart.Region{Name: s.State, Shape: s.Boundary.Geometry, Value: value(s)})
	}
	return regions
}

func mapFigure(file, title string, regions []chart.Region, xmax float64) figure {
	return newFigure(file, func() (chart.Figure, error) {
		return chart.Choropleth(title, "", regions, chart.MapXMin, xmax)
	})
}

func (r *Runner) diversityRaces() ([]race.Race, error) {
	var subset []race.Race
	for _, s := range r.cfg.DiversityRaces() {
		rc, err := race.Parse(s)
		if err != nil {
			return nil, err
		}
		subset = append(subset, rc)
	}
	return subset, nil
}

func (r *Runner) race(ctx context.Context) error {
	df := r.ds.RacialYear
	var figs []figure

	percent, err := race.PercentByState(df, r.states)
	if err != nil {
		return fmt.Errorf("enrollment share: %w", err)
	}
	figs = append(figs, mapFigure("state_race_minority.png",
		"Avg Enrollment % of Minority Students Per State",
		compositionRegions(percent, race.StateComposition.Minority), chart.MapXMax))
	for _, rc := range mapRaces {
		figs = append(figs, mapFigure("state_race_"+rc.Key()+".png",
			fmt.Sprintf("Avg Enrollment %% of %s Students Per State", rc.Label()),
			compositionRegions(percent, func(s race.StateComposition) float64 { return s.Composition[rc] }), chart.MapXMax))
	}

	diff, err := race.EnrollmentDiffByState(df, r.states)
	if err != nil {
		return fmt.Errorf("market difference: %w", err)
	}
	for _, rc := range mapRaces {
		figs = append(figs, mapFigure("market_diff_"+rc.Key()+".png",
			fmt.Sprintf("Avg Market Difference of %s People Per State", rc.Label()),
			compositionRegions(diff, func(s race.StateComposition) float64 { return s.Composition[rc] }), chart.MapXMax))
	}

	market, err := race.MarketShareByState(df, r.states)
	if err != nil {
		return fmt.Errorf("market share: %w", err)
	}
	figs = append(figs, mapFigure("market_race_minority.png",
		"Average Market Share of Minority People Per State",
		compositionRegions(market, race.StateComposition.Minority), chart.MapXMax))
	for _, rc := range mapRaces {
		figs = append(figs, mapFigure("market_race_"+rc.Key()+".png",
			fmt.Sprintf("Average Market Share of %s People Per State", rc.Label()),
			compositionRegions(market, func(s race.StateComposition) float64 { return s.Composition[rc] }), chart.MapXMax))
	}

	subset, err := r.diversityRaces()
	if err != nil {
		return err
	}
	insts, err := race.DiversityIndex(df, subset)
	if err != nil {
		return fmt.Errorf("diversity index: %w", err)
	}
	n := r.cfg.Analysis.TopN
	extremes := race.TopBottom(insts, n)
	if len(extremes) > 0 {
		r.log.Info("diversity index", "institutions", len(insts),
			"most_diverse", extremes[0].Name, "index", extremes[0].Index)
	}
	names := make([]string, len(extremes))
	for i, inst := range extremes {
		names[i] = inst.Name
	}
	shares := make([]chart.Series, len(race.All))
	for j, rc := range race.All {
		vals := make([]float64, len(extremes))
		for i, inst := range extremes {
			vals[i] = inst.Shares[rc]
		}
		shares[j] = chart.Series{Name: rc.Label(), Values: vals}
	}
	figs = append(figs, newFigure("top_and_worst.png", func() (chart.Figure, error) {
		return chart.GroupedBars(fmt.Sprintf("Top/Bottom %d Universities in Racial Diversity", n),
			"Institution Name", "Racial Percentages", names, shares)
	}))

	years, err := race.ByYear(r.ds.Racial)
	if err != nil {
		return fmt.Errorf("enrollment by year: %w", err)
	}
	years = race.Since(years, r.cfg.Analysis.SinceYear)
	x := make([]float64, len(years))
	labels := make([]string, len(years))
	percentSeries := make([]chart.Series, len(race.All))
	countSeries := make([]chart.Series, len(race.All))
	for j, rc := range race.All {
		percentSeries[j] = chart.Series{Name: rc.Label(), Values: make([]float64, len(years))}
		countSeries[j] = chart.Series{Name: rc.Label(), Values: make([]float64, len(years))}
	}
	for i, y := range years {
		x[i] = float64(y.Year)
		labels[i] = strconv.Itoa(y.Year)
		heads := y.Headcounts()
		for j, rc := range race.All {
			percentSeries[j].Values[i] = y.Composition[rc]
			countSeries[j].Values[i] = heads[rc]
		}
	}
	figs = append(figs,
		newFigure("race_percent_over_time.png", func() (chart.Figure, error) {
			return chart.StackedBars("Enrollment Percentages By Race Across the Nation", "Year", "Percentage", labels, percentSeries)
		}),
		newFigure("race_count_over_time.png", func() (chart.Figure, error) {
			return chart.Lines("Enrollment By Race Across the Nation", "Year", "Enrollment Count", x, countSeries)
		}),
	)

	return r.render(ctx, figs)
}
