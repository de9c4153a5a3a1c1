package report

import (
	"context"
	"fmt"
	"image/color"

	"edustats/pkg/chart"
	"edustats/pkg/demographics"
	"edustats/pkg/race"
)

var tuitionColors = map[race.Race]color.Color{
	race.Black:    chart.Red,
	race.Asian:    chart.Blue,
	race.Hispanic: chart.Green,
	race.White:    chart.Purple,
}

func genderRegions(rows []demographics.GenderShare, value func(demographics.GenderShare) float64) []chart.Region {
	regions := make([]chart.Region, 0, len(rows))
	for _, g := range rows {
		if g.Boundary == nil {
			continue
		}
		regions = append(regions, chart.Region{Name: g.State, Shape: g.Boundary.Geometry, Value: value(g)})
	}
	return regions
}

func (r *Runner) demographics(ctx context.Context) error {
	ipeds := r.ds.IPEDS
	var figs []figure

	for _, rc := range demographics.TuitionRaces {
		pts, err := demographics.RaceTuition(ipeds, rc)
		if err != nil {
			return fmt.Errorf("%s tuition: %w", rc, err)
		}
		scatter := make([]chart.Point, len(pts))
		for i, p := range pts {
			scatter[i] = chart.Point{X: p.Tuition, Y: p.Count, Size: p.Share}
		}
		label := rc.Label()
		c := tuitionColors[rc]
		figs = append(figs, newFigure(label+"_enrollment_tuition.png", func() (chart.Figure, error) {
			return chart.Scatter(
				fmt.Sprintf("Correlation Between %s Population and Tuition", label),
				"Tuition ($)",
				fmt.Sprintf("Number of %s People In Institution", label),
				scatter, c)
		}))
	}

	gender, err := demographics.GenderByState(ipeds, r.states)
	if err != nil {
		return fmt.Errorf("gender by state: %w", err)
	}
	women := genderRegions(gender, func(g demographics.GenderShare) float64 { return g.Women })
	men := genderRegions(gender, func(g demographics.GenderShare) float64 { return g.Men })
	gf := newFigure("geospatial_gender.png", func() (chart.Figure, error) {
		wm, err := chart.Choropleth("Avg Enrollment % of Women Per State", "", women, chart.MapXMin, chart.MapXMaxNarrow)
		if err != nil {
			return nil, err
		}
		mm, err := chart.Choropleth("Avg Enrollment % of Men Per State", "", men, chart.MapXMin, chart.MapXMaxNarrow)
		if err != nil {
			return nil, err
		}
		return chart.Stack("Average Enrollment By Gender Across the Nation", wm, mm), nil
	})
	gf.h = 2 * chart.Height
	figs = append(figs, gf)

	all, err := demographics.GenderShares(ipeds)
	if err != nil {
		return fmt.Errorf("gender shares: %w", err)
	}
	n := r.cfg.Analysis.TopN
	extremes := demographics.GenderExtremes(all, n)
	states := make([]string, len(extremes))
	womenPct := make([]float64, len(extremes))
	menPct := make([]float64, len(extremes))
	for i, g := range extremes {
		states[i], womenPct[i], menPct[i] = g.State, g.Women, g.Men
	}
	figs = append(figs, newFigure("gender_barplot.png", func() (chart.Figure, error) {
		return chart.StackedBars(fmt.Sprintf("Gender Enrollment Percentages By State: Top/Bottom %d", n),
			"State", "Percentage", states,
			[]chart.Series{{Name: "Women", Values: womenPct}, {Name: "Men", Values: menPct}})
	}))

	firstGen, err := demographics.FirstGenSelectivity(r.ds.Recent)
	if err != nil {
		return fmt.Errorf("first generation: %w", err)
	}
	r.log.Info("first generation vs admission rate", "pairs", firstGen.Len(), "r", firstGen.Correlation())
	figs = append(figs, newFigure("first_gen_admission.png", func() (chart.Figure, error) {
		return chart.RegPlot("Correlation Between First Gen Percent and Admissions",
			"Admissions Rate %", "% of First Gen Students", firstGen.X, firstGen.Y, chart.Blue)
	}))

	res, err := demographics.Residency(ipeds)
	if err != nil {
		return fmt.Errorf("residency: %w", err)
	}
	r.log.Info("residency vs admission rate",
		"in_state_r", res.InState.Correlation(),
		"out_of_state_r", res.OutOfState.Correlation(),
		"foreign_r", res.Foreign.Correlation(),
	)
	rf := newFigure("residency_and_admissions.png", func() (chart.Figure, error) {
		const xl, yl = "Admissions Rate (%)", "Number of Students"
		in, err := chart.RegPlot("Number of In-State versus Admission Rate", xl, yl, res.InState.X, res.InState.Y, chart.Blue)
		if err != nil {
			return nil, err
		}
		out, err := chart.RegPlot("Number of Out-of-State versus Admission Rate", xl, yl, res.OutOfState.X, res.OutOfState.Y, chart.Red)
		if err != nil {
			return nil, err
		}
		foreign, err := chart.RegPlot("Number of International Students versus Admission Rate", xl, yl, res.Foreign.X, res.Foreign.Y, chart.Green)
		if err != nil {
			return nil, err
		}
		return chart.Stack("Correlation Between In State, Out of State, and International Student Enrollment versus Admission Rate",
			in, out, foreign), nil
	})
	rf.h = 3 * chart.Height
	figs = append(figs, rf)

	return r.render(ctx, figs)
}
