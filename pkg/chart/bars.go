package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// StackedBars draws one bar per category with the series stacked in order.
func StackedBars(title, xlabel, ylabel string, categories []string, series []Series) (*plot.Plot, error) {
	p := newPlot(title, xlabel, ylabel)
	width := barWidth(len(categories), 1)

	var below *plotter.BarChart
	for i, s := range series {
		if len(s.Values) != len(categories) {
			return nil, fmt.Errorf("chart: series %q has %d values for %d categories", s.Name, len(s.Values), len(categories))
		}
		bc, err := plotter.NewBarChart(plotter.Values(finite(s.Values)), width)
		if err != nil {
			return nil, err
		}
		bc.Color = SeriesColor(i)
		bc.LineStyle.Width = 0
		if below != nil {
			bc.StackOn(below)
		}
		below = bc
		p.Add(bc)
		p.Legend.Add(s.Name, bc)
	}
	p.Legend.Top = true
	p.NominalX(categories...)
	p.X.Tick.Label.Rotation = 0.8
	p.X.Tick.Label.XAlign = text.XRight
	return p, nil
}

// GroupedBars draws the series side by side within each category.
func GroupedBars(title, xlabel, ylabel string, categories []string, series []Series) (*plot.Plot, error) {
	p := newPlot(title, xlabel, ylabel)
	width := barWidth(len(categories), len(series))

	mid := float64(len(series)-1) / 2
	for i, s := range series {
		if len(s.Values) != len(categories) {
			return nil, fmt.Errorf("chart: series %q has %d values for %d categories", s.Name, len(s.Values), len(categories))
		}
		bc, err := plotter.NewBarChart(plotter.Values(finite(s.Values)), width)
		if err != nil {
			return nil, err
		}
		bc.Color = SeriesColor(i)
		bc.LineStyle.Width = 0
		bc.Offset = vg.Length(float64(i)-mid) * width
		p.Add(bc)
		p.Legend.Add(s.Name, bc)
	}
	p.Legend.Top = true
	p.NominalX(categories...)
	p.X.Tick.Label.Rotation = 0.8
	p.X.Tick.Label.XAlign = text.XRight
	return p, nil
}

func barWidth(categories, perCategory int) vg.Length {
	if categories == 0 || perCategory == 0 {
		return vg.Points(10)
	}
	w := 4 * vg.Inch / vg.Length(categories*perCategory)
	if w > vg.Points(30) {
		w = vg.Points(30)
	}
	return w
}
