package chart

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Lines draws each series against the shared x values.
func Lines(title, xlabel, ylabel string, x []float64, series []Series) (*plot.Plot, error) {
	p := newPlot(title, xlabel, ylabel)
	for i, s := range series {
		if len(s.Values) != len(x) {
			return nil, fmt.Errorf("chart: series %q has %d values for %d x positions", s.Name, len(s.Values), len(x))
		}
		xys := make(plotter.XYs, 0, len(x))
		for j := range x {
			if v := s.Values[j]; !math.IsNaN(v) {
				xys = append(xys, plotter.XY{X: x[j], Y: v})
			}
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = SeriesColor(i)
		l.LineStyle.Width = vg.Points(2)
		p.Add(l)
		p.Legend.Add(s.Name, l)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}
