package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"edustats/pkg/stats"
)

// Point is a scatter point with its glyph size in points squared.
type Point struct {
	X, Y, Size float64
}

func translucent(c color.Color, alpha uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}

// Scatter plots pts as translucent circles whose area follows Size.
func Scatter(title, xlabel, ylabel string, pts []Point, c color.Color) (*plot.Plot, error) {
	p := newPlot(title, xlabel, ylabel)
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	fill := translucent(c, 102)
	s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		r := math.Sqrt(math.Max(pts[i].Size, 1)) / 2
		return draw.GlyphStyle{Color: fill, Radius: vg.Points(r), Shape: draw.CircleGlyph{}}
	}
	p.Add(s)
	return p, nil
}

// RegPlot plots x against y with the least-squares line through them.
// Pairs with a missing side are dropped.
func RegPlot(title, xlabel, ylabel string, x, y []float64, c color.Color) (*plot.Plot, error) {
	x, y = stats.DropNaNPairs(x, y)
	p := newPlot(title, xlabel, ylabel)

	xys := make(plotter.XYs, len(x))
	for i := range x {
		xys[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = translucent(c, 128)
	s.GlyphStyle.Radius = vg.Points(2)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)

	if len(x) < 2 {
		return p, nil
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	lo, hi := stats.MinMax(x)
	fit, err := plotter.NewLine(plotter.XYs{
		{X: lo, Y: alpha + beta*lo},
		{X: hi, Y: alpha + beta*hi},
	})
	if err != nil {
		return p, nil
	}
	fit.LineStyle.Color = c
	fit.LineStyle.Width = vg.Points(2)
	p.Add(fit)
	return p, nil
}
