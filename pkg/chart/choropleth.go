package chart

import (
	"image/color"
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Longitude window of the state maps. The wide western edge keeps Alaska's
// Aleutians in frame.
const (
	MapXMin       = -200.0
	MapXMax       = -35.0
	MapXMaxNarrow = -50.0
)

var missingFill = color.Gray{Y: 220}

// Region is one shaded area of a choropleth.
type Region struct {
	Name  string
	Shape orb.MultiPolygon
	Value float64 // NaN draws the region grey
}

// Map is a choropleth with its colour bar.
type Map struct {
	plot *plot.Plot
	bar  *plot.Plot
}

// Choropleth shades each region by value on a smooth blue-red scale. Regions
// without a shape are skipped.
func Choropleth(title, ylabel string, regions []Region, xmin, xmax float64) (*Map, error) {
	cm := moreland.SmoothBlueRed()
	lo, hi := valueRange(regions)
	cm.SetMax(hi)
	cm.SetMin(lo)

	p := newPlot(title, "", ylabel)
	for _, r := range regions {
		if len(r.Shape) == 0 {
			continue
		}
		fill := color.Color(missingFill)
		if !math.IsNaN(r.Value) {
			c, err := cm.At(r.Value)
			if err != nil {
				return nil, err
			}
			fill = c
		}
		for _, poly := range r.Shape {
			pg, err := plotter.NewPolygon(rings(poly)...)
			if err != nil {
				return nil, err
			}
			pg.Color = fill
			pg.LineStyle.Color = color.White
			pg.LineStyle.Width = vg.Points(0.3)
			p.Add(pg)
		}
	}
	p.X.Min, p.X.Max = xmin, xmax

	return &Map{plot: p, bar: colorBar(cm)}, nil
}

// Draw renders the map with the colour bar to its right.
func (m *Map) Draw(dc draw.Canvas) {
	w := dc.Max.X - dc.Min.X
	barW := vg.Inch
	if barW > w/4 {
		barW = w / 4
	}
	m.plot.Draw(draw.Crop(dc, 0, -barW, 0, 0))
	m.bar.Draw(draw.Crop(dc, w-barW, 0, 0, 0))
}

func colorBar(cm palette.ColorMap) *plot.Plot {
	p := plot.New()
	p.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})
	p.HideX()
	return p
}

func rings(poly orb.Polygon) []plotter.XYer {
	out := make([]plotter.XYer, 0, len(poly))
	for _, ring := range poly {
		xys := make(plotter.XYs, len(ring))
		for i, pt := range ring {
			xys[i] = plotter.XY{X: pt.Lon(), Y: pt.Lat()}
		}
		out = append(out, xys)
	}
	return out
}

func valueRange(regions []Region) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range regions {
		if math.IsNaN(r.Value) || len(r.Shape) == 0 {
			continue
		}
		lo = math.Min(lo, r.Value)
		hi = math.Max(hi, r.Value)
	}
	switch {
	case math.IsInf(lo, 1):
		return 0, 1
	case lo == hi:
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}
