// Package chart renders the analysis figures as PNG files with gonum/plot.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Default figure size.
const (
	Width  = 8 * vg.Inch
	Height = 6 * vg.Inch
)

// Figure is anything that can draw itself onto a canvas region. *plot.Plot
// satisfies it.
type Figure interface {
	Draw(dc draw.Canvas)
}

// Series is one named line or bar group.
type Series struct {
	Name   string
	Values []float64
}

// Named colours used across figures.
var (
	Red    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	Blue   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	Green  = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	Purple = color.RGBA{R: 148, G: 103, B: 189, A: 255}
)

// SeriesColor is the colour of the i-th series of a figure.
func SeriesColor(i int) color.Color { return plotutil.Color(i) }

// Save renders fig at w x h and writes it to path as PNG.
func Save(path string, w, h vg.Length, fig Figure) error {
	c := vgimg.New(w, h)
	fig.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("chart: write %s: %w", path, err)
	}
	return f.Close()
}

func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	return p
}

// Stack draws figures one above the other under a common title.
func Stack(title string, figs ...Figure) Figure {
	return stacked{title: title, figs: figs}
}

type stacked struct {
	title string
	figs  []Figure
}

func (s stacked) Draw(dc draw.Canvas) {
	sty := plot.New().Title.TextStyle
	sty.Font.Size = vg.Points(16)
	sty.XAlign = text.XCenter
	sty.YAlign = text.YTop

	pad := vg.Length(0)
	if s.title != "" {
		pad = sty.Font.Size * 2
		mid := dc.Min.X + (dc.Max.X-dc.Min.X)/2
		dc.FillText(sty, vg.Point{X: mid, Y: dc.Max.Y - sty.Font.Size/2}, s.title)
	}
	tiles := draw.Tiles{
		Rows:   len(s.figs),
		Cols:   1,
		PadTop: pad,
		PadY:   vg.Points(10),
	}
	for i, f := range s.figs {
		f.Draw(tiles.At(dc, 0, i))
	}
}

// finite replaces NaN and infinities with zero; bar charts reject them.
func finite(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[i] = v
		}
	}
	return out
}
