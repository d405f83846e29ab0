// Package chart renders the analysis output as PNG files using gonum/plot.
package chart

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	colorRed    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	colorGreen  = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	colorPurple = color.RGBA{R: 148, G: 103, B: 189, A: 255}
	colorBlue   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	colorCoral  = color.RGBA{R: 255, G: 127, B: 80, A: 255}
)

// addScatter adds a scatter layer in the given color.
func addScatter(p *plot.Plot, pts plotter.XYs, c color.Color) error {
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Color = c
	sc.GlyphStyle.Radius = vg.Points(2)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)
	return nil
}

// addFitLine fits an OLS line to the points and draws it across their x range.
func addFitLine(p *plot.Plot, pts plotter.XYs, c color.Color) error {
	if len(pts) < 2 {
		return nil
	}
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, pt := range pts {
		xs[i] = pt.X
		ys[i] = pt.Y
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	minX, maxX := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
	}
	fit := plotter.XYs{
		{X: minX, Y: alpha + beta*minX},
		{X: maxX, Y: alpha + beta*maxX},
	}
	ln, err := plotter.NewLine(fit)
	if err != nil {
		return err
	}
	ln.LineStyle.Color = c
	ln.LineStyle.Width = vg.Points(1.5)
	p.Add(ln)
	return nil
}

// addLine adds a solid line layer.
func addLine(p *plot.Plot, pts plotter.XYs, c color.Color) (*plotter.Line, error) {
	ln, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	ln.LineStyle.Color = c
	ln.LineStyle.Width = vg.Points(1.5)
	p.Add(ln)
	return ln, nil
}

// addDashedLine adds a dashed line layer, used for confidence band bounds.
func addDashedLine(p *plot.Plot, pts plotter.XYs, c color.Color) error {
	ln, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	ln.LineStyle.Color = c
	ln.LineStyle.Width = vg.Points(1)
	ln.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(ln)
	return nil
}

// trendPlot builds a titled scatter-plus-fit plot of a series against year.
func trendPlot(title, yLabel string, pts plotter.XYs, c color.Color) (*plot.Plot, error) {
	return scatterFitPlot(title, "Year", yLabel, pts, c)
}

// scatterFitPlot builds a titled x-vs-y scatter with a fitted line.
func scatterFitPlot(title, xLabel, yLabel string, pts plotter.XYs, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	if err := addScatter(p, pts, colorBlue); err != nil {
		return nil, err
	}
	if err := addFitLine(p, pts, c); err != nil {
		return nil, err
	}
	return p, nil
}

// barPlot builds a titled bar chart with nominal x labels.
func barPlot(title, xLabel, yLabel string, values plotter.Values, labels []string, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Color = c
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

// writeTiled lays plots out on a grid and writes the canvas as a single PNG.
func writeTiled(path string, plots [][]*plot.Plot, width, height vg.Length) error {
	img := vgimg.New(width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(plots),
		Cols: len(plots[0]),
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			if plots[i][j] != nil {
				plots[i][j].Draw(canvases[i][j])
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
