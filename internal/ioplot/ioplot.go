// Package ioplot renders biplot layouts into image files.
//
// The drawing conventions follow the cleanplot style ecologists know:
// sites as labeled points, descriptors as segments radiating from the
// origin, and the equilibrium circle when the scaling has one. Both
// axes share one range so distances on paper mean what they mean in
// the ordination.
package ioplot

import (
	"image/color"
	"math"

	"github.com/vegdata/vegmat/pkg/ordination"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	siteColor   = color.RGBA{A: 255}
	arrowColor  = color.RGBA{R: 178, G: 34, B: 34, A: 255}
	circleColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// Render draws a biplot into the file at path. The image format
// follows the extension; .svg, .png and .pdf all work. Width and
// height are in inches.
func Render(
	path string,
	layout *ordination.BiplotLayout,
	widthIn, heightIn float64,
) error {
	if widthIn <= 0 {
		widthIn = 7
	}
	if heightIn <= 0 {
		heightIn = 7
	}

	p := plot.New()
	p.Title.Text = "Biplot, " + layout.Scaling.String()
	p.X.Label.Text = layout.XLabel
	p.Y.Label.Text = layout.YLabel
	p.Add(plotter.NewGrid())

	min, max := bounds(layout)
	p.X.Min, p.X.Max = min, max
	p.Y.Min, p.Y.Max = min, max

	if err := addSites(p, layout.Sites); err != nil {
		return RenderError(path, err)
	}
	if err := addArrows(p, layout.Arrows); err != nil {
		return RenderError(path, err)
	}
	if layout.EquilibriumRadius > 0 {
		if err := addCircle(p, layout.EquilibriumRadius); err != nil {
			return RenderError(path, err)
		}
	}

	w := vg.Length(widthIn) * vg.Inch
	h := vg.Length(heightIn) * vg.Inch
	if err := p.Save(w, h, path); err != nil {
		return RenderError(path, err)
	}
	return nil
}

// bounds returns one shared axis range covering every drawn element
// and the origin, padded a little.
func bounds(layout *ordination.BiplotLayout) (min, max float64) {
	extent := layout.EquilibriumRadius
	for _, pts := range [][]ordination.Point{layout.Sites, layout.Arrows} {
		for _, pt := range pts {
			extent = math.Max(extent, math.Abs(pt.X))
			extent = math.Max(extent, math.Abs(pt.Y))
		}
	}
	if extent == 0 {
		extent = 1
	}
	extent *= 1.08
	return -extent, extent
}

func addSites(p *plot.Plot, sites []ordination.Point) error {
	pts := make(plotter.XYs, len(sites))
	names := make([]string, len(sites))
	for i, s := range sites {
		pts[i].X, pts[i].Y = s.X, s.Y
		names[i] = s.Label
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle = draw.GlyphStyle{
		Color:  siteColor,
		Radius: vg.Points(2),
		Shape:  draw.CircleGlyph{},
	}
	p.Add(scatter)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: names})
	if err != nil {
		return err
	}
	labels.Offset = vg.Point{X: vg.Points(3), Y: vg.Points(3)}
	p.Add(labels)
	return nil
}

func addArrows(p *plot.Plot, arrows []ordination.Point) error {
	tips := make(plotter.XYs, len(arrows))
	names := make([]string, len(arrows))
	for i, a := range arrows {
		seg := plotter.XYs{{X: 0, Y: 0}, {X: a.X, Y: a.Y}}
		line, err := plotter.NewLine(seg)
		if err != nil {
			return err
		}
		line.LineStyle.Color = arrowColor
		line.LineStyle.Width = vg.Points(1)
		p.Add(line)

		tips[i].X, tips[i].Y = a.X, a.Y
		names[i] = a.Label
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: tips, Labels: names})
	if err != nil {
		return err
	}
	labels.Offset = vg.Point{X: vg.Points(3), Y: vg.Points(3)}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = arrowColor
	}
	p.Add(labels)
	return nil
}

// addCircle draws the equilibrium contribution circle as a dashed
// polygon.
func addCircle(p *plot.Plot, radius float64) error {
	const segments = 128
	pts := make(plotter.XYs, segments+1)
	for i := 0; i <= segments; i++ {
		angle := 2 * math.Pi * float64(i) / segments
		pts[i].X = radius * math.Cos(angle)
		pts[i].Y = radius * math.Sin(angle)
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Color = circleColor
	line.LineStyle.Width = vg.Points(0.75)
	line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(line)
	return nil
}
