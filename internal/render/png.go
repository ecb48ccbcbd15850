package render

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/msview/internal/scene"
	"github.com/banshee-data/msview/internal/units"
)

// PlotPNG renders a plan view (Easting vs Northing) of a scene as PNG.
type PlotPNG struct {
	W      io.Writer
	Width  vg.Length
	Height vg.Length
	Units  string
}

// Render writes the scene as PNG to r.W.
func (r *PlotPNG) Render(s *scene.Scene) error {
	if r.W == nil {
		return fmt.Errorf("png: no output writer")
	}
	u := units.Feet
	if units.IsValid(r.Units) {
		u = r.Units
	}
	length := func(ft float64) float64 { return units.ConvertLength(ft, units.Feet, u) }

	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = units.Annotate("Easting", u)
	p.Y.Label.Text = units.Annotate("Northing", u)
	p.Legend.Top = true

	for _, c := range s.PointClouds() {
		if c.Len() == 0 {
			continue
		}
		pts := make(plotter.XYs, c.Len())
		for i, pos := range c.Positions {
			pts[i] = plotter.XY{X: length(pos.X), Y: length(pos.Y)}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("png: point cloud %q: %w", c.Name, err)
		}
		sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{
				Color:  toColor(c.Color(i)),
				Radius: vg.Points(max(1, c.Sizes[i]/SizeRef)),
				Shape:  draw.CircleGlyph{},
			}
		}
		p.Add(sc)
		p.Legend.Add(c.Name, sc)
	}

	for _, l := range s.Polylines() {
		if l.Len() == 0 {
			continue
		}
		pts := make(plotter.XYs, l.Len())
		for i, pos := range l.Positions {
			pts[i] = plotter.XY{X: length(pos.X), Y: length(pos.Y)}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("png: polyline %q: %w", l.Label, err)
		}
		line.Color = toColor(l.StrokeColor)
		line.Width = vg.Points(l.StrokeWidth)
		p.Add(line)
		p.Legend.Add(l.Label, line)
	}

	w, h := r.Width, r.Height
	if w <= 0 {
		w = 10 * vg.Inch
	}
	if h <= 0 {
		h = 10 * vg.Inch
	}
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return fmt.Errorf("png: %w", err)
	}
	if _, err := wt.WriteTo(r.W); err != nil {
		return fmt.Errorf("png: write: %w", err)
	}
	return nil
}

var _ scene.Renderer = (*PlotPNG)(nil)
