// Package render provides scene renderers: an interactive 3D HTML chart and a
// static plan-view PNG.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/banshee-data/msview/internal/scene"
	"github.com/banshee-data/msview/internal/units"
)

// SizeRef divides marker sizes into echarts symbol diameters.
const SizeRef = 25.0

// ECharts renders a scene as a standalone HTML page with one 3D chart.
type ECharts struct {
	W      io.Writer
	Units  string // display length unit, "ft" or "m"
	Width  string // CSS width, e.g. "1200px"
	Height string
}

// Render writes the scene as HTML to e.W.
func (e *ECharts) Render(s *scene.Scene) error {
	if e.W == nil {
		return fmt.Errorf("echarts: no output writer")
	}
	u := e.displayUnits()

	chart := charts.NewScatter3D()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: s.Title,
			ChartID:   strings.ReplaceAll(s.ID.String(), "-", ""),
			Width:     valueOr(e.Width, "1200px"),
			Height:    valueOr(e.Height, "900px"),
		}),
		charts.WithTitleOpts(opts.Title{Title: s.Title, Subtitle: subtitle(s)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Formatter: "{b}"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: units.Annotate("Easting", u), Show: opts.Bool(true)}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: units.Annotate("Northing", u), Show: opts.Bool(true)}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: units.Annotate("Depth", u), Show: opts.Bool(true)}),
	)

	for _, c := range s.PointClouds() {
		data := make([]opts.Chart3DData, c.Len())
		for i, p := range c.Positions {
			data[i] = opts.Chart3DData{
				Name:      c.HoverTexts[i],
				Value:     []interface{}{e.length(p.X), e.length(p.Y), e.length(p.Z), c.Sizes[i] / SizeRef},
				ItemStyle: &opts.ItemStyle{Color: c.Color(i)},
			}
		}
		// Symbol diameter is carried as the fourth value of each point.
		chart.AddSeries(c.Name, data, charts.WithScatterChartOpts(opts.ScatterChart{
			SymbolSize: opts.FuncOpts("function (val) { return val[3]; }"),
		}))
	}

	for _, l := range s.Polylines() {
		data := make([]opts.Chart3DData, l.Len())
		for i, p := range l.Positions {
			data[i] = opts.Chart3DData{Value: []interface{}{e.length(p.X), e.length(p.Y), e.length(p.Z)}}
		}
		chart.MultiSeries = append(chart.MultiSeries, charts.SingleSeries{
			Name:        l.Label,
			Type:        types.ChartLine3D,
			CoordSystem: types.ChartCartesian3D,
			Data:        data,
			LineStyle:   &opts.LineStyle{Color: cssHex(l.StrokeColor), Width: float32(l.StrokeWidth)},
		})
	}

	if err := chart.Render(e.W); err != nil {
		return fmt.Errorf("echarts: render %q: %w", s.Title, err)
	}
	return nil
}

func (e *ECharts) displayUnits() string {
	if units.IsValid(e.Units) {
		return e.Units
	}
	return units.Feet
}

func (e *ECharts) length(ft float64) float64 {
	return units.ConvertLength(ft, units.Feet, e.displayUnits())
}

// subtitle summarizes the color range of the first point cloud.
func subtitle(s *scene.Scene) string {
	clouds := s.PointClouds()
	if len(clouds) == 0 {
		return ""
	}
	c := clouds[0]
	if c.Len() == 0 {
		return fmt.Sprintf("%s: no events in window", c.ColorBy)
	}
	return fmt.Sprintf("%s: %g to %g (%s), %d events", c.ColorBy, c.Range.Min, c.Range.Max, c.Scale.Name, c.Len())
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

var _ scene.Renderer = (*ECharts)(nil)
