package drawable

import (
	"fmt"
	"slices"

	"github.com/banshee-data/msview/internal/catalog"
	"github.com/banshee-data/msview/internal/visual"
)

// EventCloudName names the point cloud built from the event catalog.
const EventCloudName = "Microseismic events"

// DefaultStrokeWidth is the well path stroke width.
const DefaultStrokeWidth = 3.0

// Palette holds the well stroke colors, cycled by well index.
var Palette = []string{"red", "blue", "green", "orange"}

// BuildPointCloud places one marker per event at (Easting, Northing, Depth).
// enc must have been computed from the same events.
func BuildPointCloud(events []catalog.Event, enc visual.Encoding) (*PointCloud, error) {
	if enc.Len() != len(events) {
		return nil, fmt.Errorf("%w: encoding has %d entries for %d events", ErrInvalidDrawable, enc.Len(), len(events))
	}
	c := &PointCloud{
		Name:       EventCloudName,
		Positions:  make([]Point3, len(events)),
		Sizes:      slices.Clone(enc.Sizes),
		Colors:     slices.Clone(enc.Colors),
		Range:      enc.Range,
		Scale:      enc.Scale,
		ColorBy:    enc.ColorBy,
		HoverTexts: slices.Clone(enc.HoverTexts),
	}
	for i, e := range events {
		c.Positions[i] = Point3{X: e.Position.Easting, Y: e.Position.Northing, Z: e.Position.Depth}
	}
	return c, nil
}

// BuildPolyline draws trajectory t as the index-th well: X=EW, Y=NS, Z=TVD.
// The label is the 1-based index followed by "H".
func BuildPolyline(t catalog.Trajectory, index int) *Polyline {
	l := &Polyline{
		Positions:   make([]Point3, len(t.Stations)),
		StrokeColor: Palette[index%len(Palette)],
		StrokeWidth: DefaultStrokeWidth,
		Label:       fmt.Sprintf("%dH", index+1),
	}
	for i, s := range t.Stations {
		l.Positions[i] = Point3{X: s.EW, Y: s.NS, Z: s.TVD}
	}
	return l
}

// BuildPolylines draws every trajectory in order.
func BuildPolylines(ts []catalog.Trajectory) []*Polyline {
	out := make([]*Polyline, len(ts))
	for i, t := range ts {
		out[i] = BuildPolyline(t, i)
	}
	return out
}
