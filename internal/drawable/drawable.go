// Package drawable turns encoded events and well trajectories into
// renderer-independent drawables.
package drawable

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/msview/internal/visual"
)

// ErrInvalidDrawable is wrapped by every Validate failure.
var ErrInvalidDrawable = errors.New("invalid drawable")

// Kind identifies the concrete drawable type.
type Kind int

const (
	KindPointCloud Kind = iota
	KindPolyline
)

func (k Kind) String() string {
	switch k {
	case KindPointCloud:
		return "point-cloud"
	case KindPolyline:
		return "polyline"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Point3 is a position in scene coordinates (feet).
type Point3 struct {
	X, Y, Z float64
}

func (p Point3) finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsNaN(p.Z) &&
		!math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0) && !math.IsInf(p.Z, 0)
}

// Drawable is implemented only by *PointCloud and *Polyline.
type Drawable interface {
	Kind() Kind
	Len() int
	Validate() error
	String() string

	drawable()
}

// PointCloud is a set of sized, colored markers with per-point hover text.
type PointCloud struct {
	Name       string
	Positions  []Point3
	Sizes      []float64
	Colors     []float64 // raw color attribute values
	Range      visual.ColorRange
	Scale      visual.ColorScale
	ColorBy    string
	HoverTexts []string
}

func (*PointCloud) drawable() {}

// Kind returns KindPointCloud.
func (*PointCloud) Kind() Kind { return KindPointCloud }

// Len returns the number of points.
func (c *PointCloud) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Positions)
}

// Color returns the hex color of point i.
func (c *PointCloud) Color(i int) string {
	return c.Scale.HexAt(c.Range.Normalize(c.Colors[i]))
}

// Validate checks that all per-point slices line up and hold finite values.
func (c *PointCloud) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil point cloud", ErrInvalidDrawable)
	}
	n := len(c.Positions)
	if len(c.Sizes) != n || len(c.Colors) != n || len(c.HoverTexts) != n {
		return fmt.Errorf("%w: point cloud %q has %d positions, %d sizes, %d colors, %d hover texts",
			ErrInvalidDrawable, c.Name, n, len(c.Sizes), len(c.Colors), len(c.HoverTexts))
	}
	for i, p := range c.Positions {
		if !p.finite() {
			return fmt.Errorf("%w: point cloud %q position %d is not finite", ErrInvalidDrawable, c.Name, i)
		}
		if math.IsNaN(c.Sizes[i]) || math.IsInf(c.Sizes[i], 0) || c.Sizes[i] < 0 {
			return fmt.Errorf("%w: point cloud %q size %d is %v", ErrInvalidDrawable, c.Name, i, c.Sizes[i])
		}
	}
	return nil
}

func (c *PointCloud) String() string {
	if c == nil {
		return "point-cloud <nil>"
	}
	return fmt.Sprintf("point-cloud %q (%d points)", c.Name, len(c.Positions))
}

// Polyline is a connected 3D path with a uniform stroke.
type Polyline struct {
	Positions   []Point3
	StrokeColor string
	StrokeWidth float64
	Label       string
}

func (*Polyline) drawable() {}

// Kind returns KindPolyline.
func (*Polyline) Kind() Kind { return KindPolyline }

// Len returns the number of vertices.
func (l *Polyline) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Positions)
}

// Validate checks the vertices are finite and the stroke is drawable.
func (l *Polyline) Validate() error {
	if l == nil {
		return fmt.Errorf("%w: nil polyline", ErrInvalidDrawable)
	}
	if l.StrokeWidth <= 0 {
		return fmt.Errorf("%w: polyline %q stroke width %v", ErrInvalidDrawable, l.Label, l.StrokeWidth)
	}
	if l.StrokeColor == "" {
		return fmt.Errorf("%w: polyline %q has no stroke color", ErrInvalidDrawable, l.Label)
	}
	for i, p := range l.Positions {
		if !p.finite() {
			return fmt.Errorf("%w: polyline %q vertex %d is not finite", ErrInvalidDrawable, l.Label, i)
		}
	}
	return nil
}

func (l *Polyline) String() string {
	if l == nil {
		return "polyline <nil>"
	}
	return fmt.Sprintf("polyline %q (%d vertices)", l.Label, len(l.Positions))
}

// Drawables widens a slice of concrete drawables for scene composition.
func Drawables[T Drawable](ds []T) []Drawable {
	out := make([]Drawable, len(ds))
	for i, d := range ds {
		out[i] = d
	}
	return out
}
