// Package scene composes drawables into a single renderable scene.
package scene

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/msview/internal/drawable"
	"github.com/banshee-data/msview/internal/monitoring"
	"github.com/banshee-data/msview/internal/timeutil"
)

// Item is one composition input: a Single drawable or a Group of them.
type Item interface {
	members() []drawable.Drawable
}

type single struct{ d drawable.Drawable }

func (s single) members() []drawable.Drawable { return []drawable.Drawable{s.d} }

type group []drawable.Drawable

func (g group) members() []drawable.Drawable { return g }

// Single wraps one drawable.
func Single(d drawable.Drawable) Item { return single{d} }

// Group wraps an ordered set of drawables, such as all well paths.
// Groups do not nest.
func Group(ds ...drawable.Drawable) Item { return group(ds) }

// Diagnostic records a composition member that was skipped.
type Diagnostic struct {
	Item   int // index of the item in the Compose call
	Member int // index within a group, 0 for singles, -1 for a nil item
	Value  string
	Err    error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("Invalid object: item %d member %d: %s: %v", d.Item, d.Member, d.Value, d.Err)
}

var errNilMember = errors.New("nil drawable")

// Scene is an ordered set of valid drawables ready to render.
type Scene struct {
	ID          uuid.UUID
	Title       string
	GeneratedAt time.Time
	Drawables   []drawable.Drawable
	Diagnostics []Diagnostic
}

// PointClouds returns the scene's point clouds in order.
func (s *Scene) PointClouds() []*drawable.PointCloud {
	var out []*drawable.PointCloud
	for _, d := range s.Drawables {
		if c, ok := d.(*drawable.PointCloud); ok {
			out = append(out, c)
		}
	}
	return out
}

// Polylines returns the scene's polylines in order.
func (s *Scene) Polylines() []*drawable.Polyline {
	var out []*drawable.Polyline
	for _, d := range s.Drawables {
		if l, ok := d.(*drawable.Polyline); ok {
			out = append(out, l)
		}
	}
	return out
}

// Renderer displays a composed scene.
type Renderer interface {
	Render(s *Scene) error
}

// Composer builds scenes. Each Compose call returns a fresh scene.
type Composer struct {
	clock timeutil.Clock
}

// NewComposer returns a composer stamping scenes with clock. A nil clock
// uses the real clock.
func NewComposer(clock timeutil.Clock) *Composer {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Composer{clock: clock}
}

// Compose flattens items in order into a scene. Nil and invalid members are
// logged, recorded as diagnostics and skipped; they never abort composition.
func (c *Composer) Compose(title string, items ...Item) *Scene {
	s := &Scene{
		ID:          uuid.New(),
		Title:       title,
		GeneratedAt: c.clock.Now(),
	}

	for i, item := range items {
		if item == nil {
			s.reject(Diagnostic{Item: i, Member: -1, Value: "<nil>", Err: errNilMember})
			continue
		}
		for j, d := range item.members() {
			if d == nil {
				s.reject(Diagnostic{Item: i, Member: j, Value: "<nil>", Err: errNilMember})
				continue
			}
			if err := d.Validate(); err != nil {
				s.reject(Diagnostic{Item: i, Member: j, Value: d.String(), Err: err})
				continue
			}
			s.Drawables = append(s.Drawables, d)
		}
	}
	return s
}

func (s *Scene) reject(d Diagnostic) {
	monitoring.Warnf("%s", d)
	s.Diagnostics = append(s.Diagnostics, d)
}

// Show composes a scene and hands it to r.
func (c *Composer) Show(r Renderer, title string, items ...Item) (*Scene, error) {
	s := c.Compose(title, items...)
	if err := r.Render(s); err != nil {
		return s, fmt.Errorf("render scene %q: %w", title, err)
	}
	return s, nil
}
