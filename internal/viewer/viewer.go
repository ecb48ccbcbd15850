// Package viewer holds the loaded event catalog and well surveys and
// assembles them into scenes under the current view configuration.
package viewer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/banshee-data/msview/internal/catalog"
	"github.com/banshee-data/msview/internal/config"
	"github.com/banshee-data/msview/internal/drawable"
	"github.com/banshee-data/msview/internal/fsutil"
	"github.com/banshee-data/msview/internal/monitoring"
	"github.com/banshee-data/msview/internal/scene"
	"github.com/banshee-data/msview/internal/timeutil"
	"github.com/banshee-data/msview/internal/visual"
	"github.com/banshee-data/msview/internal/window"
)

// ErrNoCatalog is returned when an event cloud is requested before any
// catalog has been loaded.
var ErrNoCatalog = errors.New("no event catalog loaded")

// Params are the resolved settings of the event pipeline.
type Params struct {
	RowLimit   int
	Start, End *time.Time
	Encoding   visual.Options
}

// ParamsFrom resolves cfg into pipeline parameters.
func ParamsFrom(cfg *config.ViewConfig) (Params, error) {
	start, err := cfg.GetPlotStartTime()
	if err != nil {
		return Params{}, fmt.Errorf("plot_start_time: %w", err)
	}
	end, err := cfg.GetPlotEndTime()
	if err != nil {
		return Params{}, fmt.Errorf("plot_end_time: %w", err)
	}
	return Params{
		RowLimit: cfg.GetRowLimit(),
		Start:    start,
		End:      end,
		Encoding: visual.Options{
			SizeBy:     cfg.GetSizeBy(),
			ColorBy:    cfg.GetColorBy(),
			ColorScale: cfg.GetColorScale(),
			SizeRange:  cfg.GetSizeRange(),
		},
	}, nil
}

// BuildEventCloud caps, sorts, windows and encodes events into a point cloud.
// It does not modify events.
func BuildEventCloud(events []catalog.Event, p Params) (*drawable.PointCloud, error) {
	considered := window.SortByOrigin(window.Head(events, p.RowLimit))
	filtered := window.Filter(considered, p.Start, p.End)

	enc, err := visual.Map(filtered, p.Encoding)
	if err != nil {
		return nil, err
	}
	return drawable.BuildPointCloud(filtered, enc)
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithFileSystem sets the filesystem records are loaded from.
func WithFileSystem(fsys fsutil.FileSystem) Option {
	return func(v *Viewer) { v.fsys = fsys }
}

// WithClock sets the clock used to stamp scenes.
func WithClock(c timeutil.Clock) Option {
	return func(v *Viewer) { v.clock = c }
}

// Viewer holds the currently loaded records. Each load replaces what was
// held before; scenes are rebuilt on every request.
type Viewer struct {
	fsys  fsutil.FileSystem
	clock timeutil.Clock

	mu     sync.RWMutex
	cfg    *config.ViewConfig
	events []catalog.Event
	loaded bool
	wells  []catalog.Trajectory
}

// New returns a viewer using a copy of cfg. A nil cfg uses the defaults.
func New(cfg *config.ViewConfig, options ...Option) (*Viewer, error) {
	if cfg == nil {
		cfg = config.DefaultViewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	v := &Viewer{
		fsys:  fsutil.OSFileSystem{},
		clock: timeutil.RealClock{},
		cfg:   cfg.Clone(),
	}
	for _, o := range options {
		o(v)
	}
	return v, nil
}

// Config returns a copy of the viewer configuration.
func (v *Viewer) Config() *config.ViewConfig {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.cfg.Clone()
}

// SetConfig validates and installs a copy of cfg.
func (v *Viewer) SetConfig(cfg *config.ViewConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cfg = cfg.Clone()
	return nil
}

// LoadCatalog loads the event catalog at path, replacing any held events.
// On error the held events are left unchanged.
func (v *Viewer) LoadCatalog(path string) error {
	events, err := catalog.LoadEvents(v.fsys, path)
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = events
	v.loaded = true
	return nil
}

// LoadWells loads the surveys in order, replacing any held wells.
// On error the held wells are left unchanged.
func (v *Viewer) LoadWells(sources []catalog.SurveySource) error {
	wells, err := catalog.LoadSurveys(v.fsys, sources)
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.wells = wells
	return nil
}

// LoadConfigured loads the catalog and wells named by the configuration.
// Sources that are not configured are skipped.
func (v *Viewer) LoadConfigured() error {
	cfg := v.Config()
	if path := cfg.GetCatalogPath(); path != "" {
		if err := v.LoadCatalog(path); err != nil {
			return err
		}
	}
	if len(cfg.Wells) > 0 {
		sources, err := cfg.SurveySources()
		if err != nil {
			return err
		}
		if err := v.LoadWells(sources); err != nil {
			return err
		}
	}
	return nil
}

// Events returns a copy of the held events.
func (v *Viewer) Events() []catalog.Event {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]catalog.Event(nil), v.events...)
}

// Wells returns a copy of the held trajectories.
func (v *Viewer) Wells() []catalog.Trajectory {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]catalog.Trajectory(nil), v.wells...)
}

// EventCloud builds the event point cloud under the current configuration.
func (v *Viewer) EventCloud() (*drawable.PointCloud, error) {
	v.mu.RLock()
	events, loaded, cfg := v.events, v.loaded, v.cfg
	v.mu.RUnlock()

	if !loaded {
		return nil, ErrNoCatalog
	}
	p, err := ParamsFrom(cfg)
	if err != nil {
		return nil, err
	}
	return BuildEventCloud(events, p)
}

// WellLines builds one polyline per held trajectory.
func (v *Viewer) WellLines() []*drawable.Polyline {
	return drawable.BuildPolylines(v.Wells())
}

// Scene composes the event cloud, when a catalog is loaded, and the well
// lines into a fresh scene.
func (v *Viewer) Scene() (*scene.Scene, error) {
	items, err := v.items()
	if err != nil {
		return nil, err
	}
	return scene.NewComposer(v.clock).Compose(v.Config().GetTitle(), items...), nil
}

// Show composes a scene and hands it to r.
func (v *Viewer) Show(r scene.Renderer) (*scene.Scene, error) {
	items, err := v.items()
	if err != nil {
		return nil, err
	}
	return scene.NewComposer(v.clock).Show(r, v.Config().GetTitle(), items...)
}

func (v *Viewer) items() ([]scene.Item, error) {
	var items []scene.Item
	cloud, err := v.EventCloud()
	switch {
	case errors.Is(err, ErrNoCatalog):
		monitoring.Logf("viewer: no catalog loaded, showing wells only")
	case err != nil:
		return nil, err
	default:
		items = append(items, scene.Single(cloud))
	}
	if lines := v.WellLines(); len(lines) > 0 {
		items = append(items, scene.Group(drawable.Drawables(lines)...))
	}
	return items, nil
}
