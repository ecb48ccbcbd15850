package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/banshee-data/msview/internal/catalog"
	"github.com/banshee-data/msview/internal/timeutil"
	"github.com/banshee-data/msview/internal/units"
	"github.com/banshee-data/msview/internal/visual"
)

// DefaultConfigPath is the path to the canonical view defaults file.
const DefaultConfigPath = "config/view.defaults.json"

// Built-in defaults used when a field is unset.
const (
	DefaultColorBy      = catalog.ColStage
	DefaultColorScale   = "Viridis"
	DefaultSizeBy       = catalog.ColMagnitude
	DefaultTitle        = "3D Bubble Chart of Cumulative Seismic Entries"
	DefaultDisplayUnits = units.Feet
)

// DefaultSizeRange is advisory; sizes are not clamped to it.
var DefaultSizeRange = [2]float64{10, 100}

// ViewConfig is the parameter surface of the viewer. Unset (nil) fields take
// the built-in defaults through the Get* methods.
type ViewConfig struct {
	// Encoding
	ColorBy    *string   `json:"color_by,omitempty"`
	ColorScale *string   `json:"color_scale,omitempty"`
	SizeBy     *string   `json:"size_by,omitempty"`
	SizeRange  []float64 `json:"size_range,omitempty"` // [min, max]

	// Window bounds, e.g. "2025-01-19 14:03:00". Unset bounds follow the data.
	PlotStartTime *string `json:"plot_start_time,omitempty"`
	PlotEndTime   *string `json:"plot_end_time,omitempty"`

	Title        *string `json:"title,omitempty"`
	RowLimit     *int    `json:"row_limit,omitempty"` // 0 means no cap
	DisplayUnits *string `json:"display_units,omitempty"`

	// Sources
	CatalogPath *string      `json:"catalog_path,omitempty"`
	Wells       []WellSource `json:"wells,omitempty"`
}

// WellSource names one survey file and its layout ("header" or "fixed").
type WellSource struct {
	Path         string `json:"path"`
	Format       string `json:"format,omitempty"`
	PreambleRows *int   `json:"preamble_rows,omitempty"`
}

// Helper functions to create pointers
func ptrString(v string) *string { return &v }
func ptrInt(v int) *int          { return &v }

// EmptyViewConfig returns a ViewConfig with all fields unset.
func EmptyViewConfig() *ViewConfig {
	return &ViewConfig{}
}

// DefaultViewConfig returns a ViewConfig with every defaulted field set.
func DefaultViewConfig() *ViewConfig {
	return &ViewConfig{
		ColorBy:      ptrString(DefaultColorBy),
		ColorScale:   ptrString(DefaultColorScale),
		SizeBy:       ptrString(DefaultSizeBy),
		SizeRange:    []float64{DefaultSizeRange[0], DefaultSizeRange[1]},
		Title:        ptrString(DefaultTitle),
		RowLimit:     ptrInt(0),
		DisplayUnits: ptrString(DefaultDisplayUnits),
	}
}

// LoadViewConfig loads a ViewConfig from a JSON or YAML file.
// Fields omitted from the file keep their defaults, so partial configs are safe.
func LoadViewConfig(path string) (*ViewConfig, error) {
	cleanPath := filepath.Clean(path)
	switch ext := filepath.Ext(cleanPath); ext {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	// JSON is a subset of YAML, so one parser serves both.
	k := koanf.New(".")
	if err := k.Load(file.Provider(cleanPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := EmptyViewConfig()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents. Panics if the file cannot be loaded; intended
// for test setup.
func MustLoadDefaultConfig() *ViewConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadViewConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Clone returns a deep copy of c.
func (c *ViewConfig) Clone() *ViewConfig {
	out := *c
	clonePtr := func(p *string) *string {
		if p == nil {
			return nil
		}
		return ptrString(*p)
	}
	out.ColorBy = clonePtr(c.ColorBy)
	out.ColorScale = clonePtr(c.ColorScale)
	out.SizeBy = clonePtr(c.SizeBy)
	out.PlotStartTime = clonePtr(c.PlotStartTime)
	out.PlotEndTime = clonePtr(c.PlotEndTime)
	out.Title = clonePtr(c.Title)
	out.DisplayUnits = clonePtr(c.DisplayUnits)
	out.CatalogPath = clonePtr(c.CatalogPath)
	if c.RowLimit != nil {
		out.RowLimit = ptrInt(*c.RowLimit)
	}
	if c.SizeRange != nil {
		out.SizeRange = append([]float64(nil), c.SizeRange...)
	}
	if c.Wells != nil {
		out.Wells = make([]WellSource, len(c.Wells))
		for i, w := range c.Wells {
			out.Wells[i] = w
			if w.PreambleRows != nil {
				out.Wells[i].PreambleRows = ptrInt(*w.PreambleRows)
			}
		}
	}
	return &out
}

// Validate checks that the configuration values are valid.
func (c *ViewConfig) Validate() error {
	if c.ColorBy != nil && !catalog.IsNumericAttribute(*c.ColorBy) {
		return fmt.Errorf("color_by: %w %q", catalog.ErrUnknownAttribute, *c.ColorBy)
	}
	if c.SizeBy != nil && !catalog.IsNumericAttribute(*c.SizeBy) {
		return fmt.Errorf("size_by: %w %q", catalog.ErrUnknownAttribute, *c.SizeBy)
	}
	if c.ColorScale != nil {
		if _, err := visual.LookupScale(*c.ColorScale); err != nil {
			return fmt.Errorf("color_scale: %w", err)
		}
	}
	if c.SizeRange != nil {
		if len(c.SizeRange) != 2 {
			return fmt.Errorf("size_range must have 2 values, got %d", len(c.SizeRange))
		}
		if c.SizeRange[0] < 0 || c.SizeRange[0] > c.SizeRange[1] {
			return fmt.Errorf("size_range must satisfy 0 <= min <= max, got %v", c.SizeRange)
		}
	}

	// Bounds are checked one at a time. A start after the end is allowed and
	// selects no events.
	if _, err := c.GetPlotStartTime(); err != nil {
		return fmt.Errorf("plot_start_time: %w", err)
	}
	if _, err := c.GetPlotEndTime(); err != nil {
		return fmt.Errorf("plot_end_time: %w", err)
	}

	if c.RowLimit != nil && *c.RowLimit < 0 {
		return fmt.Errorf("row_limit must be non-negative, got %d", *c.RowLimit)
	}
	if c.DisplayUnits != nil && !units.IsValid(*c.DisplayUnits) {
		return fmt.Errorf("display_units must be one of %s, got %q", units.GetValidUnitsString(), *c.DisplayUnits)
	}

	for i, w := range c.Wells {
		if w.Path == "" {
			return fmt.Errorf("wells[%d]: path is required", i)
		}
		if _, err := catalog.ParseSurveyFormat(w.Format); err != nil {
			return fmt.Errorf("wells[%d]: %w", i, err)
		}
		if w.PreambleRows != nil && *w.PreambleRows < 0 {
			return fmt.Errorf("wells[%d]: preamble_rows must be non-negative, got %d", i, *w.PreambleRows)
		}
	}
	return nil
}

// GetColorBy returns the color_by value or the default.
func (c *ViewConfig) GetColorBy() string {
	if c.ColorBy == nil {
		return DefaultColorBy
	}
	return *c.ColorBy
}

// GetColorScale returns the color_scale value or the default.
func (c *ViewConfig) GetColorScale() string {
	if c.ColorScale == nil {
		return DefaultColorScale
	}
	return *c.ColorScale
}

// GetSizeBy returns the size_by value or the default.
func (c *ViewConfig) GetSizeBy() string {
	if c.SizeBy == nil {
		return DefaultSizeBy
	}
	return *c.SizeBy
}

// GetSizeRange returns the size_range value or the default.
func (c *ViewConfig) GetSizeRange() [2]float64 {
	if len(c.SizeRange) != 2 {
		return DefaultSizeRange
	}
	return [2]float64{c.SizeRange[0], c.SizeRange[1]}
}

// GetPlotStartTime parses plot_start_time. Nil means unset.
func (c *ViewConfig) GetPlotStartTime() (*time.Time, error) {
	return parseBound(c.PlotStartTime)
}

// GetPlotEndTime parses plot_end_time. Nil means unset.
func (c *ViewConfig) GetPlotEndTime() (*time.Time, error) {
	return parseBound(c.PlotEndTime)
}

func parseBound(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := timeutil.ParseBound(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTitle returns the title value or the default.
func (c *ViewConfig) GetTitle() string {
	if c.Title == nil {
		return DefaultTitle
	}
	return *c.Title
}

// GetRowLimit returns the row_limit value or the default (no cap).
func (c *ViewConfig) GetRowLimit() int {
	if c.RowLimit == nil {
		return 0
	}
	return *c.RowLimit
}

// GetDisplayUnits returns the display_units value or the default.
func (c *ViewConfig) GetDisplayUnits() string {
	if c.DisplayUnits == nil {
		return DefaultDisplayUnits
	}
	return *c.DisplayUnits
}

// GetCatalogPath returns catalog_path, or "" when unset.
func (c *ViewConfig) GetCatalogPath() string {
	if c.CatalogPath == nil {
		return ""
	}
	return *c.CatalogPath
}

// SurveySources converts the wells list into loader sources.
func (c *ViewConfig) SurveySources() ([]catalog.SurveySource, error) {
	out := make([]catalog.SurveySource, 0, len(c.Wells))
	for i, w := range c.Wells {
		format, err := catalog.ParseSurveyFormat(w.Format)
		if err != nil {
			return nil, fmt.Errorf("wells[%d]: %w", i, err)
		}
		if w.PreambleRows != nil {
			format.PreambleRows = *w.PreambleRows
		}
		out = append(out, catalog.SurveySource{Path: w.Path, Format: format})
	}
	return out, nil
}

// SetColorBy sets color_by.
func (c *ViewConfig) SetColorBy(v string) { c.ColorBy = ptrString(v) }

// SetColorScale sets color_scale.
func (c *ViewConfig) SetColorScale(v string) { c.ColorScale = ptrString(v) }

// SetSizeBy sets size_by.
func (c *ViewConfig) SetSizeBy(v string) { c.SizeBy = ptrString(v) }

// SetSizeRange sets size_range.
func (c *ViewConfig) SetSizeRange(lo, hi float64) { c.SizeRange = []float64{lo, hi} }

// SetPlotStartTime sets plot_start_time; "" clears it.
func (c *ViewConfig) SetPlotStartTime(v string) { c.PlotStartTime = optional(v) }

// SetPlotEndTime sets plot_end_time; "" clears it.
func (c *ViewConfig) SetPlotEndTime(v string) { c.PlotEndTime = optional(v) }

// SetTitle sets title.
func (c *ViewConfig) SetTitle(v string) { c.Title = ptrString(v) }

// SetRowLimit sets row_limit.
func (c *ViewConfig) SetRowLimit(n int) { c.RowLimit = ptrInt(n) }

// SetDisplayUnits sets display_units.
func (c *ViewConfig) SetDisplayUnits(v string) { c.DisplayUnits = ptrString(v) }

// SetCatalogPath sets catalog_path.
func (c *ViewConfig) SetCatalogPath(v string) { c.CatalogPath = optional(v) }

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return ptrString(v)
}
