// Package visual derives marker size and color encodings from event attributes.
package visual

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/msview/internal/catalog"
)

// SizeScale multiplies |value| of the size attribute into a marker size.
const SizeScale = 100.0

// HoverTemplate formats the hover text of an event: id, stage, magnitude.
const HoverTemplate = "File: %s<br>Stage: %d<br>Magnitude: %.2f"

// ColorRange is the [Min, Max] span of the color attribute within the
// filtered events, so color normalization follows the active time window.
type ColorRange struct {
	Min float64
	Max float64
}

// Degenerate reports a zero-width range, e.g. a constant attribute or a
// single event. Renderers draw a degenerate range as one uniform color.
func (r ColorRange) Degenerate() bool {
	return r.Max <= r.Min
}

// Normalize maps v into [0, 1]. A degenerate range maps every value to the
// scale midpoint instead of dividing by zero.
func (r ColorRange) Normalize(v float64) float64 {
	if r.Degenerate() || math.IsNaN(v) {
		return 0.5
	}
	t := (v - r.Min) / (r.Max - r.Min)
	return math.Max(0, math.Min(1, t))
}

// Options selects the attributes and palette of an encoding.
type Options struct {
	SizeBy     string
	ColorBy    string
	ColorScale string

	// SizeRange is carried through to the encoding but not applied.
	SizeRange [2]float64
}

// Encoding holds per-event visual values, index-aligned with the events it
// was computed from.
type Encoding struct {
	SizeBy    string
	ColorBy   string
	Scale     ColorScale
	SizeRange [2]float64

	Sizes      []float64
	Colors     []float64
	Range      ColorRange
	HoverTexts []string
}

// Len returns the number of encoded events.
func (e Encoding) Len() int { return len(e.Sizes) }

// Map computes sizes (|value| × SizeScale), raw color values, the color
// range and hover texts for events. Empty input yields a valid empty encoding.
func Map(events []catalog.Event, opts Options) (Encoding, error) {
	if !catalog.IsNumericAttribute(opts.SizeBy) {
		return Encoding{}, fmt.Errorf("size_by %q: %w", opts.SizeBy, catalog.ErrUnknownAttribute)
	}
	if !catalog.IsNumericAttribute(opts.ColorBy) {
		return Encoding{}, fmt.Errorf("color_by %q: %w", opts.ColorBy, catalog.ErrUnknownAttribute)
	}
	scale, err := LookupScale(opts.ColorScale)
	if err != nil {
		return Encoding{}, err
	}

	enc := Encoding{
		SizeBy:     opts.SizeBy,
		ColorBy:    opts.ColorBy,
		Scale:      scale,
		SizeRange:  opts.SizeRange,
		Sizes:      make([]float64, len(events)),
		Colors:     make([]float64, len(events)),
		HoverTexts: make([]string, len(events)),
	}
	for i, e := range events {
		size, _ := e.Attribute(opts.SizeBy)
		color, _ := e.Attribute(opts.ColorBy)
		enc.Sizes[i] = math.Abs(size) * SizeScale
		enc.Colors[i] = color
		enc.HoverTexts[i] = HoverText(e)
	}
	if len(enc.Colors) > 0 {
		enc.Range = ColorRange{Min: floats.Min(enc.Colors), Max: floats.Max(enc.Colors)}
	}
	return enc, nil
}

// HoverText renders HoverTemplate for one event.
func HoverText(e catalog.Event) string {
	return fmt.Sprintf(HoverTemplate, e.ID, e.Stage, e.Magnitude)
}
