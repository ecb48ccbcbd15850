// Package units provides shared constants and conversions for length units
package units

import "fmt"

// Unit constants
const (
	Feet   = "ft"
	Meters = "m"
)

// metersPerFoot is the international foot.
const metersPerFoot = 0.3048

// ValidUnits contains all valid unit values
var ValidUnits = []string{Feet, Meters}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "ft, m"
}

// ConvertLength converts a length between feet and meters.
// Source catalogs and surveys store every length in feet.
func ConvertLength(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	switch {
	case from == Feet && to == Meters:
		return v * metersPerFoot
	case from == Meters && to == Feet:
		return v / metersPerFoot
	default:
		return v // unknown pair, leave untouched
	}
}

// Annotate appends a unit suffix to a column or axis name, e.g. "Easting (ft)".
func Annotate(name, unit string) string {
	if unit == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, unit)
}
