// Package catalog loads microseismic event catalogs and wellbore surveys into
// canonical, unit-annotated records.
package catalog

import "time"

// Source column names as written by the catalog export.
const (
	SrcFileName    = "File Name"
	SrcEasting     = "Easting"
	SrcNorthing    = "Northing"
	SrcDepth       = "Depth TVDSS"
	SrcOriginDate  = "Origin Time - Date (UTC)"
	SrcOriginTime  = "Origin Time - Time (UTC)"
	SrcMillisecond = "Origin Time - Millisecond (UTC)"
	SrcMagnitude   = "Brune Magnitude"
	SrcStage       = "Stage"
)

// Canonical column names. Everything downstream of the loader, including
// the color_by and size_by settings, refers to attributes by these names.
const (
	ColFileName       = SrcFileName
	ColEasting        = "Easting (ft)"
	ColNorthing       = "Northing (ft)"
	ColDepth          = "Depth TVDSS (ft)"
	ColOriginDate     = "Origin Time - Date (UTC) - MM/DD/YYYY"
	ColOriginTime     = "Origin Time - Time (UTC) - HH:MM:ss"
	ColMillisecond    = SrcMillisecond
	ColMagnitude      = SrcMagnitude
	ColStage          = SrcStage
	ColOriginDateTime = "Origin DateTime"
)

// EventColumns lists the source columns an event catalog must provide.
var EventColumns = []string{
	SrcFileName,
	SrcEasting,
	SrcNorthing,
	SrcDepth,
	SrcOriginDate,
	SrcOriginTime,
	SrcMillisecond,
	SrcMagnitude,
	SrcStage,
}

// CanonicalName maps a source column to its canonical name.
func CanonicalName(src string) string {
	switch src {
	case SrcEasting:
		return ColEasting
	case SrcNorthing:
		return ColNorthing
	case SrcDepth:
		return ColDepth
	case SrcOriginDate:
		return ColOriginDate
	case SrcOriginTime:
		return ColOriginTime
	default:
		return src
	}
}

// Position is an event location in feet.
type Position struct {
	Easting  float64
	Northing float64
	Depth    float64
}

// Event is one microseismic detection.
type Event struct {
	ID          string
	Position    Position
	Magnitude   float64
	Stage       int
	Date        string // MM/DD/YYYY as read
	TimeOfDay   string // HH:MM:SS as read
	Millisecond int
	Origin      time.Time // Date + TimeOfDay + Millisecond, UTC
}

// NumericAttributes lists the attribute names Event.Attribute resolves.
var NumericAttributes = []string{
	ColEasting,
	ColNorthing,
	ColDepth,
	ColMillisecond,
	ColMagnitude,
	ColStage,
}

// IsNumericAttribute reports whether name can be used for size or color encoding.
func IsNumericAttribute(name string) bool {
	for _, a := range NumericAttributes {
		if a == name {
			return true
		}
	}
	return false
}

// Attribute returns the numeric value of a canonical attribute.
func (e Event) Attribute(name string) (float64, bool) {
	switch name {
	case ColEasting:
		return e.Position.Easting, true
	case ColNorthing:
		return e.Position.Northing, true
	case ColDepth:
		return e.Position.Depth, true
	case ColMillisecond:
		return float64(e.Millisecond), true
	case ColMagnitude:
		return e.Magnitude, true
	case ColStage:
		return float64(e.Stage), true
	default:
		return 0, false
	}
}

// Station is one survey point along a wellbore, all lengths in feet.
type Station struct {
	Azimuth float64 // degrees
	TVD     float64
	NS      float64
	EW      float64
}

// Trajectory is an ordered wellbore survey. Station order is file order.
type Trajectory struct {
	Name     string
	Source   string
	Stations []Station
}
