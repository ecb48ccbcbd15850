package timeutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrBadDate reports an origin date that matches none of the accepted layouts.
	ErrBadDate = errors.New("invalid origin date")
	// ErrBadTime reports an origin time-of-day that cannot be parsed.
	ErrBadTime = errors.New("invalid origin time")
	// ErrBadBound reports a window bound that cannot be parsed.
	ErrBadBound = errors.New("invalid time bound")
)

// dateLayouts are tried in order. Catalogs write MM/DD/YYYY.
var dateLayouts = []string{"1/2/2006", "2006-01-02", "1/2/06"}

// timeLayouts accept an optional fractional second after the seconds field,
// which time.Parse allows even when the layout omits it.
var timeLayouts = []string{"15:04:05", "15:04"}

// boundLayouts are accepted for plot_start_time / plot_end_time.
var boundLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04:05",
}

// midnight is the reference instant time.Parse uses for time-only layouts.
var midnight = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)

// CombineOrigin builds an origin timestamp from a catalog date (MM/DD/YYYY),
// a time of day (HH:MM:SS) and a millisecond offset. The millisecond offset is
// added as its own duration so it is never truncated by date/time parsing.
// The result is in UTC.
func CombineOrigin(date, timeOfDay string, millisecond int) (time.Time, error) {
	day, err := parseDate(strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, err
	}
	tod, err := parseTimeOfDay(strings.TrimSpace(timeOfDay))
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(tod).Add(time.Duration(millisecond) * time.Millisecond), nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w %q", ErrBadDate, s)
}

func parseTimeOfDay(s string) (time.Duration, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.Sub(midnight), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrBadTime, s)
}

// ParseBound parses a configured window bound such as "2025-01-19 14:03:07".
// Values without a zone are read as UTC, matching catalog origin times.
func ParseBound(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range boundLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w %q", ErrBadBound, s)
}
