// Package window restricts event sets to an origin-time interval.
//
// Every function returns a new slice and leaves its input untouched; resolved
// default bounds are returned to the caller, never stored.
package window

import (
	"slices"
	"time"

	"github.com/banshee-data/msview/internal/catalog"
)

// Window is an inclusive origin-time interval.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies in [Start, End].
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Inverted reports whether Start is after End. An inverted window matches nothing.
func (w Window) Inverted() bool {
	return w.Start.After(w.End)
}

// Span returns the earliest and latest origin times in events.
func Span(events []catalog.Event) (first, last time.Time, ok bool) {
	if len(events) == 0 {
		return time.Time{}, time.Time{}, false
	}
	first, last = events[0].Origin, events[0].Origin
	for _, e := range events[1:] {
		if e.Origin.Before(first) {
			first = e.Origin
		}
		if e.Origin.After(last) {
			last = e.Origin
		}
	}
	return first, last, true
}

// Resolve fills absent bounds with the min/max origin of events, the subset
// currently under consideration. ok is false when a bound is absent and
// events is empty, so there is nothing to default from.
func Resolve(events []catalog.Event, start, end *time.Time) (w Window, ok bool) {
	first, last, have := Span(events)
	switch {
	case start != nil:
		w.Start = *start
	case have:
		w.Start = first
	default:
		return Window{}, false
	}
	switch {
	case end != nil:
		w.End = *end
	case have:
		w.End = last
	default:
		return Window{}, false
	}
	return w, true
}

// Filter keeps the events whose origin lies in [start, end], preserving their
// relative order. Nil bounds default per Resolve. Bounds given out of order
// produce an empty result rather than an error.
func Filter(events []catalog.Event, start, end *time.Time) []catalog.Event {
	w, ok := Resolve(events, start, end)
	if !ok || w.Inverted() {
		return []catalog.Event{}
	}
	return Apply(events, w)
}

// Apply keeps the events inside w, preserving order.
func Apply(events []catalog.Event, w Window) []catalog.Event {
	out := make([]catalog.Event, 0, len(events))
	for _, e := range events {
		if w.Contains(e.Origin) {
			out = append(out, e)
		}
	}
	return out
}

// Head returns the first n events. n <= 0 means no cap.
func Head(events []catalog.Event, n int) []catalog.Event {
	if n <= 0 || n >= len(events) {
		return slices.Clone(events)
	}
	return slices.Clone(events[:n])
}

// SortByOrigin returns events in chronological order. Events sharing an
// origin keep their catalog order.
func SortByOrigin(events []catalog.Event) []catalog.Event {
	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b catalog.Event) int {
		return a.Origin.Compare(b.Origin)
	})
	return out
}
