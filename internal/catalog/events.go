package catalog

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/banshee-data/msview/internal/fsutil"
	"github.com/banshee-data/msview/internal/monitoring"
	"github.com/banshee-data/msview/internal/timeutil"
)

// LoadEvents reads an event catalog. The header row must name every column in
// EventColumns; other columns are ignored. The row directly under the header
// holds units and is skipped. Any field that cannot be coerced to its column
// type fails the whole load.
func LoadEvents(fsys fsutil.FileSystem, path string) ([]Event, error) {
	data, err := readSource(fsys, path, autoText)
	if err != nil {
		return nil, err
	}

	r := newReader(data, 0)
	header, err := r.Read()
	if err == io.EOF {
		return nil, &MissingColumnError{Path: path, Column: EventColumns[0]}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", path, err)
	}

	index, err := indexColumns(path, header, EventColumns)
	if err != nil {
		return nil, err
	}

	// Units row
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			monitoring.Logf("catalog: %s has no event rows", path)
			return []Event{}, nil
		}
		return nil, fmt.Errorf("read %s units row: %w", path, err)
	}

	events := make([]Event, 0, 64)
	ids := make(map[string]int)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		line, _ := r.FieldPos(0)

		ev, err := parseEvent(path, line, record, index)
		if err != nil {
			return nil, err
		}
		if prev, dup := ids[ev.ID]; dup {
			monitoring.Warnf("catalog: %s line %d repeats event %q from line %d", path, line, ev.ID, prev)
		} else {
			ids[ev.ID] = line
		}
		events = append(events, ev)
	}

	monitoring.Logf("catalog: loaded %d events from %s", len(events), path)
	return events, nil
}

func parseEvent(path string, line int, record []string, index map[string]int) (Event, error) {
	fr := &fieldReader{path: path, line: line, record: record, index: index}

	ev := Event{
		ID: fr.str(SrcFileName),
		Position: Position{
			Easting:  fr.float(SrcEasting),
			Northing: fr.float(SrcNorthing),
			Depth:    fr.float(SrcDepth),
		},
		Date:        fr.str(SrcOriginDate),
		TimeOfDay:   fr.str(SrcOriginTime),
		Millisecond: fr.int(SrcMillisecond),
		Magnitude:   fr.float(SrcMagnitude),
		Stage:       fr.int(SrcStage),
	}
	if fr.err != nil {
		return Event{}, fr.err
	}
	if ev.Stage < 0 {
		return Event{}, newCoercionError(path, line, SrcStage, strconv.Itoa(ev.Stage), errNegative)
	}

	origin, err := timeutil.CombineOrigin(ev.Date, ev.TimeOfDay, ev.Millisecond)
	if err != nil {
		col, value := SrcOriginDate, ev.Date
		if errors.Is(err, timeutil.ErrBadTime) {
			col, value = SrcOriginTime, ev.TimeOfDay
		}
		return Event{}, newCoercionError(path, line, col, value, err)
	}
	ev.Origin = origin
	return ev, nil
}
