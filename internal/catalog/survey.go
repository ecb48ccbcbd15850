package catalog

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/banshee-data/msview/internal/fsutil"
	"github.com/banshee-data/msview/internal/monitoring"
)

// Survey column names.
const (
	ColAzimuth = "Azimuth"
	ColTVD     = "TVD"
	ColNS      = "NS"
	ColEW      = "EW"
)

// SurveyColumns are the survey columns a trajectory is built from.
var SurveyColumns = []string{ColAzimuth, ColTVD, ColNS, ColEW}

// SurveyFormat describes the layout of a survey export. The two presets
// below cover the exports in use; they genuinely differ and are not
// interchangeable.
type SurveyFormat struct {
	Name string

	// PreambleRows raw lines are dropped before anything is parsed.
	PreambleRows int

	// Header means the first parsed row names the columns. Otherwise
	// Columns names the leading fields positionally.
	Header  bool
	Columns []string

	// UnitsRows are skipped after the header.
	UnitsRows int

	// FooterRows raw lines at the end of the file are dropped, blank lines
	// included. Only data rows are removed; the header and units rows stay.
	FooterRows int

	// Comma is the field delimiter; zero means ','.
	Comma rune
}

// SurveyWithHeader reads exports with a column header, a units row under it
// and a five-row footer.
var SurveyWithHeader = SurveyFormat{
	Name:       "header",
	Header:     true,
	UnitsRows:  1,
	FooterRows: 5,
}

// SurveyFixedLayout reads exports whose first 22 lines are a free-form
// preamble with no usable header; fields are Azimuth, TVD, NS, EW in order.
var SurveyFixedLayout = SurveyFormat{
	Name:         "fixed",
	PreambleRows: 22,
	Columns:      SurveyColumns,
}

// ParseSurveyFormat resolves a format name from configuration.
func ParseSurveyFormat(name string) (SurveyFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "header", "a":
		return SurveyWithHeader, nil
	case "fixed", "b":
		return SurveyFixedLayout, nil
	default:
		return SurveyFormat{}, fmt.Errorf("unknown survey format %q (want header or fixed)", name)
	}
}

// SurveySource pairs a survey file with its format.
type SurveySource struct {
	Path   string
	Format SurveyFormat
}

type surveyRow struct {
	line   int
	fields []string
}

// LoadSurvey reads one wellbore survey. Stations keep file order.
func LoadSurvey(fsys fsutil.FileSystem, src SurveySource) (Trajectory, error) {
	f := src.Format
	data, err := readSource(fsys, src.Path, latin1Text)
	if err != nil {
		return Trajectory{}, err
	}
	data = skipLines(data, f.PreambleRows)
	footerStart := f.PreambleRows + countLines(data) - f.FooterRows + 1

	r := newReader(data, f.Comma)
	r.LazyQuotes = true

	var rows []surveyRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Trajectory{}, fmt.Errorf("read %s: %w", src.Path, err)
		}
		line, _ := r.FieldPos(0)
		rows = append(rows, surveyRow{line: line + f.PreambleRows, fields: record})
	}

	var index map[string]int
	if f.Header {
		if len(rows) == 0 {
			return Trajectory{}, &MissingColumnError{Path: src.Path, Column: SurveyColumns[0]}
		}
		index, err = indexColumns(src.Path, rows[0].fields, SurveyColumns)
		if err != nil {
			return Trajectory{}, err
		}
		rows = rows[1:]
	} else {
		index = make(map[string]int, len(f.Columns))
		for i, name := range f.Columns {
			index[name] = i
		}
		for _, col := range SurveyColumns {
			if _, ok := index[col]; !ok {
				return Trajectory{}, &MissingColumnError{Path: src.Path, Column: col}
			}
		}
	}

	rows = rows[min(f.UnitsRows, len(rows)):]
	if f.FooterRows > 0 {
		kept := rows[:0]
		for _, row := range rows {
			if row.line < footerStart {
				kept = append(kept, row)
			}
		}
		rows = kept
	}

	traj := Trajectory{
		Name:     strings.TrimSuffix(filepath.Base(src.Path), filepath.Ext(src.Path)),
		Source:   src.Path,
		Stations: make([]Station, 0, len(rows)),
	}
	for _, row := range rows {
		fr := &fieldReader{path: src.Path, line: row.line, record: row.fields, index: index}
		st := Station{
			Azimuth: fr.float(ColAzimuth),
			TVD:     fr.float(ColTVD),
			NS:      fr.float(ColNS),
			EW:      fr.float(ColEW),
		}
		if fr.err != nil {
			return Trajectory{}, fr.err
		}
		traj.Stations = append(traj.Stations, st)
	}

	monitoring.Logf("catalog: loaded %d stations from %s (%s layout)", len(traj.Stations), src.Path, f.Name)
	return traj, nil
}

// LoadSurveys loads an ordered group of surveys, stopping at the first error.
func LoadSurveys(fsys fsutil.FileSystem, sources []SurveySource) ([]Trajectory, error) {
	out := make([]Trajectory, 0, len(sources))
	for _, src := range sources {
		traj, err := LoadSurvey(fsys, src)
		if err != nil {
			return nil, err
		}
		out = append(out, traj)
	}
	return out, nil
}
