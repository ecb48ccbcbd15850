package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/banshee-data/msview/internal/fsutil"
	"golang.org/x/text/encoding/charmap"
)

type textEncoding int

const (
	// autoText keeps valid UTF-8 and falls back to ISO-8859-1 otherwise.
	autoText textEncoding = iota
	// latin1Text always decodes as ISO-8859-1, as survey exports are written.
	latin1Text
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readSource checks that path exists, reads it fully and returns UTF-8 text.
func readSource(fsys fsutil.FileSystem, path string, enc textEncoding) ([]byte, error) {
	if !fsys.Exists(path) {
		return nil, &FileNotFoundError{Path: path}
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if enc == latin1Text || !utf8.Valid(data) {
		data, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return data, nil
}

// newReader returns a csv.Reader tolerant of ragged rows.
func newReader(data []byte, comma rune) *csv.Reader {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if comma != 0 {
		r.Comma = comma
	}
	return r
}

// indexColumns locates each required column in header by name.
func indexColumns(path string, header, required []string) (map[string]int, error) {
	seen := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := seen[name]; !dup {
			seen[name] = i
		}
	}

	idx := make(map[string]int, len(required))
	for _, col := range required {
		i, ok := seen[col]
		if !ok {
			return nil, &MissingColumnError{Path: path, Column: col}
		}
		idx[col] = i
	}
	return idx, nil
}

// skipLines drops the first n raw lines of data.
func skipLines(data []byte, n int) []byte {
	for ; n > 0 && len(data) > 0; n-- {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			return nil
		}
		data = data[i+1:]
	}
	return data
}

// countLines returns the number of raw lines in data. A final line without a
// terminator still counts.
func countLines(data []byte) int {
	n := bytes.Count(data, []byte{'\n'})
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}

// fieldReader coerces the fields of one row. The first failure is kept and
// later calls become no-ops, so callers can read a whole row then check err.
type fieldReader struct {
	path   string
	line   int
	record []string
	index  map[string]int
	err    error
}

func (fr *fieldReader) raw(col string) (string, bool) {
	if fr.err != nil {
		return "", false
	}
	i := fr.index[col]
	if i >= len(fr.record) {
		fr.fail(col, "", errMissingField)
		return "", false
	}
	return strings.TrimSpace(fr.record[i]), true
}

func (fr *fieldReader) fail(col, value string, err error) {
	if fr.err == nil {
		fr.err = newCoercionError(fr.path, fr.line, col, value, err)
	}
}

func newCoercionError(path string, line int, col, value string, err error) *CoercionError {
	return &CoercionError{Path: path, Line: line, Column: col, Field: CanonicalName(col), Value: value, Err: err}
}

func (fr *fieldReader) str(col string) string {
	s, _ := fr.raw(col)
	return s
}

func (fr *fieldReader) float(col string) float64 {
	s, ok := fr.raw(col)
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		fr.fail(col, s, err)
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		fr.fail(col, s, errNotFinite)
		return 0
	}
	return v
}

func (fr *fieldReader) int(col string) int {
	s, ok := fr.raw(col)
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		fr.fail(col, s, err)
		return 0
	}
	return v
}
