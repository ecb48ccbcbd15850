package catalog

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel error kinds. Typed errors below match them through errors.Is.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrMissingColumn    = errors.New("missing required column")
	ErrCoercion         = errors.New("column type coercion failed")
	ErrUnknownAttribute = errors.New("unknown attribute")
)

var (
	errMissingField = errors.New("field missing")
	errNotFinite    = errors.New("value is not finite")
	errNegative     = errors.New("value must be non-negative")
)

// FileNotFoundError is returned when a source file does not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return "file not found: " + e.Path
}

// Is matches ErrFileNotFound and fs.ErrNotExist.
func (e *FileNotFoundError) Is(target error) bool {
	return target == ErrFileNotFound || target == fs.ErrNotExist
}

// MissingColumnError is returned when a required column is absent from the header.
type MissingColumnError struct {
	Path   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: missing required column %q", e.Path, e.Column)
}

// Is matches ErrMissingColumn.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// CoercionError is returned when a field cannot be converted to its column type.
type CoercionError struct {
	Path   string
	Line   int
	Column string // source column as written in the file
	Field  string // canonical attribute name of Column
	Value  string
	Err    error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s: line %d: invalid %s %q: %v", e.Path, e.Line, e.Column, e.Value, e.Err)
}

// Is matches ErrCoercion.
func (e *CoercionError) Is(target error) bool {
	return target == ErrCoercion
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}
