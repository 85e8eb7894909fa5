package gtfsutils

import "fmt"

// InputTypeError indicates an argument that can't serve as a boundary
// or source for the requested operation.
type InputTypeError struct {
	Reason string
}

func (e InputTypeError) Error() string {
	return fmt.Sprintf("input not supported: %s", e.Reason)
}

// InvalidBoundsError indicates a bounding box that doesn't have
// exactly 4 elements.
type InvalidBoundsError struct {
	Len int
}

func (e InvalidBoundsError) Error() string {
	return fmt.Sprintf("wrong dimension of bounds: got %d elements, want 4", e.Len)
}

// UnsupportedGeometryError indicates a boundary that couldn't be
// turned into a usable geometry.
type UnsupportedGeometryError struct {
	Reason string
}

func (e UnsupportedGeometryError) Error() string {
	return fmt.Sprintf("unsupported geometry: %s", e.Reason)
}

// InvalidDateError indicates a value that isn't a YYYYMMDD calendar
// date.
type InvalidDateError struct {
	Value string
}

func (e InvalidDateError) Error() string {
	return fmt.Sprintf("'%s' is not a valid date", e.Value)
}

// UnsupportedOperationError indicates a spatial operation outside
// within/intersects.
type UnsupportedOperationError struct {
	Operation string
}

func (e UnsupportedOperationError) Error() string {
	return fmt.Sprintf("operation '%s' not supported", e.Operation)
}

// MissingRequiredTableError indicates a required GTFS table absent
// from the store, either at write time or for an operation that needs
// it.
type MissingRequiredTableError struct {
	Table string
}

func (e MissingRequiredTableError) Error() string {
	return fmt.Sprintf("missing required table '%s'", e.Table)
}

// RowParseError indicates a single source file that failed to parse.
// The loader logs it and skips the table; loading continues.
type RowParseError struct {
	Table string
	Err   error
}

func (e RowParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Table, e.Err)
}

func (e RowParseError) Unwrap() error {
	return e.Err
}
