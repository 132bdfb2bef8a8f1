package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrImportInProgress indicates an import is already running.
	ErrImportInProgress = errors.New("import in progress")

	// ErrValidationFailed indicates blocking validation violations were found.
	ErrValidationFailed = errors.New("validation failed")

	// ErrNothingToExport indicates no records matched the export filter.
	ErrNothingToExport = errors.New("no properties match the export filter")

	// Pipeline error classes. The typed errors below match these with errors.Is.

	// ErrParse indicates a spreadsheet could not be read.
	ErrParse = errors.New("spreadsheet could not be read")

	// ErrEmptyResult indicates a spreadsheet had no eligible rows.
	ErrEmptyResult = errors.New("no valid properties found")

	// ErrStoreWrite indicates the store rejected a record during import.
	ErrStoreWrite = errors.New("store rejected a property")
)

// ParseError reports an unreadable, wrongly typed, or structurally empty
// spreadsheet. It aborts an import before any writes.
type ParseError struct {
	Reason string
	Err    error
}

// NewParseError creates a ParseError.
func NewParseError(reason string, err error) *ParseError {
	return &ParseError{Reason: reason, Err: err}
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not read spreadsheet: %s: %v", e.Reason, e.Err)
	}
	return "could not read spreadsheet: " + e.Reason
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error { return e.Err }

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// EmptyResultError reports a file that parsed but produced no eligible rows.
type EmptyResultError struct {
	// Rows is the number of data rows that were read.
	Rows int

	// Columns lists the field keys found in the file.
	Columns []FieldKey
}

func (e *EmptyResultError) Error() string {
	found := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		found[i] = c.String()
	}
	names := make([]string, len(PropertyTypes))
	for i, t := range PropertyTypes {
		names[i] = t.String()
	}
	return fmt.Sprintf(
		"no valid properties found: %d rows read but none had a valid property type; "+
			"columns found: [%s]; expected a 'Property Type' column with one of: %s",
		e.Rows, strings.Join(found, ", "), strings.Join(names, ", "))
}

// Is matches ErrEmptyResult.
func (e *EmptyResultError) Is(target error) bool { return target == ErrEmptyResult }

// StoreWriteError reports the record that the store rejected during a
// batch write. Records before it remain persisted.
type StoreWriteError struct {
	// Position is the 1-based index of the record in the overall input.
	Position int

	Err error
}

func (e *StoreWriteError) Error() string {
	msg := "unknown error"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("Failed to add property %d: %s", e.Position, msg)
}

// Unwrap returns the store's error.
func (e *StoreWriteError) Unwrap() error { return e.Err }

// Is matches ErrStoreWrite.
func (e *StoreWriteError) Is(target error) bool { return target == ErrStoreWrite }
