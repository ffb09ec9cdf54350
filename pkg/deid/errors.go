package deid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file could not be parsed as a spreadsheet.
var ErrInvalidFormat = errors.New("invalid spreadsheet format")

// ErrUnsupportedFormat indicates a file extension with no reader or writer.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrEmptyTable indicates the input has no columns.
var ErrEmptyTable = errors.New("no columns found")

// ErrEmptyOutputName indicates a blank output file name.
var ErrEmptyOutputName = errors.New("output file name is empty")

// ErrDuplicateColumn indicates a loaded table repeats a column name.
var ErrDuplicateColumn = errors.New("duplicate column name")

// LoadError represents a failure to read the input into a table.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(source string, err error) *LoadError {
	return &LoadError{
		Source: source,
		Err:    err,
	}
}

// ColumnNotFoundError represents a removal request naming a column the table does not have.
type ColumnNotFoundError struct {
	Column    string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found (have: %s)", e.Column, strings.Join(e.Available, ", "))
}

// NewColumnNotFoundError creates a new ColumnNotFoundError.
func NewColumnNotFoundError(column string, available []string) *ColumnNotFoundError {
	return &ColumnNotFoundError{
		Column:    column,
		Available: available,
	}
}

// WriteError represents a failure to write the output table.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// NewWriteError creates a new WriteError.
func NewWriteError(path string, err error) *WriteError {
	return &WriteError{
		Path: path,
		Err:  err,
	}
}

// StateError represents an operation attempted in a session state that does not allow it.
type StateError struct {
	Op    string
	State string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s not allowed in state %s", e.Op, e.State)
}

// NewStateError creates a new StateError.
func NewStateError(op, state string) *StateError {
	return &StateError{
		Op:    op,
		State: state,
	}
}
