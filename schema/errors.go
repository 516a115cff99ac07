package schema

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when normalization accepts zero rows. It is a
// terminal condition for the upload, not a per-row problem.
var ErrEmptyInput = errors.New("no valid worklog rows after normalization")

// RowErrorKind distinguishes parse failures from validation failures.
type RowErrorKind string

// All row error kinds.
const (
	ParseError      RowErrorKind = "parse"
	ValidationError RowErrorKind = "validation"
)

// RowError describes why a single field of a raw row could not be accepted.
// Row errors are recovered locally: the offending row is excluded and
// counted, and processing continues.
type RowError struct {
	Kind  RowErrorKind
	Field string
	Value string
	Msg   string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s error in %s %q: %s", e.Kind, e.Field, e.Value, e.Msg)
}

// NewParseError builds a RowError with kind ParseError.
func NewParseError(field, value, msg string) *RowError {
	return &RowError{Kind: ParseError, Field: field, Value: value, Msg: msg}
}

// NewValidationError builds a RowError with kind ValidationError.
func NewValidationError(field, value, msg string) *RowError {
	return &RowError{Kind: ValidationError, Field: field, Value: value, Msg: msg}
}
