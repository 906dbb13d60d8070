package msql

import (
	"errors"
	"fmt"
)

// ErrEmptyInList is returned when an IN clause is requested with zero
// values. "IN ()" is not valid SQL and is rejected during construction
var ErrEmptyInList = errors.New("IN clause requires at least one value")

// errConsumed is recorded when a builder is mutated after it was
// embedded into another statement via Union, UnionAll or Subquery
var errConsumed = errors.New("builder was already consumed by another statement")

var errNilField = errors.New("field pointer is nil")

// MappingError is returned when a result row could not be converted
// into an entity instance. The underlying cause is wrapped
type MappingError struct {
	Table  string
	Column string
	Err    error
}

func (e *MappingError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("failed to map row to %q: column %q: %s", e.Table, e.Column, e.Err)
	}
	return fmt.Sprintf("failed to map row to %q: %s", e.Table, e.Err)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// FieldError is returned when the current value of an entity field
// could not be extracted for parameter binding
type FieldError struct {
	Table  string
	Column string
	Err    error
}

func (e *FieldError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("failed to read field for %q.%q: %s", e.Table, e.Column, e.Err)
	}
	return fmt.Sprintf("failed to read fields of %q: %s", e.Table, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func errFieldCount(columns, fields int) error {
	return fmt.Errorf("%d columns declared but %d field pointers returned", columns, fields)
}

func errUnsupportedField(ptr any) error {
	return fmt.Errorf("unsupported field type %T", ptr)
}
