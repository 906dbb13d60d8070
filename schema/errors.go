package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTableName is returned when an operation needs the table
	// name of a descriptor but none was declared
	ErrMissingTableName = errors.New("no table name declared")

	// ErrNoColumns is returned when an operation requires at least one
	// column but the descriptor declares none
	ErrNoColumns = errors.New("no columns declared")

	// ErrMissingPrimaryKey is returned when an operation requires a
	// primary key column but no column is marked as one
	ErrMissingPrimaryKey = errors.New("no primary key column declared")
)

// Error wraps a descriptor failure with the table it was detected on.
// Use errors.Is with the sentinel errors of this package to check for
// a specific failure
type Error struct {
	Table string
	Err   error
}

func (e *Error) Error() string {
	if e.Table == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("table %q: %s", e.Table, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
