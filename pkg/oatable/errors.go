// Package oatable provides a fixed-capacity open-addressing hash table.
package oatable

import (
	"errors"
	"fmt"
)

// TableError represents a table operation error with a structured error code.
type TableError struct {
	Code    string // Error code (e.g., "OT-KEY-4040")
	Message string // Human-readable message
	Details string // Optional additional details
}

// Error implements the error interface.
func (e *TableError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is implements errors.Is() support for error comparison.
func (e *TableError) Is(target error) bool {
	t, ok := target.(*TableError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetails returns a copy of the error with additional details.
func (e *TableError) WithDetails(details string) *TableError {
	return &TableError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// NewTableError creates a new TableError with the given code and message.
func NewTableError(code, message string) *TableError {
	return &TableError{
		Code:    code,
		Message: message,
	}
}

// ErrorCode extracts the error code from an error if it is a TableError.
func ErrorCode(err error) string {
	var te *TableError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

var (
	// ErrInvalidKey indicates an absent or over-long key on insert.
	ErrInvalidKey = NewTableError("OT-KEY-4000", "invalid key")

	// ErrNotFound indicates the key is not in the table.
	ErrNotFound = NewTableError("OT-KEY-4040", "key not found")

	// ErrTableFull indicates the probe sequence found no free slot.
	// Unreachable under a sane load factor and growth factor, but inserts
	// report it rather than looping.
	ErrTableFull = NewTableError("OT-TBL-5070", "table exhausted")

	// ErrInvalidConfig indicates a rejected table configuration.
	ErrInvalidConfig = NewTableError("OT-CFG-4001", "invalid table configuration")
)
