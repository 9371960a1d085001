// Package errors provides structured error types for stackviz.
//
// Every failure that crosses a package boundary carries a machine-readable
// [Code] so that the CLI can print a short message and callers can branch on
// the failure class without string matching.
//
// # Error Codes
//
//   - MISSING_FIELD: an accessor named a field the record does not carry
//   - INVALID_*: input, data or configuration rejected at validation time
//   - DUPLICATE_KEY: a strict join saw the same key twice
//   - LOAD_FAILED: an input file could not be read or decoded
//   - INTERNAL_ERROR / UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingField, "field %q not present", name)
//	if errors.Is(err, errors.ErrCodeMissingField) {
//	    // report the schema mismatch
//	}
//
//	err := errors.Wrap(errors.ErrCodeLoadFailed, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Data access errors
	ErrCodeMissingField Code = "MISSING_FIELD"
	ErrCodeInvalidData  Code = "INVALID_DATA"
	ErrCodeDuplicateKey Code = "DUPLICATE_KEY"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidKind   Code = "INVALID_KIND"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Loading errors
	ErrCodeLoadFailed   Code = "LOAD_FAILED"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeTimeout  Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// The outermost *Error in the chain decides.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Has reports whether any *Error in the chain of err carries code.
func Has(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// FieldError reports an accessor lookup that failed on a specific record.
type FieldError struct {
	Field string // Field name the accessor asked for
	Row   int    // Zero-based record index, -1 when unknown
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("missing field %q in record %d", e.Field, e.Row)
	}
	return fmt.Sprintf("missing field %q", e.Field)
}

// Code returns the error code for this error type.
func (e *FieldError) Code() Code {
	return ErrCodeMissingField
}

// MissingField builds a MISSING_FIELD error for field at row.
func MissingField(field string, row int) *Error {
	fe := &FieldError{Field: field, Row: row}
	return Wrap(ErrCodeMissingField, fe, "accessor %q", field)
}
