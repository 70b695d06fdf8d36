// Package errs provides the unified error type used across json2sqlite.
//
// Every subsystem (document decoding, shape classification, database,
// filestore, …) wraps its native errors into *errs.Error before returning
// them. Callers use the Is* predicates to decide how to report a failure
// without importing driver-specific packages.
//
// Usage:
//
//	// In a driver, wrap native errors:
//	return errs.Wrap(errs.ErrKindPersistence, "insert failed", sqliteErr)
//
//	// In a handler, check the error kind:
//	if errs.IsInputNotFound(err) {
//	    http.Error(w, "not found", http.StatusNotFound)
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing subsystem-specific codes.
type ErrKind int

const (
	ErrKindUnknown          ErrKind = iota
	ErrKindInputNotFound            // source file or object does not exist
	ErrKindReadFailure              // source exists but cannot be read or decoded
	ErrKindParseFailure             // source is not well-formed JSON
	ErrKindEmptyInput               // null root or empty root array
	ErrKindUnsupportedShape         // JSON is none of the supported table layouts
	ErrKindDuplicateTable           // two table specs resolve to the same name
	ErrKindPersistence              // CREATE TABLE / INSERT failed at the storage layer
	ErrKindConnectionFailed         // cannot open the database or reach the object store
	ErrKindInvalidInput             // bad arguments from the caller
	ErrKindTimeout                  // context deadline / cancellation
	ErrKindPermissionDenied         // access denied / auth failure
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindInputNotFound:
		return "input_not_found"
	case ErrKindReadFailure:
		return "read_failure"
	case ErrKindParseFailure:
		return "parse_failure"
	case ErrKindEmptyInput:
		return "empty_or_invalid_input"
	case ErrKindUnsupportedShape:
		return "unsupported_shape"
	case ErrKindDuplicateTable:
		return "duplicate_table_name"
	case ErrKindPersistence:
		return "persistence_failure"
	case ErrKindConnectionFailed:
		return "connection_failed"
	case ErrKindInvalidInput:
		return "invalid_input"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindPermissionDenied:
		return "permission_denied"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all json2sqlite subsystems.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error // original driver-level error, preserved for logging
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf is New with a format string.
func Newf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// --- Predicates ---

// IsInputNotFound reports whether the source file or object is missing.
func IsInputNotFound(err error) bool {
	return KindOf(err) == ErrKindInputNotFound
}

// IsReadFailure reports whether the source could not be read or decoded.
func IsReadFailure(err error) bool {
	return KindOf(err) == ErrKindReadFailure
}

// IsParseFailure reports whether the source was not well-formed JSON.
func IsParseFailure(err error) bool {
	return KindOf(err) == ErrKindParseFailure
}

// IsEmptyInput reports whether the document was null or an empty array.
func IsEmptyInput(err error) bool {
	return KindOf(err) == ErrKindEmptyInput
}

// IsUnsupportedShape reports whether the document matched no supported layout.
func IsUnsupportedShape(err error) bool {
	return KindOf(err) == ErrKindUnsupportedShape
}

// IsDuplicateTable reports whether two tables in one conversion shared a name.
func IsDuplicateTable(err error) bool {
	return KindOf(err) == ErrKindDuplicateTable
}

// IsPersistence reports whether err is a storage-layer failure.
func IsPersistence(err error) bool {
	return KindOf(err) == ErrKindPersistence
}

// IsConnectionFailed reports whether err is a connectivity or open failure.
func IsConnectionFailed(err error) bool {
	return KindOf(err) == ErrKindConnectionFailed
}

// IsInvalidInput reports whether err was caused by bad input from the caller.
func IsInvalidInput(err error) bool {
	return KindOf(err) == ErrKindInvalidInput
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return KindOf(err) == ErrKindTimeout
}

// IsPermissionDenied reports whether err is an access control failure.
func IsPermissionDenied(err error) bool {
	return KindOf(err) == ErrKindPermissionDenied
}

// KindOf extracts the ErrKind from any error in the chain.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}
