package api

import "net/http"

// Kind classifies an API error. The taxonomy is closed: every failure is
// assigned a kind at the point where it happens, never inferred later from
// the error's shape.
type Kind int

const (
	// KindValidation is malformed or out-of-range input
	KindValidation Kind = iota
	// KindAuth is a missing, invalid or expired credential
	KindAuth
	// KindForbidden is an authenticated actor without permission
	KindForbidden
	// KindNotFound is an absent resource, or one deliberately masked
	KindNotFound
	// KindConflict is a domain conflict such as a duplicate unique field
	KindConflict
	// KindInternal is any unhandled fault
	KindInternal
)

// Error is an API error with a closed taxonomy kind
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field validation messages, if any
	Fields []string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Status maps the error kind to an HTTP status code
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrValidation creates a validation error with per-field messages
func ErrValidation(message string, fields ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// ErrAuth creates a credential error
func ErrAuth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

// ErrForbidden creates an authorization error
func ErrForbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// ErrNotFound creates a not-found error
func ErrNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// ErrConflict creates a domain conflict error
func ErrConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}
