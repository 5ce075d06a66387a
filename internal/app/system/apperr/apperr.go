// internal/app/system/apperr/apperr.go

// Package apperr defines the error taxonomy shared by the service layer and
// both transports. Services return apperr values for every expected failure;
// transports map the kind to a status code and never inspect driver errors.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	// KindInternal is an unexpected failure (database unavailable, bug).
	// Rendered with a generic message; detail goes to the log only.
	KindInternal Kind = iota
	// KindUnauthenticated means no verified identity was presented.
	KindUnauthenticated
	// KindForbidden means the identity is valid but lacks ownership/role.
	KindForbidden
	// KindInvalidInput means a request field is missing or malformed.
	KindInvalidInput
	// KindNotFound means a referenced entity does not exist.
	KindNotFound
	// KindConflict means a duplicate creation attempt.
	KindConflict
)

// Error is a kinded error with a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Unauthenticated builds a KindUnauthenticated error.
func Unauthenticated(msg string) error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

// Forbidden builds a KindForbidden error.
func Forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// InvalidInput builds a KindInvalidInput error.
func InvalidInput(msg string) error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

// NotFound builds a KindNotFound error.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Conflict builds a KindConflict error.
func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Internal wraps an unexpected failure. The message is what callers see;
// cause is preserved for logging via Unwrap.
func Internal(msg string, cause error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: cause}
}

// KindOf returns the kind of err, or KindInternal for non-apperr errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-facing message for err. Internal errors are
// redacted to a generic message regardless of environment; the wrapped cause
// is only ever logged.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal server error"
}

// HTTPStatus maps an error kind to its HTTP status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
