// Package apperr defines the application error taxonomy shared by services
// and controllers.
//
// Services return *apperr.Error values; controllers translate them into the
// JSON envelope with ctx.Fail. Anything that is not an *apperr.Error is
// treated as an internal failure: logged in full, surfaced to the caller as
// a generic 500 message.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP mapping.
type Kind int

const (
	// KindValidation: malformed or out-of-range input (400).
	KindValidation Kind = iota
	// KindNotFound: a referenced entity does not exist (404).
	KindNotFound
	// KindConflict: illegal state transition or duplicate unique key (409).
	KindConflict
	// KindUnauthorized: missing or invalid identity (401).
	KindUnauthorized
	// KindForbidden: authenticated but insufficient role or ownership (403).
	KindForbidden
	// KindInternal: unexpected failure (500); message is never user-supplied.
	KindInternal
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	err     error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.err }

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation builds a 400-class error.
func Validation(format string, args ...interface{}) *Error {
	return newf(KindValidation, format, args...)
}

// NotFound builds a 404-class error.
func NotFound(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

// Conflict builds a 409-class error.
func Conflict(format string, args ...interface{}) *Error {
	return newf(KindConflict, format, args...)
}

// Unauthorized builds a 401-class error.
func Unauthorized(format string, args ...interface{}) *Error {
	return newf(KindUnauthorized, format, args...)
}

// Forbidden builds a 403-class error.
func Forbidden(format string, args ...interface{}) *Error {
	return newf(KindForbidden, format, args...)
}

// Internal wraps an unexpected failure. The message shown to clients is the
// generic one; cause is preserved for logs via Unwrap.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal Server Error", err: cause}
}

// Wrap attaches a cause to a classified error, keeping its kind and message.
func Wrap(e *Error, cause error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, err: cause}
}

// From extracts an *Error from err, or wraps err as internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
