// Package errors provides the error kinds returned by trivia operations and
// their mapping to HTTP status codes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard error functions
var (
	Is = errors.Is
	As = errors.As
)

// Status returns a new error of the kind bound to the given status code.
func Status(code int, message string) *Error {
	return &Error{Kind: message, Message: message, status: code}
}

// Error kinds. Message is the client-facing text of the uniform error body.
var (
	NotFound         *Error = Status(http.StatusNotFound, "resource not found")
	Unprocessable    *Error = Status(http.StatusUnprocessableEntity, "unprocessable")
	ServerError      *Error = Status(http.StatusInternalServerError, "Internal Server Error")
	MethodNotAllowed *Error = Status(http.StatusMethodNotAllowed, "method not allowed")
	TooManyRequests  *Error = Status(http.StatusTooManyRequests, "too many requests")
	Unavailable      *Error = Status(http.StatusServiceUnavailable, "service unavailable")
)

// Error is a custom error type for passing more information
type Error struct {
	// Kind identifies the error class; two errors with the same Kind match under Is.
	Kind string `json:"kind"`
	// Message is the human readable string sent to clients.
	Message string `json:"message"`

	status int
	detail string
	cause  error
}

var _ error = (*Error)(nil)

// Error implements error
func (e *Error) Error() string {
	str := fmt.Sprintf("[%s]", e.Kind)
	if e.detail != "" {
		str += " " + e.detail
	}
	if e.cause != nil {
		str += fmt.Sprintf(" (%s)", e.cause)
	}
	return str
}

// StatusCode returns the HTTP status bound to the error kind.
func (e *Error) StatusCode() int {
	if e.status == 0 {
		return http.StatusInternalServerError
	}
	return e.status
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Wrap returns a copy of the error with the given cause.
func (e *Error) Wrap(cause error) *Error {
	err := *e
	err.cause = cause
	return &err
}

// Explain makes a copy of the error with an internal detail message.
// The detail is logged, never sent to clients.
func (e *Error) Explain(detail string, args ...any) *Error {
	err := *e
	err.detail = fmt.Sprintf(detail, args...)
	return &err
}

// Is implements the needed interface for errors.Is
// It checks kind for equality
func (e *Error) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	if other, ok := target.(*Error); ok {
		return other.Kind == e.Kind
	}
	if e.cause != nil {
		return Is(e.cause, target)
	}
	return false
}

// StatusOf resolves any error to its kind. Errors that carry no kind are
// treated as ServerError.
func StatusOf(err error) *Error {
	var e *Error
	if As(err, &e) && e.status != 0 {
		return e
	}
	return ServerError
}

// Body is the uniform JSON error envelope.
type Body struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// BodyOf builds the error envelope for err.
func BodyOf(err error) Body {
	kind := StatusOf(err)
	return Body{
		Success: false,
		Error:   kind.StatusCode(),
		Message: kind.Message,
	}
}
