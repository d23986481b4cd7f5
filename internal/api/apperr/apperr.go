// Package apperr carries typed API errors from services up to the HTTP
// layer: a status code plus a caller-safe message. Anything that is not an
// *Error is treated as internal and never leaks detail to the client.
package apperr

import (
	"errors"
	"net/http"
)

// Error is an operational failure with a caller-visible status and message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// New returns an Error with an arbitrary status code.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error   { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *Error    { return New(http.StatusForbidden, message) }
func NotFound(message string) *Error     { return New(http.StatusNotFound, message) }
func Conflict(message string) *Error     { return New(http.StatusConflict, message) }

// From extracts an *Error from err, or nil if err is not operational.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
