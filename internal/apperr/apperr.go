// Package apperr defines the error taxonomy shared by services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP status mapping.
type Kind int

const (
	KindNotFound Kind = iota
	KindValidation
	KindUnauthorized
	KindInternal
)

// Error is a classified error with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports a missing entity, e.g. NotFound("Quote", "quote_9").
func NotFound(kind, id string) *Error {
	msg := kind + " not found"
	if id != "" {
		msg = fmt.Sprintf("%s not found: %s", kind, id)
	}
	return &Error{Kind: KindNotFound, Message: msg}
}

// Validation reports a client-caused bad value.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Unauthorized reports a missing or unusable bearer token.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// Internal wraps an unexpected failure.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// HTTPStatus maps an error to its HTTP status code. Unclassified errors map to 500.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for an error.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
