// Package apperr defines the application error taxonomy and its mapping
// onto HTTP status codes. Services return *Error values; the error
// middleware translates them into JSON responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error by how a caller should handle it.
type Kind int

const (
	// Internal is the zero kind: an unexpected server-side failure.
	Internal Kind = iota
	// Validation marks malformed or missing client input.
	Validation
	// Authentication marks requests without a valid session.
	Authentication
	// Authorization marks authenticated but not permitted requests.
	Authorization
	// NotFound marks lookups that missed or resources not reachable
	// from the request path.
	NotFound
	// Conflict marks uniqueness violations.
	Conflict
	// Upstream marks failures of a required external collaborator.
	Upstream
)

// Error carries a kind, a short human-readable message, and an optional
// wrapped cause. The message is safe to expose to clients; the cause is not.
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

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with the given kind and client-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error that records an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain. Any error that is not an
// *Error is Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// MessageOf extracts the client-facing message from an error chain, falling
// back to a generic message for unclassified errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error."
}

// Status maps a kind to its HTTP status code.
func Status(kind Kind) int {
	switch kind {
	case Validation:
		return http.StatusBadRequest
	case Authentication:
		return http.StatusUnauthorized
	case Authorization:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Upstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
