// Package apperr defines the typed errors that services return to the
// transport layer. Each error carries the HTTP status and the short,
// client-visible message that the handler writes into the "error" field.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an Error.
type Kind int

const (
	// KindValidation marks malformed or missing client input.
	KindValidation Kind = iota + 1
	// KindUnauthenticated marks a request without a credential.
	KindUnauthenticated
	// KindInvalidCredential marks a credential that failed verification.
	KindInvalidCredential
	// KindUnauthorized marks rejected login credentials.
	KindUnauthorized
	// KindNotFound marks a resource that is absent or owned by someone else.
	KindNotFound
	// KindConflict marks a uniqueness violation.
	KindConflict
	// KindInternal marks an unexpected failure.
	KindInternal
)

// GenericMessage is the body returned for failures that carry no
// client-facing explanation.
const GenericMessage = "An error occurred"

// Error is a client-facing failure with a status code and message.
type Error struct {
	// Kind is the error classification.
	Kind Kind
	// Status is the HTTP status code written by the handler.
	Status int
	// Message is the short string returned in the "error" field.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// New builds an Error with an explicit status.
func New(kind Kind, status int, message string) *Error {
	return &Error{Kind: kind, Status: status, Message: message}
}

// Validation returns a 400 validation error.
func Validation(message string) *Error {
	return New(KindValidation, http.StatusBadRequest, message)
}

// Unauthenticated returns the 401 error used when no credential was sent.
func Unauthenticated() *Error {
	return New(KindUnauthenticated, http.StatusUnauthorized, "Unauthorized or missing token")
}

// InvalidCredential returns the 401 error used when a credential does not verify.
func InvalidCredential() *Error {
	return New(KindInvalidCredential, http.StatusUnauthorized, "Unauthorized")
}

// Unauthorized returns a 401 error with a custom message.
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, http.StatusUnauthorized, message)
}

// NotFound returns a 404 error.
func NotFound(message string) *Error {
	return New(KindNotFound, http.StatusNotFound, message)
}

// Conflict returns the 400 error used for duplicate usernames and emails.
func Conflict(message string) *Error {
	return New(KindConflict, http.StatusBadRequest, message)
}

// Internal returns a 400 error with the given message.
func Internal(message string) *Error {
	return New(KindInternal, http.StatusBadRequest, message)
}

// From extracts an *Error from err. Anything that is not an *Error is
// reported as an internal failure with the generic message.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(GenericMessage)
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
