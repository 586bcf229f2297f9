package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no document matches both the id and the owner.
	ErrNotFound = errors.New("document not found")
	// ErrMalformedID is returned for ids that are not UUIDs.
	ErrMalformedID = errors.New("malformed document id")
	// ErrDuplicateUsername is returned when the username is already registered.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already exists")
)

// newID returns a fresh document id.
func newID() string {
	return uuid.NewString()
}

// checkID rejects ids that could not have been issued by newID.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrMalformedID, id)
	}
	return nil
}
