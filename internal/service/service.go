// Package service implements the tracker's operations on top of the
// credential verifier, the rule lists, the filter compiler and the
// owner-scoped stores. Every operation on an owned resource verifies the
// caller's token before anything else runs.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/atinyakov/HabitTracker/internal/apperr"
	"github.com/atinyakov/HabitTracker/internal/filter"
	"github.com/atinyakov/HabitTracker/internal/repository"
)

// Verifier resolves a token to the caller's user id.
type Verifier interface {
	// Verify returns the user id encoded in token, or an *apperr.Error
	// when the token is missing or invalid.
	Verify(token string) (string, error)
}

// Collection is the owner-scoped document store of one resource kind.
type Collection[T any] interface {
	// Create assigns an id to doc and stores it.
	Create(ctx context.Context, doc *T) error
	// FindOne returns the document with id owned by owner.
	FindOne(ctx context.Context, owner, id string) (*T, error)
	// Find returns the documents matching q.
	Find(ctx context.Context, q filter.Query) ([]T, error)
	// Replace overwrites the stored document with doc.
	Replace(ctx context.Context, doc *T) error
	// Delete removes the document with id owned by owner.
	Delete(ctx context.Context, owner, id string) error
}

// kind names a resource kind in client-facing messages.
type kind string

// requireID rejects a blank resource id.
func (k kind) requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.Validation(string(k) + " ID is required")
	}
	return nil
}

// notFound translates a store miss into the kind's 404.
func (k kind) notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(string(k) + " not found")
	}
	return err
}
