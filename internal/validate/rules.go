// Package validate checks client input against ordered rule lists. Rules
// are evaluated top to bottom and the first failure is reported, so the
// order of a rule list is its precedence.
package validate

import (
	"net/http"
	"regexp"
	"slices"

	"github.com/atinyakov/HabitTracker/internal/apperr"
	"github.com/atinyakov/HabitTracker/internal/models"
)

// Rule is a single check over an input of type T.
type Rule[T any] struct {
	// Fails reports whether the input violates the rule.
	Fails func(in *T) bool
	// Message is returned to the client when the rule fails.
	Message string
	// Status is the HTTP status of the failure.
	Status int
}

// Rules is an ordered rule list.
type Rules[T any] []Rule[T]

// Check returns the first failing rule as a validation error, or nil when
// every rule passes.
func (rs Rules[T]) Check(in *T) error {
	for _, r := range rs {
		if r.Fails(in) {
			return apperr.New(apperr.KindValidation, r.Status, r.Message)
		}
	}
	return nil
}

// reject builds a 400 rule.
func reject[T any](fails func(in *T) bool, message string) Rule[T] {
	return Rule[T]{Fails: fails, Message: message, Status: http.StatusBadRequest}
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsDate reports whether s is a YYYY-MM-DD calendar date.
func IsDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := models.ParseDate(s)
	return err == nil
}

// badDate reports whether s was supplied and is not a valid date.
func badDate(s string) bool {
	return s != "" && !IsDate(s)
}

func oneOf[E ~string](value string, allowed []E) bool {
	return slices.Contains(allowed, E(value))
}
