package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"typed", NotFound("Task not found"), http.StatusNotFound, "Task not found"},
		{"wrapped", fmt.Errorf("outer: %w", Validation("Task name is required")), http.StatusBadRequest, "Task name is required"},
		{"untyped", errors.New("connection reset"), http.StatusBadRequest, GenericMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := From(tt.err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestCredentialMessagesDiffer(t *testing.T) {
	missing := Unauthenticated()
	invalid := InvalidCredential()

	assert.Equal(t, http.StatusUnauthorized, missing.Status)
	assert.Equal(t, http.StatusUnauthorized, invalid.Status)
	assert.NotEqual(t, missing.Message, invalid.Message)
	assert.True(t, Is(missing, KindUnauthenticated))
	assert.False(t, Is(invalid, KindUnauthenticated))
}
