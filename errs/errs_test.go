package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
		target error
	}{
		{"duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "categories_pkey"`), http.StatusConflict, ErrAlreadyExists},
		{"foreign key", errors.New("FOREIGN KEY constraint failed"), http.StatusBadRequest, ErrForeignKeyConstraint},
		{"connection", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable, ErrDatabaseConnection},
		{"other", errors.New("syntax error"), http.StatusInternalServerError, ErrDatabaseQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "category", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(NewNotFound("skill")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
	assert.Equal(t, http.StatusForbidden, StatusOf(NewInvalidAdminKeyError()))
}

func TestGetFullError(t *testing.T) {
	inner := NewMediaStoreError("save skills/a.png", errors.New("disk full"))
	outer := NewConcurrencyConflictError("project", inner)

	assert.Equal(t,
		"concurrency conflict: project was modified concurrently -> media store error: Media store failed to save skills/a.png -> disk full",
		outer.GetFullError())
	assert.True(t, IsValidationError(NewInvalidFieldError("name", "too short")))
	assert.True(t, IsNotFound(NewNotFound("project")))
}
