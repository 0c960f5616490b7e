package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// Database & Storage Specific Errors
var (
	ErrPersistence          = errors.New("persistence error")
	ErrConcurrencyConflict  = errors.New("concurrency conflict")
	ErrForeignKeyConstraint = errors.New("foreign key constraint violation")
	ErrMigrationFailed      = errors.New("migration failed")
	ErrMediaStore           = errors.New("media store error")
)

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewDatabaseError creates a new database error with details about the operation
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	// Check for common database errors and provide more specific messages
	if cause != nil {
		errStr := strings.ToLower(cause.Error())
		switch {
		case strings.Contains(errStr, "duplicate key"), strings.Contains(errStr, "unique constraint"):
			return &ApiErr{
				StatusCode: http.StatusConflict,
				err:        fmt.Errorf("%s %w", entity, ErrAlreadyExists),
				Details:    details,
				Cause:      cause,
			}
		case strings.Contains(errStr, "foreign key constraint"):
			return &ApiErr{
				StatusCode: http.StatusBadRequest,
				err:        ErrForeignKeyConstraint,
				Details:    "The referenced resource does not exist or cannot be linked",
				Cause:      cause,
			}
		case strings.Contains(errStr, "record not found"):
			return &ApiErr{
				StatusCode: http.StatusNotFound,
				err:        fmt.Errorf("%s %w", entity, ErrNotFound),
				Details:    details,
				Cause:      cause,
			}
		case strings.Contains(errStr, "connection refused"), strings.Contains(errStr, "connection reset"):
			return &ApiErr{
				StatusCode: http.StatusServiceUnavailable,
				err:        ErrDatabaseConnection,
				Details:    "Unable to connect to database",
				Cause:      cause,
			}
		}
	}

	// Generic database error
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}

// NewPersistenceError reports a write the store rejected. The driver message
// is surfaced to the caller as the details.
func NewPersistenceError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)
	if cause != nil {
		details = fmt.Sprintf("%s: %s", details, cause.Error())
	}
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrPersistence,
		Details:    details,
		Cause:      cause,
	}
}

func NewConcurrencyConflictError(entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConcurrencyConflict,
		Details:    fmt.Sprintf("%s was modified concurrently", entity),
		Cause:      cause,
	}
}

func NewMediaStoreError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrMediaStore,
		Details:    fmt.Sprintf("Media store failed to %s", operation),
		Cause:      cause,
	}
}

func NewMigrationError(migrationID string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrMigrationFailed,
		Details:    fmt.Sprintf("Migration %s failed", migrationID),
		Cause:      cause,
		Field:      "migration",
	}
}

func IsPersistenceError(err error) bool {
	return errors.Is(err, ErrPersistence)
}

func IsConcurrencyConflictError(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict)
}

func IsMediaStoreError(err error) bool {
	return errors.Is(err, ErrMediaStore)
}
