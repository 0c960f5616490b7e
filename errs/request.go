package errs

import (
	"errors"
	"net/http"
)

// Access gate errors
var (
	ErrMissingAdminKey = errors.New("missing admin key")
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
)

func BadRequest(message string) *ApiErr {
	return NewApiErr(http.StatusBadRequest, message)
}

func NewMissingAdminKeyError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrMissingAdminKey,
		Details:    "X-Admin-Key header is required",
		Field:      "X-Admin-Key",
	}
}

func NewInvalidAdminKeyError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrInvalidAdminKey,
		Details:    "X-Admin-Key header does not match",
		Field:      "X-Admin-Key",
	}
}

func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    "Configuration error for " + configName,
		Cause:      cause,
		Field:      configName,
	}
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}
