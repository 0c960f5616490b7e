package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/portfolio-resume-backend/errs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// validateInput checks input's struct tags and reports the first failing
// field as an ApiErr.
func validateInput(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return errs.NewMalformedPayloadError("request", err)
	}
	return formatFieldError(validationErrors[0])
}

func formatFieldError(e validator.FieldError) error {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return errs.NewMissingRequiredFieldError(field)
	case "min":
		return errs.NewInvalidFieldError(field, fmt.Sprintf("must be at least %s characters", e.Param()))
	case "max":
		return errs.NewInvalidFieldError(field, fmt.Sprintf("must be at most %s characters", e.Param()))
	case "oneof":
		return errs.NewInvalidFieldError(field, fmt.Sprintf("must be one of: %s", e.Param()))
	default:
		return errs.NewInvalidFieldError(field, "is invalid")
	}
}
