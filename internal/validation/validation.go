package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/places-service/pkg/util"
)

const invalidInputMessage = "invalid inputs passed, please check your data"

// Validator wraps struct validation for request payloads.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator.
func New() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Struct validates a payload against its struct tags. Failures map to a 422
// DomainError carrying per-field details.
func (v *Validator) Struct(payload any) error {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError(invalidInputMessage, nil)
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return apperrors.NewValidationError(invalidInputMessage, details)
}
