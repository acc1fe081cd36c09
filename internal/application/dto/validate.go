package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError marks a request as rejected by input validation, so the
// presentation layer can map it to an invalid-argument response.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return &ValidationError{msg: err.Error()}
	}
	return nil
}
