// Package validator wraps go-playground struct validation for request DTOs.
package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the value's `validate` tags. It returns nil when the value
// passes, otherwise a field -> failed-tag map suitable for an error response.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		fields[fieldErr.Field()] = fieldErr.Tag()
	}
	return fields
}
