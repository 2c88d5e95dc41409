package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", field, msg))
	}
	return strings.Join(parts, "; ")
}

// ValidateRequest runs the `validate` struct tags and flattens the result.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "is required"
		case "uuid", "uuid4":
			fields[fe.Field()] = "must be a valid uuid"
		case "max":
			fields[fe.Field()] = "must be at most " + fe.Param()
		case "min":
			fields[fe.Field()] = "must be at least " + fe.Param()
		case "gte":
			fields[fe.Field()] = "must be greater than or equal to " + fe.Param()
		default:
			fields[fe.Field()] = "is invalid"
		}
	}
	return &ValidationError{Fields: fields}
}
