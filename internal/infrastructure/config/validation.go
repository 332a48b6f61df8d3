package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
)

// Validator is a wrapper around go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance with custom validation rules
func NewValidator() (*Validator, error) {
	v := validator.New()

	// delete_policy accepts the values planner.ParseDeletePolicy understands
	err := v.RegisterValidation("delete_policy", func(fl validator.FieldLevel) bool {
		_, err := planner.ParseDeletePolicy(fl.Field().String())
		return err == nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register delete_policy rule: %w", err)
	}

	return &Validator{
		validate: v,
	}, nil
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func (v *Validator) formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf(
				"field '%s' failed validation: %s (value: '%v')",
				e.Namespace(),
				e.Tag(),
				e.Value(),
			))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	v, err := NewValidator()
	if err != nil {
		return err
	}
	return v.Validate(cfg)
}
