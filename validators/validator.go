// Package validators adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound payloads.
package validators

import "github.com/go-playground/validator/v10"

// Validator wraps a validator.Validate instance for Echo
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate validates a bound request payload against its struct tags
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
