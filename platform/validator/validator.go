// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	territoryCodeRe = regexp.MustCompile(`^[A-Za-z]{2,3}$`)
	callingCodeRe   = regexp.MustCompile(`^\+\d{1,4}$`)
)

// Validator wraps the go-playground validator for structured validation.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator with the shared custom tags registered:
//
//	territory_code  two or three ASCII letters, any case
//	calling_code    "+" followed by 1-4 digits
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("territory_code", func(fl validator.FieldLevel) bool {
		return territoryCodeRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("calling_code", func(fl validator.FieldLevel) bool {
		return callingCodeRe.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}
