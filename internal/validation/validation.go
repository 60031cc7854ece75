// Package validation runs ordered, per-field rule lists against request payloads.
//
// Each payload lists its rules explicitly through Rules(). Every rule is
// evaluated, and the messages of the failing ones are returned in rule order.
package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "courseapi/internal/errors"
)

// EmailPattern is the accepted shape of an email address.
var EmailPattern = regexp.MustCompile(`(?i)^[^@]+@[^@.]+\.[a-z]+$`)

// Rule checks one value against a validator tag.
type Rule struct {
	Value   interface{}
	Tag     string
	Message string
}

// Ruler is implemented by payloads that declare their own ordered rules.
type Ruler interface {
	Rules() []Rule
}

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the custom "notblank" and "emailformat" tags registered.
func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("emailformat", func(fl validator.FieldLevel) bool {
		return EmailPattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate runs i's rules when it is a Ruler and falls back to struct tags otherwise.
// Failures are returned as *apperrors.ValidationError.
func (v *Validator) Validate(i interface{}) error {
	ruler, ok := i.(Ruler)
	if !ok {
		return v.validate.Struct(i)
	}
	return apperrors.NewValidationError(v.Check(ruler.Rules()))
}

// Check evaluates every rule and returns the failing messages in order.
func (v *Validator) Check(rules []Rule) []string {
	var msgs []string
	for _, r := range rules {
		if err := v.validate.Var(r.Value, r.Tag); err != nil {
			msgs = append(msgs, r.Message)
		}
	}
	return msgs
}
