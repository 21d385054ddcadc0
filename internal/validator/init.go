package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// Var checks a single value against a tag such as "required,max=100".
// String lengths are counted in runes.
func Var(value any, tag string) error {
	return validate.Var(value, tag)
}
