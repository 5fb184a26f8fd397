// Package validator registers custom binding rules with gin's validator
// engine. The natid rule covers national identification numbers, which are
// exactly eleven digits.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var nationalIDPattern = regexp.MustCompile(`^[0-9]{11}$`)

// NationalID reports whether s is a well-formed national identification
// number.
func NationalID(s string) bool {
	return nationalIDPattern.MatchString(s)
}

func natID(fl validator.FieldLevel) bool {
	return NationalID(fl.Field().String())
}

// Register installs the custom rules into gin's binding engine. Call once at
// startup before any request binding happens.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("natid", natID)
}
