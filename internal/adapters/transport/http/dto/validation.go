package dto

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const passwordSymbols = "@$!%*#?&"

// RegisterStrongPassword installs the "strongpwd" rule: at least 8 characters
// with at least one letter, one digit, and one symbol from the allowed set.
func RegisterStrongPassword(v *validator.Validate) error {
	return v.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
		pwd := fl.Field().String()
		if utf8.RuneCountInString(pwd) < 8 {
			return false
		}
		var hasLetter, hasDigit, hasSymbol bool
		for _, r := range pwd {
			switch {
			case unicode.IsLetter(r):
				hasLetter = true
			case unicode.IsDigit(r):
				hasDigit = true
			case strings.ContainsRune(passwordSymbols, r):
				hasSymbol = true
			}
		}
		return hasLetter && hasDigit && hasSymbol
	})
}
