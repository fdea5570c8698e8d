package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Российский формат номера: +7/8, затем код и номер, допускаются
// пробелы, дефисы и скобки.
var phonePattern = regexp.MustCompile(`^(\+7|8)?[\s\-]?\(?[489][0-9]{2}\)?[\s\-]?[0-9]{3}[\s\-]?[0-9]{2}[\s\-]?[0-9]{2}$`)

var (
	hasLetter = regexp.MustCompile(`[A-Za-z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
)

// IsPhoneRU validates an optional phone field against the regional
// pattern. Absence is handled by the omitempty binding tag, not here.
func IsPhoneRU(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// IsUserPassword enforces the password policy: at least 8 characters
// with at least one letter and one digit.
func IsUserPassword(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	if len(pw) < 8 {
		return false
	}
	return hasLetter.MatchString(pw) && hasDigit.MatchString(pw)
}
