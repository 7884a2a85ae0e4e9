package validate

import (
	"regexp"

	"github.com/ShiraazMoollatjie/goluhn"
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+?\d{7,15}$`)
)

func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

func IsPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// IsAccountNumber reports whether s is a plausible destination account
// number: digits only with a valid Luhn check digit.
func IsAccountNumber(s string) bool {
	err := goluhn.Validate(s)
	return err == nil
}

func IsPassword(s string) bool {
	return len(s) >= 8
}
