package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// FormatPhoneNumber strips formatting and ensures the Nigerian country code
// (+234) prefix for storage.
func FormatPhoneNumber(phoneNumber string) string {
	digits := nonDigits.ReplaceAllString(phoneNumber, "")

	if len(digits) > 0 && !strings.HasPrefix(digits, "234") {
		digits = strings.TrimLeft(digits, "0")
		digits = "234" + digits
	}

	return digits
}

// ValidatePhoneNumber accepts local 11-digit numbers (0XXXXXXXXXX) and
// international 234XXXXXXXXXX forms.
func ValidatePhoneNumber(phoneNumber string) bool {
	cleaned := nonDigits.ReplaceAllString(phoneNumber, "")

	switch {
	case len(cleaned) == 11 && strings.HasPrefix(cleaned, "0"):
		return true
	case len(cleaned) == 13 && strings.HasPrefix(cleaned, "234"):
		return true
	default:
		return false
	}
}
