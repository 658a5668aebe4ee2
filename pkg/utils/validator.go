package utils

import (
	"fmt"
	"regexp"
)

var paymentRefPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9\-]{5,63}$`)

// ValidateThaiCitizenID validates a 13-digit Thai citizen ID, including the
// mod-11 check digit. Farmer IDs on applications use this format.
func ValidateThaiCitizenID(id string) error {
	if len(id) != 13 {
		return fmt.Errorf("citizen ID must be 13 digits: %s", id)
	}

	sum := 0
	for i := 0; i < 12; i++ {
		d := id[i]
		if d < '0' || d > '9' {
			return fmt.Errorf("citizen ID must contain only digits: %s", id)
		}
		sum += int(d-'0') * (13 - i)
	}

	last := id[12]
	if last < '0' || last > '9' {
		return fmt.Errorf("citizen ID must contain only digits: %s", id)
	}
	check := (11 - sum%11) % 10
	if int(last-'0') != check {
		return fmt.Errorf("citizen ID checksum mismatch: %s", id)
	}
	return nil
}

// ValidatePaymentReference checks that a gateway payment reference looks
// sane before it is recorded: uppercase alphanumerics and dashes, 6 to 64
// characters.
func ValidatePaymentReference(ref string) error {
	if !paymentRefPattern.MatchString(ref) {
		return fmt.Errorf("invalid payment reference format: %q", ref)
	}
	return nil
}

// SanitizeString strips control characters from free-text input.
func SanitizeString(s string) string {
	return regexp.MustCompile(`[\x00-\x1f\x7f]`).ReplaceAllString(s, "")
}
