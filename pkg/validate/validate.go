package validate

import (
	"regexp"
	"time"
	"unicode/utf8"
)

var (
	nameRegex = regexp.MustCompile(`^[A-Za-z]+$`)
	// Philippine mobile numbers: 09 prefix, 11 digits total
	phoneRegex = regexp.MustCompile(`^09\d{9}$`)
)

func IsValidName(s string) bool {
	return nameRegex.MatchString(s)
}

func IsValidPhoneNumber(s string) bool {
	return phoneRegex.MatchString(s)
}

// IsStrongPassword requires at least 8 characters with at least one
// letter and one digit. Other characters are allowed.
func IsStrongPassword(s string) bool {
	if utf8.RuneCountInString(s) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// Age returns whole completed years between birthdate and now.
// A birthdate in the future yields a negative age; callers reject it
// through the minimum-age rule.
func Age(birthdate, now time.Time) int {
	age := now.Year() - birthdate.Year()
	if now.Month() < birthdate.Month() ||
		(now.Month() == birthdate.Month() && now.Day() < birthdate.Day()) {
		age--
	}
	return age
}
