package services

import (
	"errors"
	"unicode"
)

var ErrWeakPasscode = errors.New("weak passcode")

func ValidatePasscodeStrength(passcode string) error {
	if len([]rune(passcode)) < 8 {
		return ErrWeakPasscode
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, char := range passcode {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	if hasUpper && hasLower && hasDigit {
		return nil
	}
	return ErrWeakPasscode
}
