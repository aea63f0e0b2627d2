package mapper

import (
	"fmt"
	"strings"
)

// PhoneMode decides what happens when a country dial code cannot be
// resolved.
type PhoneMode string

const (
	// PhoneStrict mirrors CONCAT semantics: a missing dial code nulls the number.
	PhoneStrict PhoneMode = "strict"
	// PhoneNullSafe keeps the unqualified local number when the dial code is missing.
	PhoneNullSafe PhoneMode = "null_safe"
)

// ParsePhoneMode validates a configured mode name.
func ParsePhoneMode(s string) (PhoneMode, error) {
	switch PhoneMode(strings.ToLower(strings.TrimSpace(s))) {
	case PhoneStrict:
		return PhoneStrict, nil
	case PhoneNullSafe:
		return PhoneNullSafe, nil
	default:
		return "", fmt.Errorf("unknown phone mode %q", s)
	}
}

// NormalizePhone builds <dial_code><local_number>.
func NormalizePhone(dialCode, local *string, mode PhoneMode) *string {
	if local == nil {
		return nil
	}
	number := strings.TrimSpace(*local)
	if number == "" {
		return nil
	}

	if dialCode == nil || strings.TrimSpace(*dialCode) == "" {
		if mode == PhoneStrict {
			return nil
		}
		return &number
	}

	full := strings.TrimSpace(*dialCode) + number
	return &full
}
