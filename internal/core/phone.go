package core

import "strings"

// CleanMobile normalizes free-text phone input to the canonical ten-digit
// subscriber number. It returns the cleaned number, or "" plus a reason code
// when the value is rejected. Output is always exactly ten digits or empty.
//
// Only the "+" / "00" international marker is stripped explicitly. Country
// codes vary in length, so taking the last ten digits is what actually
// removes them; the subscriber number is fixed-width in this locale.
func CleanMobile(raw string) (cleaned, reason string) {
	s := strings.TrimSpace(raw)
	if isNAToken(s) {
		return "", ReasonMobileNA
	}

	// Numeric cells exported through spreadsheets pick up a float suffix.
	s = strings.TrimSuffix(s, ".0")

	if strings.HasPrefix(s, "+") {
		s = s[1:]
	} else if strings.HasPrefix(s, "00") {
		s = s[2:]
	}

	digits := digitsOnly(s)
	if len(digits) < 10 {
		return "", ReasonTooShortDigitsPrefix + digits
	}
	return digits[len(digits)-10:], ""
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
