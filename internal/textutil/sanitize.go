package textutil

import "strings"

// unknownToken stands in for names that sanitize to nothing.
const unknownToken = "unknown"

// SanitizeToken lowercases value and keeps only ASCII letters, digits, '-'
// and '_', replacing every other rune with '_'. Leading and trailing
// separators are dropped; an empty result becomes "unknown".
func SanitizeToken(value string) string {
	token := strings.Map(tokenRune, strings.TrimSpace(value))
	token = strings.Trim(token, "_-")
	if token == "" {
		return unknownToken
	}
	return token
}

func tokenRune(r rune) rune {
	switch {
	case r >= 'A' && r <= 'Z':
		return r + ('a' - 'A')
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		return r
	default:
		return '_'
	}
}
