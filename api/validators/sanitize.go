package validators

import (
	"strings"
	"unicode"
)

// SanitizeString normalizes free-text input such as product names: control
// characters are dropped, whitespace runs collapse to a single space, and the
// result is capped at maxLen runes.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)

	cleaned = strings.Join(strings.Fields(cleaned), " ")

	if maxLen > 0 {
		runes := []rune(cleaned)
		if len(runes) > maxLen {
			cleaned = strings.TrimSpace(string(runes[:maxLen]))
		}
	}
	return cleaned
}
