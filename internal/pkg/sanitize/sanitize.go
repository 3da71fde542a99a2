// Package sanitize holds the input scrubbing rules applied to free-text
// request fields before they reach the persistence layer. The repositories
// use parameterized queries; this is a second line of defense only.
package sanitize

import (
	"strings"
	"unicode/utf8"
)

const maxStringLength = 255

// String removes quote and backslash characters, trims surrounding
// whitespace and caps the result at 255 characters.
func String(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch r {
		case '\'', ';', '\\':
			continue
		default:
			b.WriteRune(r)
		}
	}
	s := strings.TrimSpace(b.String())
	if len(s) > maxStringLength {
		cut := maxStringLength
		// Back off to a rune boundary so the cap never produces invalid UTF-8.
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return s
}

// Phone strips spaces, dashes and parentheses from a phone number.
func Phone(input string) string {
	r := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\t", "")
	return strings.TrimSpace(r.Replace(input))
}
