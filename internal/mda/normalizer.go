package mda

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Normalize collapses whitespace runs to single spaces, strips non-printable
// characters and trims the result. Total and idempotent; empty in, empty out.
// Collapse happens before the strip, so a non-printable rune flanked by spaces
// leaves a double space behind.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = whitespacePattern.ReplaceAllString(text, " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsPrint(r) {
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}
