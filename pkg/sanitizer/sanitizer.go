// Package sanitizer normalizes free-text input before validation and
// storage. All functions are idempotent and handle invalid input by
// returning a cleaned string rather than an error.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims the string and collapses internal whitespace
// runs to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeNote cleans a customer-supplied note and clamps it to maxLen
// runes. Notes are stored verbatim otherwise; they are free text shown to
// the vendor.
func NormalizeNote(note string, maxLen int) string {
	note = TrimAndNormalize(note)
	if maxLen <= 0 {
		return note
	}

	runes := []rune(note)
	if len(runes) > maxLen {
		return strings.TrimSpace(string(runes[:maxLen]))
	}
	return note
}
