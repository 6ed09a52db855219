package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// GenerateSlug derives a URL-safe identifier from a display name: lowercase,
// accents stripped via NFD decomposition, every run of characters outside
// [a-z0-9] collapsed to a single dash, no leading or trailing dash.
// Uniqueness is left to the memorials slug column constraint.
func GenerateSlug(name string) string {
	decomposed := norm.NFD.String(strings.ToLower(name))

	var b strings.Builder
	pendingDash := false
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			// combining diacritical mark left over from decomposition
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		} else {
			pendingDash = true
		}
	}
	return b.String()
}
