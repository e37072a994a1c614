// Package isbn validates and normalizes book identifiers.
package isbn

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var cleanPattern = regexp.MustCompile(`[^0-9Xx]`)

// Normalize strips everything except digits and the check character X.
func Normalize(raw string) string {
	return strings.ToUpper(cleanPattern.ReplaceAllString(raw, ""))
}

// IsValid reports whether candidate is a checksum-valid ISBN-10 or ISBN-13.
// Callers are expected to pass normalized strings, but the input is cleaned
// again defensively. Any other length is invalid.
func IsValid(candidate string) bool {
	s := Normalize(candidate)

	switch len(s) {
	case 10:
		sum := 0
		for i := 0; i < 10; i++ {
			var v int
			switch {
			case s[i] >= '0' && s[i] <= '9':
				v = int(s[i] - '0')
			case s[i] == 'X' && i == 9:
				v = 10
			default:
				return false
			}
			sum += v * (10 - i)
		}
		return sum%11 == 0

	case 13:
		sum := 0
		for i := 0; i < 13; i++ {
			if s[i] < '0' || s[i] > '9' {
				return false
			}
			n := int(s[i] - '0')
			if i%2 == 0 {
				sum += n
			} else {
				sum += n * 3
			}
		}
		return sum%10 == 0
	}

	return false
}

// BookID derives the canonical book id from an ISBN. Books that arrive
// without a usable ISBN get a random identifier instead.
func BookID(rawIsbn string) string {
	if cleaned := Normalize(rawIsbn); cleaned != "" {
		return cleaned
	}
	return uuid.NewString()
}

// CoverURL returns the deterministic OpenLibrary cover image for an ISBN.
// Used whenever a lookup source has no cover of its own.
func CoverURL(isbn string) string {
	return "https://covers.openlibrary.org/b/isbn/" + Normalize(isbn) + "-M.jpg"
}
