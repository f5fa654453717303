// Package slug derives URL-safe secondary keys from titles.
package slug

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

const maxLen = 80

// Make lowercases the title, replaces runs of non-alphanumerics with single
// hyphens, and trims the result to a sane length. An empty or fully
// non-alphanumeric title yields "untitled".
func Make(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		return "untitled"
	}
	if len(s) > maxLen {
		// Back off to a rune boundary; unicode letters survive Make and a
		// byte cut could split one.
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = strings.Trim(s[:cut], "-")
	}
	return s
}

// WithSuffix appends a short random suffix, for entities whose titles are
// expected to repeat (reading list entries share titles far more often than
// blog posts do).
func WithSuffix(title string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:4]
	return Make(title) + "-" + suffix
}
