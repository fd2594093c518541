package slug

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Slugify derives a URL-safe identifier from a product name.
// The result is lowercase, every run of characters outside [a-z0-9] becomes a
// single hyphen, and leading/trailing hyphens are stripped.
// Lowercasing uses full Unicode case mapping, so "İ" becomes "i" plus a
// combining dot above, which then splits the word.
func Slugify(name string) string {
	lower := cases.Lower(language.Und).String(name)

	var b strings.Builder
	b.Grow(len(lower))
	pendingHyphen := false
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
