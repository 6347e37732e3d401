package site

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	invalidIDChars  = regexp.MustCompile(`[^a-z0-9\s-]`)
	idSpaces        = regexp.MustCompile(`\s+`)
	idHyphens       = regexp.MustCompile(`-+`)
	leadingNonAlpha = regexp.MustCompile(`^[^a-z]+`)
)

// SafeID turns s into an HTML id: accents are stripped, the result is
// lower-case, words are joined by single hyphens and it starts with a letter.
// It returns "" when nothing usable remains.
func SafeID(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	id := strings.TrimSpace(strings.ToLower(folded))
	id = invalidIDChars.ReplaceAllString(id, "")
	id = idSpaces.ReplaceAllString(id, "-")
	id = idHyphens.ReplaceAllString(id, "-")
	id = strings.Trim(id, "-")
	return leadingNonAlpha.ReplaceAllString(id, "")
}
