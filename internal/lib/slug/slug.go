package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	valid    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Make turns a title into a URL-safe slug: accents are folded, letters
// lower-cased and every other run of characters becomes a single dash.
func Make(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	s := nonAlnum.ReplaceAllString(strings.ToLower(folded), "-")

	return strings.Trim(s, "-")
}

func Valid(s string) bool {
	return valid.MatchString(s)
}
