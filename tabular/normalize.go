package tabular

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeColumn converts a header cell to its canonical form:
// accents stripped, upper-cased, trimmed, inner whitespace collapsed
// to a single underscore. "Data Demissão" -> "DATA_DEMISSAO".
func NormalizeColumn(s string) string {
	c := strings.ToUpper(strings.TrimSpace(stripDiacritics(s)))
	return whitespaceRe.ReplaceAllString(c, "_")
}

// NormalizeValue canonicalizes a data cell for comparison: accents
// stripped, upper-cased, trimmed, whitespace collapsed to single spaces.
// Used for matching roles against exclusion lists and scanning union
// names, never for values written back to the report.
func NormalizeValue(s string) string {
	v := strings.ToUpper(strings.TrimSpace(stripDiacritics(s)))
	return whitespaceRe.ReplaceAllString(v, " ")
}

// stripDiacritics removes combining marks after NFD decomposition, so
// "FÉRIAS" and "FERIAS" normalize identically.
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
