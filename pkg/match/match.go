// Package match provides fuzzy name matching for catalog listings.
package match

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultThreshold is the Jaro-Winkler score at which two names are considered the same.
const DefaultThreshold = 0.88

// CleanName normalizes a name for matching purposes.
// Lowercases, strips accents and punctuation, and collapses whitespace.
func CleanName(name string) string {
	s := strings.ToLower(name)
	s = removeAccents(s)

	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, ".", " ")
	s = strings.ReplaceAll(s, "'", "")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// Similarity returns the Jaro-Winkler similarity (0.0-1.0) of two cleaned names.
func Similarity(a, b string) float64 {
	return float64(edlib.JaroWinklerSimilarity(CleanName(a), CleanName(b)))
}

// Filter returns the indexes of names matching query, in input order.
// A name matches when its cleaned form contains the cleaned query, or when
// the two are at least threshold similar.
func Filter(names []string, query string, threshold float64) []int {
	q := CleanName(query)
	if q == "" {
		return nil
	}

	var out []int
	for i, name := range names {
		cleaned := CleanName(name)
		if strings.Contains(cleaned, q) {
			out = append(out, i)
			continue
		}
		if float64(edlib.JaroWinklerSimilarity(cleaned, q)) >= threshold {
			out = append(out, i)
		}
	}
	return out
}
