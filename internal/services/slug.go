package services

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// transliterations covers lower-case letters that survive diacritic stripping
// because they have no canonical decomposition, plus the Greek alphabet.
var transliterations = map[rune]string{
	'ı': "i", 'ß': "ss", 'ø': "o", 'æ': "ae", 'œ': "oe", 'đ': "d", 'ð': "d",
	'ł': "l", 'þ': "th", 'ħ': "h", 'ŀ': "l", 'ŧ': "t", 'ĸ': "k",

	'α': "a", 'β': "v", 'γ': "g", 'δ': "d", 'ε': "e", 'ζ': "z", 'η': "i",
	'θ': "th", 'ι': "i", 'κ': "k", 'λ': "l", 'μ': "m", 'ν': "n", 'ξ': "x",
	'ο': "o", 'π': "p", 'ρ': "r", 'σ': "s", 'ς': "s", 'τ': "t", 'υ': "y",
	'φ': "f", 'χ': "ch", 'ψ': "ps", 'ω': "o",
}

// Slugify lower-cases value, strips diacritics, transliterates what remains
// outside a-z and joins word runs with dashes. Scripts without a
// transliteration produce an empty slug.
func Slugify(value string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), value)
	if err != nil {
		folded = value
	}
	lower := strings.ToLower(strings.TrimSpace(folded))
	var b strings.Builder
	lastDash := false
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if latin, ok := transliterations[r]; ok {
			b.WriteString(latin)
			lastDash = false
			continue
		}
		if !lastDash && b.Len() > 0 {
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// SlugOrID slugifies value and falls back to a random ShortID when nothing
// usable remains.
func SlugOrID(value string) string {
	if slug := Slugify(value); slug != "" {
		return slug
	}
	return ShortID()
}

// ValidSlug reports whether value is already in canonical slug form.
func ValidSlug(value string) bool {
	return slugPattern.MatchString(value)
}

// ShortID returns a 10 character random key.
func ShortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}
