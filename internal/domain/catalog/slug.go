package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/storefront/backend/internal/domain/shared"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

// Slugify derives a URL slug from free text: diacritics are folded to ASCII,
// letters are lower-cased and every run of other characters becomes one dash.
func Slugify(s string) string {
	// transform.Chain keeps state, so it is built per call
	folder := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

func validateSlug(slug string, maxLen int) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	if len(slug) > maxLen {
		return shared.NewDomainError("INVALID_SLUG", "Slug is too long")
	}
	if !slugPattern.MatchString(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Slug can only contain lower-case letters, numbers, dashes and underscores")
	}
	return nil
}

// ValidateProductSlug checks a slug the way NewProduct and SetSlug do
func ValidateProductSlug(slug string) error {
	return validateSlug(slug, MaxProductSlugLength)
}

// IsSlug reports whether s is made of the characters a slug may hold.
// Length limits differ between products and categories and are not checked.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}
