package catalog

import (
	"regexp"
	"strings"
)

// FallbackKey is used when a directory name slugifies to nothing.
const FallbackKey = "untitled"

var (
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9-]+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	orderPrefix     = regexp.MustCompile(`^\d+-`)
)

// Slugify converts a category name into its stable key: lowercased,
// whitespace replaced with hyphens, everything outside [a-z0-9-] stripped,
// hyphen runs collapsed. Names that slugify to nothing get FallbackKey.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = whitespaceRuns.ReplaceAllString(slug, "-")
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = multipleHyphens.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return FallbackKey
	}
	return slug
}

// StripOrderPrefix removes a leading "<digits>-" from a key. Old gallery
// links encoded an ordering prefix that current keys no longer carry.
func StripOrderPrefix(key string) string {
	return orderPrefix.ReplaceAllString(key, "")
}
