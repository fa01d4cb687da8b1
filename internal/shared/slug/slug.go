package slug

import (
	"strings"

	gslug "github.com/gosimple/slug"
)

// Make lowercases s and joins its words with hyphens, transliterating
// non-ASCII letters ("Niños Botas" -> "ninos-botas").
func Make(s string) string {
	return gslug.Make(strings.TrimSpace(s))
}

// FromName is Make with a fallback for names that produce no slug.
func FromName(s, fallback string) string {
	if out := Make(s); out != "" {
		return out
	}
	return fallback
}

func IsValid(s string) bool { return gslug.IsSlug(s) }
