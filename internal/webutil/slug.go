package webutil

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace   = regexp.MustCompile(`[\s]+`)
)

// Slugify converts free text into a URL slug: lowercase, everything but
// letters, digits, spaces and hyphens stripped, whitespace runs collapsed
// to single hyphens, leading/trailing hyphens trimmed.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(strings.TrimSpace(s), "-")
	return strings.Trim(s, "-")
}

// UniqueSlug derives a collision-free slug from base. exists reports
// whether a candidate is already taken; collisions get -1, -2, ...
// suffixes until a free one is found.
func UniqueSlug(base string, exists func(slug string) (bool, error)) (string, error) {
	slug := Slugify(base)
	if slug == "" {
		slug = "item"
	}

	candidate := slug
	for i := 1; ; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}
