package links

import (
	"math/rand"
	"regexp"
	"strings"
)

const slugCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

const (
	slugStartLength       = 8
	slugMaxLength         = 16
	slugAttemptsPerLength = 4
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

func randomSlug(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = slugCharset[rand.Intn(len(slugCharset))]
	}
	return string(b)
}

// GenerateSlug produces a slug not currently in use. On collision the
// length grows by one, so the search space widens each round; the loop is
// bounded and reports ErrSlugSpaceExhausted rather than retrying forever.
func (s *Store) GenerateSlug() (string, error) {
	for length := slugStartLength; length <= slugMaxLength; length++ {
		for attempt := 0; attempt < slugAttemptsPerLength; attempt++ {
			candidate := randomSlug(length)
			exists, err := s.SlugExists(candidate)
			if err != nil {
				return "", err
			}
			if !exists {
				return candidate, nil
			}
		}
	}
	return "", ErrSlugSpaceExhausted
}

// CanonicalizeSlug normalizes a user-supplied custom slug to the URL-safe
// charset: lowercase, with runs of other characters collapsed to hyphens.
// Custom slugs are never auto-adjusted on collision; the caller surfaces
// ErrDuplicateSlug instead.
func CanonicalizeSlug(raw string) string {
	slug := strings.ToLower(strings.TrimSpace(raw))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
