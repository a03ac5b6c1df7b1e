package domain

import (
	"errors"
	"strings"
)

// MaxSlugLen caps derived and explicit slugs.
const MaxSlugLen = 60

var ErrInvalidSlug = errors.New("domain: invalid slug")

// Slugify lowercases s, collapses every run of characters outside [a-z0-9]
// into one hyphen, trims hyphens from both ends and caps the result at
// MaxSlugLen. It may return "" when s has no usable characters.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	out := b.String()
	if len(out) > MaxSlugLen {
		out = strings.TrimRight(out[:MaxSlugLen], "-")
	}
	return out
}

// ValidateSlug accepts only slugs already in canonical Slugify form.
func ValidateSlug(slug string) error {
	if slug == "" || Slugify(slug) != slug {
		return ErrInvalidSlug
	}
	return nil
}
