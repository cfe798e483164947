package service

import "strings"

// Slugify normalizes a display name into a URL-safe identifier:
// lowercase, runs of whitespace become a single hyphen, and any
// character outside [a-z0-9-] is dropped. Idempotent. Empty or
// all-symbol input yields an empty string.
func Slugify(name string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, slug)
}

// NormalizeTagName lowercases a tag name and collapses whitespace to
// hyphens. Unlike Slugify it keeps symbols, so names like "c++" or
// "c#" survive.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}
