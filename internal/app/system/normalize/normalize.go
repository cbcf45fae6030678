// Package normalize holds small input normalizers applied before rows are
// written. Keeping them in one place keeps stores and webhook handlers
// consistent about what "the same email" means.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role string before it is matched against the
// closed role set.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Month trims a "YYYY-MM" bucket string.
func Month(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims a free-text query parameter, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
