// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address so lookups and
// uniqueness checks are case-insensitive.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Status canonicalizes a membership status value (MEMBER, REQUESTED,
// BLOCKED and friends are stored uppercase).
func Status(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Role canonicalizes a membership role value (admin, moderator, member).
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a free-text query parameter, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
