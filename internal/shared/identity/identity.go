// Package identity normalises entity identifiers.
package identity

import (
	"strings"

	"github.com/google/uuid"
)

// Canonical returns the lowercase hyphenated form of a UUID written in any
// form uuid.Parse accepts (upper case, braces, no hyphens, urn:uuid:). Other
// identifiers are returned trimmed and otherwise untouched.
func Canonical(id string) string {
	id = strings.TrimSpace(id)
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed.String()
	}
	return id
}

// CanonicalUUID reports the canonical form of id and whether id is a UUID.
func CanonicalUUID(id string) (string, bool) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}
