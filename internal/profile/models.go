// Package profile holds the user profile document: a flat mapping of field
// name to value. Fields are conventionally typed (strings and booleans); the
// schema in internal/catalog supplies labels and grouping.
package profile

import (
	"strings"

	"citizengate/internal/catalog"
)

// Profile is one user's field map. Absent keys and blank strings both count
// as "missing".
type Profile map[string]any

// Metadata keys maintained by the service, not user data.
const (
	FieldUserID    = "user_id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// String returns the field's value when it is a present string.
func (p Profile) String(field string) (string, bool) {
	v, ok := p[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// IsPresent reports whether a field holds a usable value: present, and if a
// string, non-blank after trimming.
func (p Profile) IsPresent(field string) bool {
	v, ok := p[field]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// Truthy reports whether a field holds an affirmative value. Booleans are
// taken as-is; strings count when non-blank; numbers when non-zero. Used for
// document-uploaded flags and the biometric rule.
func (p Profile) Truthy(field string) bool {
	v, ok := p[field]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.TrimSpace(t) != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}

// Tier returns the profile's security tier, defaulting to basic when the
// field is absent or not a string.
func (p Profile) Tier() catalog.Tier {
	if s, ok := p.String("security_level"); ok && s != "" {
		return catalog.Tier(s)
	}
	return catalog.TierBasic
}

// Clone returns a shallow copy so callers can mutate without aliasing the
// stored map.
func (p Profile) Clone() Profile {
	out := make(Profile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
