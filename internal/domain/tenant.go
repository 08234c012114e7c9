// ABOUTME: Tenant domain derivation from a tenant display name
// ABOUTME: Deterministic and idempotent; output matches [a-z0-9-]+ or is empty

package domain

import "strings"

// DeriveTenantDomain derives an organization domain slug from a display
// name: lowercased, characters outside [a-z0-9 -] stripped, whitespace runs
// collapsed to single hyphens, hyphen runs collapsed, outer hyphens trimmed.
// The result is empty when the name contains no usable characters; callers
// must treat an empty domain as invalid before submission.
func DeriveTenantDomain(name string) string {
	lower := strings.ToLower(name)

	var b strings.Builder
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '-':
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	return strings.Join(fields, "-")
}

// ValidTenantDomain reports whether d is a non-empty [a-z0-9-]+ slug.
func ValidTenantDomain(d string) bool {
	if d == "" {
		return false
	}
	for _, r := range d {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}
