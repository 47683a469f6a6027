package domain

import "sort"

// Role is a string tag attached to an account granting marketplace capabilities.
type Role = string

const (
	// RolePhotographer marks accounts that can publish and sell event photos.
	RolePhotographer Role = "photographer"
	// RoleBiker marks rider accounts (the default marketplace audience).
	RoleBiker Role = "biker"
)

// MergeRoles returns the union of existing and extra, deduplicated and
// sorted so that repeated merges are stable. Blank entries are dropped.
func MergeRoles(existing []Role, extra ...Role) []Role {
	seen := make(map[Role]struct{}, len(existing)+len(extra))
	out := make([]Role, 0, len(existing)+len(extra))
	for _, r := range append(append([]Role{}, existing...), extra...) {
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// RolesFromMetadata extracts roles from account metadata, reading either a
// `roles` array or the legacy singular `role` field. Unknown shapes yield nil.
func RolesFromMetadata(md map[string]any) []Role {
	if md == nil {
		return nil
	}
	if raw, ok := md["roles"]; ok {
		switch v := raw.(type) {
		case []string:
			return append([]Role{}, v...)
		case []any:
			out := make([]Role, 0, len(v))
			for _, e := range v {
				if s, ok := e.(string); ok {
					out = append(out, s)
				}
			}
			return out
		}
	}
	if raw, ok := md["role"]; ok {
		if s, ok := raw.(string); ok && s != "" {
			return []Role{s}
		}
	}
	return nil
}

// HasRole reports whether roles contains want.
func HasRole(roles []Role, want Role) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}
