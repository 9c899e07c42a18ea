// Package rbac resolves the current session's role set and decides whether a
// request may reach a privileged endpoint. Unresolved role data always
// denies: the gate fails closed while roles are loading or unavailable.
package rbac

import "strings"

// Role is a high-level permission grouping.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCS        Role = "cs"
	RoleDeveloper Role = "developer"
	RoleFinance   Role = "finance"
)

// Roles lists every role the application knows.
var Roles = []Role{RoleAdmin, RoleCS, RoleDeveloper, RoleFinance}

// ParseRole normalizes a stored role name. ok is false for unknown names.
func ParseRole(raw string) (Role, bool) {
	candidate := Role(strings.ToLower(strings.TrimSpace(raw)))
	for _, role := range Roles {
		if candidate == role {
			return role, true
		}
	}
	return "", false
}

// HasRole reports whether the session roles intersect the candidates. An
// empty candidate list means "no restriction" and always grants.
func HasRole(sessionRoles []Role, candidates []Role) bool {
	if len(candidates) == 0 {
		return true
	}
	held := make(map[Role]struct{}, len(sessionRoles))
	for _, role := range sessionRoles {
		held[role] = struct{}{}
	}
	for _, candidate := range candidates {
		if _, ok := held[candidate]; ok {
			return true
		}
	}
	return false
}
