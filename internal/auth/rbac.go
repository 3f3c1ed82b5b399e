package auth

import "strings"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

func ParseRole(role string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case string(RoleAdmin):
		return RoleAdmin, true
	case string(RoleSuperAdmin):
		return RoleSuperAdmin, true
	default:
		return "", false
	}
}

// RoleAllowed reports whether role is a member of the allowed set. An empty
// set never matches.
func RoleAllowed(role string, allowed ...Role) bool {
	current, ok := ParseRole(role)
	if !ok {
		return false
	}
	for _, candidate := range allowed {
		if current == candidate {
			return true
		}
	}
	return false
}
