package entity

import "strings"

// Role represents a user role in the system
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleStaff   Role = "STAFF"
	RoleAdmin   Role = "ADMIN"
)

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// Display returns the lowercase name used in API responses
func (r Role) Display() string {
	return strings.ToLower(string(r))
}

// ParseRole accepts a role name in any case
func ParseRole(name string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(name)))
	return role, role.IsValid()
}

// RoleForUIUID derives the role of a new account from its institutional ID prefix.
// Order matters: "011" wins over the staff and admin prefixes, unknown patterns fall back to student.
func RoleForUIUID(uiuID string) Role {
	switch {
	case strings.HasPrefix(uiuID, "011"):
		return RoleStudent
	case strings.HasPrefix(uiuID, "STAFF"), strings.HasPrefix(uiuID, "DOC"):
		return RoleStaff
	case strings.HasPrefix(uiuID, "ADMIN"), uiuID == "admin":
		return RoleAdmin
	default:
		return RoleStudent
	}
}
