package accounts

// UserRole is a plain role tag compared by value. Login requires the
// requested role to equal the stored one.
type UserRole = string

const (
	// RoleUser is the standard account role and the fallback when a login
	// request omits one.
	RoleUser UserRole = "user"
	// RoleAdmin marks administrative accounts.
	RoleAdmin UserRole = "admin"
)

// DefaultRole is applied when neither caller nor configuration provides one.
const DefaultRole = RoleUser

// IsValid checks if the role is one of the predefined valid roles
func IsValidRole(r UserRole) bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, IsValidRole(role)
}
