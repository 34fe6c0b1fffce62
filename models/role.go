package models

// Role gates betting and back-office actions.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
	RoleOwner Role = "owner"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAgent, RoleOwner:
		return true
	}
	return false
}

// IsStaff reports whether r may use admin operations.
func (r Role) IsStaff() bool {
	return r == RoleAgent || r == RoleOwner
}
