package types

import "time"

// User roles. A username is asserted by the operator for traceability;
// there is no password or credential.
const (
	RoleAdmin   = "admin"
	RoleAnalyst = "analyst"
	RoleGuest   = "guest"
)

var validRoles = map[string]bool{
	RoleAdmin:   true,
	RoleAnalyst: true,
	RoleGuest:   true,
}

// User is an operator identity used for audit and chain-of-custody
// attribution.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidRole reports whether role is a recognized user role.
func ValidRole(role string) bool {
	return validRoles[role]
}
