package entity

import "github.com/uptrace/bun"

// Role is the closed set of staff roles.
type Role string

const (
	RoleWaiter     Role = "waiter"
	RoleKitchen    Role = "kitchen"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// ParseRole validates a raw role value against the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleWaiter, RoleKitchen, RoleSupervisor, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// User is a staff member. Authentication is out of scope; the PIN is stored
// for the terminal login flow handled elsewhere.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       int64  `bun:",pk,autoincrement"`
	Username string `bun:"username"`
	Role     Role   `bun:"role"`
	PIN      string `bun:"pin,nullzero"`
}
