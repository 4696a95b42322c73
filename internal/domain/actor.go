package domain

// Role is the actor's role.
type Role string

// Roles.
const (
	RoleAdmin    Role = "admin"
	RoleBuyer    Role = "buyer"
	RoleSupplier Role = "supplier"
	RoleSystem   Role = "system"
)

// Actor is the user performing an operation.
type Actor struct {
	UserID int64
	Role   Role
}

// SystemActor is used by background jobs and internal cascades.
func SystemActor() Actor {
	return Actor{Role: RoleSystem}
}

// Privileged reports whether the actor may perform any legal transition.
func (a Actor) Privileged() bool {
	return a.Role == RoleAdmin || a.Role == RoleSystem
}

// UserIDPtr returns the user id for history rows, nil for the system actor.
func (a Actor) UserIDPtr() *int64 {
	if a.Role == RoleSystem || a.UserID == 0 {
		return nil
	}
	id := a.UserID
	return &id
}

// ParseRole validates a role name.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	switch r {
	case RoleAdmin, RoleBuyer, RoleSupplier, RoleSystem:
		return r, true
	}
	return r, false
}
