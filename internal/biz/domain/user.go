package domain

// Capability is a role permission flag gating a bot action.
type Capability int

const (
	// CapabilityAddDefects allows publishing new defects.
	CapabilityAddDefects Capability = iota + 1
	// CapabilityBeAssigned allows working with assigned defects.
	CapabilityBeAssigned
)

// Role represents a user's role (value object)
type Role struct {
	Name          string
	CanAdd        bool
	CanBeAssigned bool
}

// Allows reports whether the role grants the capability
func (r *Role) Allows(c Capability) bool {
	switch c {
	case CapabilityAddDefects:
		return r.CanAdd
	case CapabilityBeAssigned:
		return r.CanBeAssigned
	}
	return false
}

// User represents an end-user entity
type User struct {
	ID           int64
	ChatID       int64
	FirstName    string
	LastName     string
	Username     string
	IsRegistered bool
	Role         *Role // nil when no role was granted yet
}

// Can reports whether the user's role grants the capability.
// A missing user role always denies.
func (u *User) Can(c Capability) bool {
	if u.Role == nil {
		return false
	}
	return u.Role.Allows(c)
}
