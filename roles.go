package registrykit

import (
	"fmt"
	"strings"
)

// Role is a coarse-grained permission tier.
//
// Roles form a total order: RoleAdmin > RoleManager > RoleViewer > RoleNone.
// An address that was never assigned a role holds RoleNone.
type Role uint8

const (
	// RoleNone grants no access to mutating operations.
	RoleNone Role = iota
	// RoleViewer can view but not modify entities.
	RoleViewer
	// RoleManager can create and manage entities but not change system settings.
	RoleManager
	// RoleAdmin has full administrative access.
	RoleAdmin
)

var roleNames = [...]string{
	RoleNone:    "none",
	RoleViewer:  "viewer",
	RoleManager: "manager",
	RoleAdmin:   "admin",
}

// Roles returns every role, lowest first.
func Roles() []Role {
	return []Role{RoleNone, RoleViewer, RoleManager, RoleAdmin}
}

// Satisfies reports whether a holder of r passes a check that requires the given role.
//
//	RoleAdmin.Satisfies(RoleManager)  // true
//	RoleViewer.Satisfies(RoleManager) // false
//	RoleNone.Satisfies(RoleNone)      // true
func (r Role) Satisfies(required Role) bool {
	return r >= required
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	return r <= RoleAdmin
}

// Validate returns ErrInvalidRole for unknown role values.
func (r Role) Validate() error {
	if !r.Valid() {
		return NewError(ErrInvalidRole, fmt.Sprintf("unknown role value %d", uint8(r)))
	}
	return nil
}

// String returns the lower-case role name.
func (r Role) String() string {
	if !r.Valid() {
		return fmt.Sprintf("role(%d)", uint8(r))
	}
	return roleNames[r]
}

// ParseRole converts a role name (case-insensitive) into a Role.
func ParseRole(name string) (Role, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, rn := range roleNames {
		if rn == n {
			return Role(i), nil
		}
	}
	return RoleNone, NewError(ErrInvalidRole, fmt.Sprintf("unknown role %q", name))
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
