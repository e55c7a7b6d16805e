package registrykit

import (
	"context"
	"fmt"
)

// requireRole passes when the caller's stored role satisfies required.
func requireRole(ctx context.Context, st storage, caller Address, required Role) error {
	held, err := st.role(ctx, caller)
	if err != nil {
		return err
	}
	if !held.Satisfies(required) {
		return NewError(ErrUnauthorized, fmt.Sprintf("requires role %s, caller holds %s", required, held)).
			WithCaller(caller).
			WithRole(required)
	}
	return nil
}

// requireRoleOrOwner passes when the caller owns e or holds a role that
// satisfies required. Ownership is checked first and needs no role at all.
func requireRoleOrOwner(ctx context.Context, st storage, caller Address, e *Entity, required Role) error {
	if e.IsOwnedBy(caller) {
		return nil
	}
	held, err := st.role(ctx, caller)
	if err != nil {
		return err
	}
	if !held.Satisfies(required) {
		return NewError(ErrUnauthorized, fmt.Sprintf("requires role %s or ownership, caller holds %s", required, held)).
			WithCaller(caller).
			WithRole(required).
			WithEntity(e.ID)
	}
	return nil
}

// Checker answers permission questions for one address against a snapshot
// of its role. It is typically created by Service.Checker and used by
// handlers to decide what to show or allow.
type Checker struct {
	caller Address
	role   Role
}

// NewChecker creates a Checker for caller holding role.
func NewChecker(caller Address, role Role) *Checker {
	return &Checker{caller: caller, role: role}
}

// Caller returns the address this checker is for.
func (c *Checker) Caller() Address {
	return c.caller
}

// Role returns the role snapshot.
func (c *Checker) Role() Role {
	return c.role
}

// Can reports whether the caller passes a role-gated check.
//
//	if checker.Can(registrykit.RoleManager) {
//	    // caller may create entities
//	}
func (c *Checker) Can(required Role) bool {
	return c.role.Satisfies(required)
}

// CanAccess reports whether the caller passes a role-or-ownership check on e.
func (c *Checker) CanAccess(e *Entity, required Role) bool {
	return e.IsOwnedBy(c.caller) || c.role.Satisfies(required)
}

// CanCreateEntity reports whether the caller may create entities.
func (c *Checker) CanCreateEntity() bool {
	return c.Can(RoleManager)
}

// CanUpdateEntity reports whether the caller may update e or set its attributes.
func (c *Checker) CanUpdateEntity(e *Entity) bool {
	return c.CanAccess(e, RoleManager)
}

// CanTransfer reports whether the caller may transfer ownership of e.
func (c *Checker) CanTransfer(e *Entity) bool {
	return c.CanAccess(e, RoleAdmin)
}

// CanAssignRoles reports whether the caller may set roles and configuration.
func (c *Checker) CanAssignRoles() bool {
	return c.Can(RoleAdmin)
}

// IsEmpty reports whether the caller holds no role.
func (c *Checker) IsEmpty() bool {
	return c.role == RoleNone
}
