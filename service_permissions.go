package registrykit

import "context"

// ============================================================================
// PERMISSION CHECKING
// ============================================================================

// Can reports whether addr passes a role-gated check for required.
// Lookup failures count as a denial.
//
// Example:
//
//	if service.Can(ctx, addr, registrykit.RoleManager) {
//	    // addr may create entities
//	}
func (s *Service) Can(ctx context.Context, addr Address, required Role) bool {
	role, err := s.GetRole(ctx, addr)
	if err != nil {
		return false
	}
	return role.Satisfies(required)
}

// CanAccessEntity reports whether addr owns entity id or holds required.
// It fails with ErrNotFound when the entity does not exist.
func (s *Service) CanAccessEntity(ctx context.Context, addr Address, id uint32, required Role) (bool, error) {
	if err := addr.Validate(); err != nil {
		return false, err
	}
	var allowed bool
	err := s.view(ctx, "can_access_entity", func(ctx context.Context, st storage) error {
		entity, err := loadEntity(ctx, st, id)
		if err != nil {
			return err
		}
		err = requireRoleOrOwner(ctx, st, addr, entity, required)
		switch {
		case err == nil:
			allowed = true
		case IsUnauthorized(err):
			allowed = false
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return allowed, nil
}
