package registrykit

import (
	"context"
	"log/slog"
)

// ============================================================================
// INITIALIZATION AND ROLES
// ============================================================================

// Initialize bootstraps the registry and makes admin its first administrator.
// It can run once; later calls fail with ErrAlreadyInitialized and change nothing.
func (s *Service) Initialize(ctx context.Context, admin Address) error {
	if err := admin.Validate(); err != nil {
		return err
	}
	return s.update(ctx, "initialize", admin, func(ctx context.Context, m *mutation) error {
		initialized, err := m.st.hasAdmin(ctx)
		if err != nil {
			return err
		}
		if initialized {
			return NewError(ErrAlreadyInitialized, "admin marker already set").WithCaller(admin)
		}

		if err := m.st.setAdmin(ctx, admin); err != nil {
			return err
		}
		if err := m.st.setNextEntityID(ctx, 1); err != nil {
			return err
		}
		if err := m.st.setEntityList(ctx, []uint32{}); err != nil {
			return err
		}
		if err := m.st.setRole(ctx, admin, RoleAdmin); err != nil {
			return err
		}

		m.emit(Event{Topic: TopicContract, Action: EventActionInit, Actor: admin})
		return nil
	})
}

// Initialized reports whether Initialize has completed.
func (s *Service) Initialized(ctx context.Context) (bool, error) {
	var initialized bool
	err := s.view(ctx, "initialized", func(ctx context.Context, st storage) error {
		var err error
		initialized, err = st.hasAdmin(ctx)
		return err
	})
	return initialized, err
}

// SetRole assigns role to address, replacing whatever it held. Requires admin.
//
// Any role may be assigned, including RoleNone, and an admin may demote
// itself; the registry keeps no floor on the number of admins.
func (s *Service) SetRole(ctx context.Context, caller, address Address, role Role) error {
	if err := validateAddresses(caller, address); err != nil {
		return err
	}
	if err := role.Validate(); err != nil {
		return err
	}
	return s.update(ctx, "set_role", caller, func(ctx context.Context, m *mutation) error {
		if err := requireRole(ctx, m.st, caller, RoleAdmin); err != nil {
			return err
		}

		if caller == address && role != RoleAdmin {
			s.logger.WarnContext(ctx, "admin is removing their own admin role",
				slog.String("caller", string(caller)),
				slog.String("role", role.String()),
			)
		}

		if err := m.st.setRole(ctx, address, role); err != nil {
			return err
		}

		m.emit(Event{Topic: TopicRole, Action: EventActionSet, Actor: caller, Subject: address, Role: role})
		return nil
	})
}

// GetRole returns the role held by address, RoleNone if it was never assigned.
func (s *Service) GetRole(ctx context.Context, address Address) (Role, error) {
	if err := address.Validate(); err != nil {
		return RoleNone, err
	}
	role := RoleNone
	err := s.view(ctx, "get_role", func(ctx context.Context, st storage) error {
		var err error
		role, err = st.role(ctx, address)
		return err
	})
	return role, err
}
