package registrykit

import (
	"context"
)

// ============================================================================
// ENTITIES
// ============================================================================

// CreateEntity registers a new active entity owned by owner and returns its
// ID. Requires manager. IDs start at 1 and increase by one per entity.
func (s *Service) CreateEntity(ctx context.Context, caller Address, name string, owner Address) (uint32, error) {
	if err := validateAddresses(caller, owner); err != nil {
		return 0, err
	}
	var id uint32
	err := s.update(ctx, "create_entity", caller, func(ctx context.Context, m *mutation) error {
		if err := requireRole(ctx, m.st, caller, RoleManager); err != nil {
			return err
		}

		newID, err := allocateEntityID(ctx, m.st)
		if err != nil {
			return err
		}

		entity := &Entity{
			ID:        newID,
			Name:      name,
			Owner:     owner,
			CreatedAt: m.now,
			UpdatedAt: m.now,
			Active:    true,
		}
		if err := m.st.setEntity(ctx, entity); err != nil {
			return err
		}

		ids, err := m.st.entityList(ctx)
		if err != nil {
			return err
		}
		if err := m.st.setEntityList(ctx, append(ids, newID)); err != nil {
			return err
		}

		m.emit(transactionEvent(ActionCreate, newID, caller, m.now))
		id = newID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateEntity replaces the name and active flag of an entity.
// Requires manager or ownership of the entity.
func (s *Service) UpdateEntity(ctx context.Context, caller Address, id uint32, name string, active bool) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	return s.update(ctx, "update_entity", caller, func(ctx context.Context, m *mutation) error {
		entity, err := loadEntity(ctx, m.st, id)
		if err != nil {
			return err
		}
		if err := requireRoleOrOwner(ctx, m.st, caller, entity, RoleManager); err != nil {
			return err
		}

		entity.Name = name
		entity.Active = active
		touch(entity, m.now)
		if err := m.st.setEntity(ctx, entity); err != nil {
			return err
		}

		m.emit(transactionEvent(ActionUpdate, id, caller, m.now))
		return nil
	})
}

// TransferOwnership makes newOwner the owner of an entity.
// Requires admin or current ownership.
func (s *Service) TransferOwnership(ctx context.Context, caller Address, id uint32, newOwner Address) error {
	if err := validateAddresses(caller, newOwner); err != nil {
		return err
	}
	return s.update(ctx, "transfer_ownership", caller, func(ctx context.Context, m *mutation) error {
		entity, err := loadEntity(ctx, m.st, id)
		if err != nil {
			return err
		}
		if err := requireRoleOrOwner(ctx, m.st, caller, entity, RoleAdmin); err != nil {
			return err
		}

		entity.Owner = newOwner
		touch(entity, m.now)
		if err := m.st.setEntity(ctx, entity); err != nil {
			return err
		}

		m.emit(Event{Topic: TopicOwnership, Action: EventActionTransfer, Actor: caller, EntityID: id, Subject: newOwner})
		m.emit(transactionEvent(ActionTransfer, id, caller, m.now))
		return nil
	})
}

// GetEntity returns the entity with the given ID or ErrNotFound.
func (s *Service) GetEntity(ctx context.Context, id uint32) (*Entity, error) {
	var entity *Entity
	err := s.view(ctx, "get_entity", func(ctx context.Context, st storage) error {
		var err error
		entity, err = loadEntity(ctx, st, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// ListEntities returns every entity ID in creation order.
func (s *Service) ListEntities(ctx context.Context) ([]uint32, error) {
	var ids []uint32
	err := s.view(ctx, "list_entities", func(ctx context.Context, st storage) error {
		var err error
		ids, err = st.entityList(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
