package registrykit

import (
	"context"
)

// ============================================================================
// ATTRIBUTES
// ============================================================================

// SetAttribute stores value under key on an entity.
// Requires manager or ownership of the entity.
func (s *Service) SetAttribute(ctx context.Context, caller Address, id uint32, key Symbol, value string) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	if err := key.Validate(); err != nil {
		return err
	}
	return s.update(ctx, "set_attribute", caller, func(ctx context.Context, m *mutation) error {
		entity, err := loadEntity(ctx, m.st, id)
		if err != nil {
			return err
		}
		if err := requireRoleOrOwner(ctx, m.st, caller, entity, RoleManager); err != nil {
			return err
		}
		if err := m.st.setText(ctx, AttributeKey(id, key), value); err != nil {
			return err
		}

		m.emit(Event{Topic: TopicAttribute, Action: EventActionSet, Actor: caller, EntityID: id, Key: key, Value: value})
		m.emit(transactionEvent(ActionAttr, id, caller, m.now))
		return nil
	})
}

// GetAttribute returns the value stored under key on an entity, "" if unset.
// Fails with ErrNotFound when the entity does not exist.
func (s *Service) GetAttribute(ctx context.Context, id uint32, key Symbol) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}
	var value string
	err := s.view(ctx, "get_attribute", func(ctx context.Context, st storage) error {
		if _, err := loadEntity(ctx, st, id); err != nil {
			return err
		}
		var err error
		value, err = st.text(ctx, AttributeKey(id, key))
		return err
	})
	return value, err
}
