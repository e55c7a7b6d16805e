package registrykit

import (
	"context"
)

// ============================================================================
// CONFIGURATION
// ============================================================================

// SetConfig stores value under key. Requires admin.
func (s *Service) SetConfig(ctx context.Context, caller Address, key Symbol, value string) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	if err := key.Validate(); err != nil {
		return err
	}
	return s.update(ctx, "set_config", caller, func(ctx context.Context, m *mutation) error {
		if err := requireRole(ctx, m.st, caller, RoleAdmin); err != nil {
			return err
		}
		if err := m.st.setText(ctx, ConfigKey(key), value); err != nil {
			return err
		}

		m.emit(Event{Topic: TopicConfig, Action: key, Actor: caller, Key: key, Value: value})
		return nil
	})
}

// GetConfig returns the value stored under key, "" if unset. Open to anyone.
func (s *Service) GetConfig(ctx context.Context, key Symbol) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}
	var value string
	err := s.view(ctx, "get_config", func(ctx context.Context, st storage) error {
		var err error
		value, err = st.text(ctx, ConfigKey(key))
		return err
	})
	return value, err
}
