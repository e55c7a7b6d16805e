package registrykit

import (
	"context"
)

// ============================================================================
// DATA RETRIEVAL
// ============================================================================

// GetEntities returns every entity in creation order, read from one
// consistent view.
func (s *Service) GetEntities(ctx context.Context) ([]*Entity, error) {
	var entities []*Entity
	err := s.view(ctx, "get_entities", func(ctx context.Context, st storage) error {
		ids, err := st.entityList(ctx)
		if err != nil {
			return err
		}
		entities = make([]*Entity, 0, len(ids))
		for _, id := range ids {
			e, err := loadEntity(ctx, st, id)
			if err != nil {
				return err
			}
			entities = append(entities, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// GetAttributes returns the values of several attribute keys of one entity.
// Unset keys map to "".
func (s *Service) GetAttributes(ctx context.Context, id uint32, keys ...Symbol) (map[Symbol]string, error) {
	for _, k := range keys {
		if err := k.Validate(); err != nil {
			return nil, err
		}
	}
	values := make(map[Symbol]string, len(keys))
	err := s.view(ctx, "get_attributes", func(ctx context.Context, st storage) error {
		if _, err := loadEntity(ctx, st, id); err != nil {
			return err
		}
		for _, k := range keys {
			v, err := st.text(ctx, AttributeKey(id, k))
			if err != nil {
				return err
			}
			values[k] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// Checker loads addr's role and returns a Checker for it.
// This can be stored in context for permission checks in handlers.
func (s *Service) Checker(ctx context.Context, addr Address) (*Checker, error) {
	role, err := s.GetRole(ctx, addr)
	if err != nil {
		return nil, err
	}
	return NewChecker(addr, role), nil
}

// CheckerFromContext creates a Checker for the actor stored in ctx.
func (s *Service) CheckerFromContext(ctx context.Context) (*Checker, error) {
	actor := GetActor(ctx)
	if actor == "" {
		return nil, NewError(ErrUnauthenticated, "no actor in context")
	}
	return s.Checker(ctx, actor)
}
