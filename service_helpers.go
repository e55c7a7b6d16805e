package registrykit

import (
	"context"
	"math"
)

// ============================================================================
// INTERNAL HELPERS
// ============================================================================

func validateAddresses(addrs ...Address) error {
	for _, a := range addrs {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// loadEntity fetches an entity or fails with ErrNotFound.
func loadEntity(ctx context.Context, st storage, id uint32) (*Entity, error) {
	e, ok, err := st.entity(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewError(ErrNotFound, "no entity with this id").WithEntity(id)
	}
	return e, nil
}

// touch sets UpdatedAt to now, never earlier than CreatedAt.
func touch(e *Entity, now uint64) {
	e.UpdatedAt = max(now, e.CreatedAt)
}

// allocateEntityID reads the counter, advances it, and returns the ID to use.
func allocateEntityID(ctx context.Context, st storage) (uint32, error) {
	id, err := st.nextEntityID(ctx)
	if err != nil {
		return 0, err
	}
	if id == 0 || id == math.MaxUint32 {
		return 0, NewError(ErrIDExhausted, "next entity id cannot be advanced")
	}
	if err := st.setNextEntityID(ctx, id+1); err != nil {
		return 0, err
	}
	return id, nil
}
