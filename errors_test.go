package registrykit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSentinelErrors tests that all sentinel errors are properly defined
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrAlreadyInitialized", ErrAlreadyInitialized, "registrykit: already initialized"},
		{"ErrUnauthorized", ErrUnauthorized, "registrykit: insufficient permissions"},
		{"ErrNotFound", ErrNotFound, "registrykit: entity not found"},
		{"ErrUnauthenticated", ErrUnauthenticated, "registrykit: unauthenticated"},
		{"ErrInvalidInput", ErrInvalidInput, "registrykit: invalid input"},
		{"ErrInvalidSymbol", ErrInvalidSymbol, "registrykit: invalid symbol"},
		{"ErrInvalidRole", ErrInvalidRole, "registrykit: invalid role"},
		{"ErrIDExhausted", ErrIDExhausted, "registrykit: entity id space exhausted"},
		{"ErrStorage", ErrStorage, "registrykit: storage error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestError_Error(t *testing.T) {
	t.Run("With message", func(t *testing.T) {
		err := &Error{Err: ErrUnauthorized, Message: "requires role admin"}
		assert.Equal(t, "registrykit: insufficient permissions: requires role admin", err.Error())
	})

	t.Run("Without message", func(t *testing.T) {
		err := &Error{Err: ErrNotFound}
		assert.Equal(t, "registrykit: entity not found", err.Error())
	})
}

func TestError_UnwrapAndIs(t *testing.T) {
	err := NewError(ErrNotFound, "no entity with this id").WithEntity(7)

	assert.Equal(t, ErrNotFound, err.Unwrap())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrUnauthorized))

	wrapped := fmt.Errorf("update failed: %w", err)
	assert.True(t, IsNotFound(wrapped))

	var regErr *Error
	assert.True(t, errors.As(wrapped, &regErr))
	assert.Equal(t, uint32(7), regErr.EntityID)
}

func TestError_Builders(t *testing.T) {
	err := NewError(ErrUnauthorized, "denied").
		WithEntity(3).
		WithCaller("bob").
		WithRole(RoleManager).
		WithKey("color")

	assert.Equal(t, uint32(3), err.EntityID)
	assert.Equal(t, Address("bob"), err.Caller)
	assert.Equal(t, RoleManager, err.Role)
	assert.Equal(t, Symbol("color"), err.Key)
}

func TestErrorHelpers(t *testing.T) {
	assert.True(t, IsUnauthorized(NewError(ErrUnauthorized, "")))
	assert.True(t, IsAlreadyInitialized(NewError(ErrAlreadyInitialized, "")))
	assert.True(t, IsUnauthenticated(NewError(ErrUnauthenticated, "")))

	assert.True(t, IsInvalidInput(NewError(ErrInvalidInput, "")))
	assert.True(t, IsInvalidInput(NewError(ErrInvalidSymbol, "")))
	assert.True(t, IsInvalidInput(NewError(ErrInvalidRole, "")))
	assert.False(t, IsInvalidInput(ErrNotFound))

	assert.False(t, IsUnauthorized(nil))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestStorageError(t *testing.T) {
	assert.NoError(t, storageError("get", nil))

	cause := errors.New("disk full")
	err := storageError("set entity", cause)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "set entity")
}
