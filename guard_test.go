package registrykit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecker(t *testing.T) {
	owned := &Entity{ID: 1, Owner: "owner"}
	other := &Entity{ID: 2, Owner: "someone"}

	tests := []struct {
		name        string
		checker     *Checker
		create      bool
		updateOwned bool
		updateOther bool
		transfer    bool
		assign      bool
		empty       bool
	}{
		{"admin", NewChecker("a", RoleAdmin), true, true, true, true, true, false},
		{"manager", NewChecker("m", RoleManager), true, true, true, false, false, false},
		{"viewer", NewChecker("v", RoleViewer), false, false, false, false, false, false},
		{"owner without role", NewChecker("owner", RoleNone), false, true, false, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.create, tt.checker.CanCreateEntity())
			assert.Equal(t, tt.updateOwned, tt.checker.CanUpdateEntity(owned))
			assert.Equal(t, tt.updateOther, tt.checker.CanUpdateEntity(other))
			assert.Equal(t, tt.transfer, tt.checker.CanTransfer(owned))
			assert.Equal(t, tt.assign, tt.checker.CanAssignRoles())
			assert.Equal(t, tt.empty, tt.checker.IsEmpty())
		})
	}
}

func TestService_Checker(t *testing.T) {
	env := newInitializedEnv(t)

	checker, err := env.service.Checker(env.ctx, "manager")
	require.NoError(t, err)
	assert.Equal(t, Address("manager"), checker.Caller())
	assert.Equal(t, RoleManager, checker.Role())
	assert.True(t, checker.Can(RoleViewer))
	assert.False(t, checker.Can(RoleAdmin))

	_, err = env.service.CheckerFromContext(env.ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	checker, err = env.service.CheckerFromContext(WithActor(env.ctx, "admin"))
	require.NoError(t, err)
	assert.True(t, checker.CanAssignRoles())
}

func TestService_Can(t *testing.T) {
	env := newInitializedEnv(t)

	assert.True(t, env.service.Can(env.ctx, "admin", RoleManager))
	assert.True(t, env.service.Can(env.ctx, "viewer", RoleViewer))
	assert.False(t, env.service.Can(env.ctx, "viewer", RoleManager))
	assert.True(t, env.service.Can(env.ctx, "stranger", RoleNone))
	assert.False(t, env.service.Can(env.ctx, "", RoleNone))
}

func TestService_CanAccessEntity(t *testing.T) {
	env := newInitializedEnv(t)
	id, err := env.service.CreateEntity(env.ctx, "manager", "E", "owner")
	require.NoError(t, err)

	allowed, err := env.service.CanAccessEntity(env.ctx, "owner", id, RoleAdmin)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = env.service.CanAccessEntity(env.ctx, "manager", id, RoleManager)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = env.service.CanAccessEntity(env.ctx, "manager", id, RoleAdmin)
	require.NoError(t, err)
	assert.False(t, allowed)

	_, err = env.service.CanAccessEntity(env.ctx, "owner", 77, RoleManager)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContextAuthenticator_RequireAuth(t *testing.T) {
	auth := ContextAuthenticator{}
	ctx := WithActor(t.Context(), "alice")

	assert.NoError(t, auth.RequireAuth(ctx, "alice"))
	assert.ErrorIs(t, auth.RequireAuth(ctx, "bob"), ErrUnauthenticated)
	assert.ErrorIs(t, auth.RequireAuth(t.Context(), "alice"), ErrUnauthenticated)
	assert.NoError(t, TrustAll{}.RequireAuth(t.Context(), "anyone"))
}
