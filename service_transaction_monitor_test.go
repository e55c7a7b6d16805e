package registrykit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOperationMonitor(t *testing.T) {
	m := newOperationMonitor()

	m.record(10*time.Millisecond, statusSuccess)
	m.record(30*time.Millisecond, statusDenied)
	m.record(20*time.Millisecond, statusError)

	stats := m.stats()
	assert.Equal(t, int64(3), stats.TotalOperations)
	assert.Equal(t, int64(1), stats.SuccessfulOperations)
	assert.Equal(t, int64(1), stats.DeniedOperations)
	assert.Equal(t, int64(1), stats.FailedOperations)
	assert.Equal(t, 20*time.Millisecond, stats.AverageDuration)
	assert.Equal(t, 30*time.Millisecond, stats.MaxDuration)
	assert.Equal(t, 10*time.Millisecond, stats.MinDuration)
	assert.InDelta(t, 2.0/3.0, stats.SuccessRate(), 1e-9)

	before := stats.LastReset
	m.reset()
	stats = m.stats()
	assert.Equal(t, OperationStats{LastReset: stats.LastReset}, stats)
	assert.False(t, stats.LastReset.Before(before))
	assert.Equal(t, 1.0, stats.SuccessRate())
}

func TestService_OperationStats(t *testing.T) {
	env := newInitializedEnv(t)
	env.service.ResetOperationStats()

	_, err := env.service.CreateEntity(env.ctx, "manager", "E", "manager")
	assert.NoError(t, err)
	_, err = env.service.CreateEntity(env.ctx, "viewer", "E", "viewer")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = env.service.GetEntity(env.ctx, 1)
	assert.NoError(t, err)

	stats := env.service.GetOperationStats()
	assert.Equal(t, int64(3), stats.TotalOperations)
	assert.Equal(t, int64(2), stats.SuccessfulOperations)
	assert.Equal(t, int64(1), stats.DeniedOperations)
	assert.Equal(t, int64(0), stats.FailedOperations)

	// Rejected calls do not make the service unhealthy.
	assert.True(t, env.service.IsOperationHealthy())
}

func TestService_IsOperationHealthy_StoreFailures(t *testing.T) {
	env := newTestEnvWithStore(t, failAfterStore{NewMemoryStore()})

	for i := 0; i < 3; i++ {
		_ = env.service.Initialize(env.ctx, "alice")
	}
	assert.False(t, env.service.IsOperationHealthy())

	env.service.ResetOperationStats()
	assert.True(t, env.service.IsOperationHealthy())
}

func TestOperationStatus(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, statusSuccess},
		{NewError(ErrUnauthorized, "x"), statusDenied},
		{NewError(ErrUnauthenticated, "x"), statusDenied},
		{NewError(ErrNotFound, "x"), statusDenied},
		{ErrAlreadyInitialized, statusDenied},
		{ErrInvalidInput, statusDenied},
		{ErrInvalidSymbol, statusDenied},
		{ErrInvalidRole, statusDenied},
		{ErrIDExhausted, statusDenied},
		{storageError("get", assert.AnError), statusError},
		{assert.AnError, statusError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, operationStatus(tt.err), "%v", tt.err)
	}
}
