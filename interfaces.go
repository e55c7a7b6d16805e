package registrykit

import (
	"context"
)

// KV is the key-value view of the registry namespace handed to a single operation.
type KV interface {
	// Get returns the stored value and true, or nil and false when the key is unset.
	Get(ctx context.Context, key Key) ([]byte, bool, error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key Key, value []byte) error
	// Has reports whether a value is stored under key.
	Has(ctx context.Context, key Key) (bool, error)
}

// Store is the persistent store collaborator.
//
// Update runs fn with exclusive access to the namespace and commits every Set
// made through the KV only if fn returns nil. View runs fn against a
// consistent read-only view; Set calls inside View fail.
type Store interface {
	Update(ctx context.Context, fn func(ctx context.Context, kv KV) error) error
	View(ctx context.Context, fn func(ctx context.Context, kv KV) error) error
}

// Emitter is the event/log collaborator. Emit is called once per event, after
// the mutation that produced it has been committed.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Clock supplies ledger timestamps (Unix seconds).
type Clock interface {
	Now() uint64
}

// Authenticator proves that the acting party is allowed to act as addr.
type Authenticator interface {
	RequireAuth(ctx context.Context, addr Address) error
}

// HealthChecker is implemented by stores that can report backend health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// OperationMonitor defines the in-process operation monitoring interface.
type OperationMonitor interface {
	GetOperationStats() OperationStats
	ResetOperationStats()
	IsOperationHealthy() bool
}

var (
	_ Store            = (*MemoryStore)(nil)
	_ Store            = (*BunStore)(nil)
	_ HealthChecker    = (*MemoryStore)(nil)
	_ HealthChecker    = (*BunStore)(nil)
	_ Emitter          = (*Recorder)(nil)
	_ Emitter          = (*LogEmitter)(nil)
	_ Emitter          = (*AuditStore)(nil)
	_ Emitter          = MultiEmitter(nil)
	_ Clock            = SystemClock{}
	_ Clock            = (*LedgerClock)(nil)
	_ Clock            = (*ManualClock)(nil)
	_ Authenticator    = TrustAll{}
	_ Authenticator    = ContextAuthenticator{}
	_ OperationMonitor = (*Service)(nil)
)
