package registrykit

import (
	"context"
	"errors"
	"sync"
)

// errReadOnly is returned by Set inside a View.
var errReadOnly = errors.New("registrykit: write attempted in read-only view")

// MemoryStore is an in-process Store.
//
// Update holds an exclusive lock for the duration of fn and stages writes in
// an overlay that is merged into the store only when fn returns nil, so a
// failed operation leaves no trace.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

// Update implements Store.
func (m *MemoryStore) Update(ctx context.Context, fn func(ctx context.Context, kv KV) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{store: m, staged: make(map[string][]byte)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for k, v := range tx.staged {
		m.data[k] = v
	}
	return nil
}

// View implements Store.
func (m *MemoryStore) View(ctx context.Context, fn func(ctx context.Context, kv KV) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fn(ctx, &memoryTx{store: m, readOnly: true})
}

// Ping implements HealthChecker. A memory store is always reachable.
func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Len returns the number of committed keys.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// memoryTx is the KV handed to a single Update or View call. The caller
// already holds the store lock.
type memoryTx struct {
	store    *MemoryStore
	staged   map[string][]byte
	readOnly bool
}

func (t *memoryTx) Get(_ context.Context, key Key) ([]byte, bool, error) {
	k := key.Encode()
	if v, ok := t.staged[k]; ok {
		return cloneBytes(v), true, nil
	}
	v, ok := t.store.data[k]
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(v), true, nil
}

func (t *memoryTx) Set(_ context.Context, key Key, value []byte) error {
	if t.readOnly {
		return errReadOnly
	}
	t.staged[key.Encode()] = cloneBytes(value)
	return nil
}

func (t *memoryTx) Has(_ context.Context, key Key) (bool, error) {
	k := key.Encode()
	if _, ok := t.staged[k]; ok {
		return true, nil
	}
	_, ok := t.store.data[k]
	return ok, nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
