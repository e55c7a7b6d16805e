package registrykit

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/fernandezvara/dbkit"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// advisoryLockKey serializes registry writers across processes sharing one
// PostgreSQL database.
const advisoryLockKey int64 = 0x7265676b6974 // "regkit"

// kvEntry is one row of the registry namespace.
type kvEntry struct {
	bun.BaseModel `bun:"table:registry_kv,alias:kv"`

	Key       string `bun:"kv_key,pk"`
	Namespace string `bun:"namespace,notnull"`
	Value     []byte `bun:"kv_value,notnull"`
}

// BunStore is a Store backed by a SQL database through bun.
//
// Update runs inside a database transaction. Writers are serialized in
// process and, on PostgreSQL, across processes with a transaction-scoped
// advisory lock, so the ID counter and entity index never interleave.
type BunStore struct {
	db *bun.DB
	mu sync.RWMutex
}

// NewBunStore creates a BunStore. The registry tables must exist; see
// CreateSchema and Migrations.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db}
}

// DB returns the underlying bun database.
func (s *BunStore) DB() *bun.DB {
	return s.db
}

// Update implements Store.
func (s *BunStore) Update(ctx context.Context, fn func(ctx context.Context, kv KV) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if s.db.Dialect().Name() == dialect.PG {
			_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(?)", advisoryLockKey).Exec(ctx)
			if err = dbkit.WithErr1(err, "AcquireRegistryLock").Err(); err != nil {
				return storageError("lock", err)
			}
		}
		return fn(ctx, &bunKV{db: tx})
	})
}

// View implements Store.
func (s *BunStore) View(ctx context.Context, fn func(ctx context.Context, kv KV) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var opts *sql.TxOptions
	if s.db.Dialect().Name() == dialect.PG {
		opts = &sql.TxOptions{ReadOnly: true}
	}
	return s.db.RunInTx(ctx, opts, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &bunKV{db: tx, readOnly: true})
	})
}

// Ping implements HealthChecker.
func (s *BunStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type bunKV struct {
	db       bun.IDB
	readOnly bool
}

func (kv *bunKV) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	var entry kvEntry
	err := kv.db.NewSelect().
		Model(&entry).
		Where("kv_key = ?", key.Encode()).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err = dbkit.WithErr1(err, "GetRegistryKey").Err(); err != nil {
		return nil, false, err
	}
	return entry.Value, true, nil
}

func (kv *bunKV) Set(ctx context.Context, key Key, value []byte) error {
	if kv.readOnly {
		return errReadOnly
	}
	entry := &kvEntry{
		Key:       key.Encode(),
		Namespace: string(key.Namespace()),
		Value:     value,
	}
	result, err := kv.db.NewInsert().
		Model(entry).
		On("CONFLICT (kv_key) DO UPDATE").
		Set("kv_value = EXCLUDED.kv_value").
		Exec(ctx)
	return dbkit.WithErr(result, err, "SetRegistryKey").Err()
}

func (kv *bunKV) Has(ctx context.Context, key Key) (bool, error) {
	exists, err := kv.db.NewSelect().
		Model((*kvEntry)(nil)).
		Where("kv_key = ?", key.Encode()).
		Exists(ctx)
	if err = dbkit.WithErr1(err, "HasRegistryKey").Err(); err != nil {
		return false, err
	}
	return exists, nil
}
