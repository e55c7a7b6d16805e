package registrykit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/fernandezvara/dbkit"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Migrations returns the PostgreSQL migrations for the registry tables.
// Run them with db.Migrate(ctx, registrykit.Migrations()).
func Migrations() []dbkit.Migration {
	return []dbkit.Migration{
		{
			ID:          "registrykit-001",
			Description: "Create registry_kv table",
			SQL: `
                CREATE TABLE IF NOT EXISTS registry_kv (
                    kv_key TEXT PRIMARY KEY,
                    namespace TEXT NOT NULL,
                    kv_value BYTEA NOT NULL
                )`,
		},
		{
			ID:          "registrykit-002",
			Description: "Create registry_audit_log table",
			SQL: `
                CREATE TABLE IF NOT EXISTS registry_audit_log (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    recorded_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    topic TEXT NOT NULL,
                    action TEXT NOT NULL,
                    actor TEXT NOT NULL,
                    ledger_time BIGINT NOT NULL,
                    entity_id BIGINT NOT NULL DEFAULT 0,
                    subject TEXT,
                    role TEXT,
                    event_key TEXT,
                    event_value TEXT,
                    ip_address TEXT,
                    user_agent TEXT,
                    request_id TEXT
                )`,
		},
		{
			ID:          "registrykit-003",
			Description: "Index registry_audit_log by entity and actor",
			SQL: `
                CREATE INDEX IF NOT EXISTS registry_audit_log_entity_idx ON registry_audit_log (entity_id);
                CREATE INDEX IF NOT EXISTS registry_audit_log_actor_idx ON registry_audit_log (actor)`,
		},
	}
}

// PoolConfig sizes the SQL connection pool.
type PoolConfig struct {
	MaxOpenConnections    int
	MaxIdleConnections    int
	ConnectionMaxLifetime time.Duration
}

// Apply sets the pool limits on db. Zero values leave the driver defaults.
func (c PoolConfig) Apply(db *bun.DB) {
	if c.MaxOpenConnections > 0 {
		db.SetMaxOpenConns(c.MaxOpenConnections)
	}
	if c.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(c.MaxIdleConnections)
	}
	if c.ConnectionMaxLifetime > 0 {
		db.SetConnMaxLifetime(c.ConnectionMaxLifetime)
	}
}

// OpenPostgres connects to PostgreSQL through dbkit and applies Migrations.
func OpenPostgres(ctx context.Context, url string, pool PoolConfig, logger *slog.Logger) (*dbkit.DBKit, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := dbkit.New(dbkit.Config{URL: url})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	pool.Apply(db.Bun())

	result, err := db.Migrate(ctx, Migrations())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, migration := range result.Applied {
		logger.InfoContext(ctx, "applied migration", slog.String("id", migration.ID))
	}

	return db, nil
}

// OpenSQLite opens an embedded SQLite database and creates the registry
// tables. The pool is limited to one connection, so an in-memory database
// lives exactly as long as the returned handle and is visible only to it.
func OpenSQLite(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := CreateSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// CreateSchema creates the registry tables from their models if they do not
// exist. It works on any bun dialect; PostgreSQL deployments normally use
// Migrations instead.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	models := []any{
		(*kvEntry)(nil),
		(*AuditLog)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	_, err := db.NewCreateIndex().
		Model((*AuditLog)(nil)).
		Index("registry_audit_log_entity_idx").
		Column("entity_id").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	return nil
}
