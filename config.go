package registrykit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/fernandezvara/dbkit"
	"github.com/joho/godotenv"
)

// Store drivers accepted by Config.StoreDriver.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultSQLiteDSN opens a private in-memory database. Each Open gets its
// own registry; it lives as long as the runtime's single connection.
const DefaultSQLiteDSN = "file::memory:"

// Config holds the settings used by Open.
type Config struct {
	// Store
	StoreDriver          string
	DatabaseURL          string
	SQLiteDSN            string
	DBMaxOpenConnections int
	DBMaxIdleConnections int
	DBConnMaxLifetime    time.Duration

	// Logging; LogOutput defaults to os.Stdout
	LogLevel  string
	LogOutput io.Writer

	// Audit
	AuditEnabled bool

	// Authentication: require the caller to match the context actor
	RequireActor bool

	// Metrics
	MetricsEnabled   bool
	MetricsNamespace string
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory or any parent is loaded first; variables already set
// in the environment take precedence.
func LoadConfig() *Config {
	loadDotEnv()

	return &Config{
		StoreDriver:          env.GetString("REGISTRY_STORE_DRIVER", DriverMemory),
		DatabaseURL:          env.GetString("REGISTRY_DATABASE_URL", ""),
		SQLiteDSN:            env.GetString("REGISTRY_SQLITE_DSN", DefaultSQLiteDSN),
		DBMaxOpenConnections: env.GetInt("REGISTRY_DB_MAX_OPEN_CONNECTIONS", 25),
		DBMaxIdleConnections: env.GetInt("REGISTRY_DB_MAX_IDLE_CONNECTIONS", 5),
		DBConnMaxLifetime:    env.GetDuration("REGISTRY_DB_CONN_MAX_LIFETIME_MINUTES", 5, time.Minute),

		LogLevel: env.GetString("REGISTRY_LOG_LEVEL", "info"),

		AuditEnabled: env.GetBool("REGISTRY_AUDIT_ENABLED", true),
		RequireActor: env.GetBool("REGISTRY_REQUIRE_ACTOR", false),

		MetricsEnabled:   env.GetBool("REGISTRY_METRICS_ENABLED", false),
		MetricsNamespace: env.GetString("REGISTRY_METRICS_NAMESPACE", "registrykit"),
	}
}

// Validate checks that the configuration can be opened.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("registrykit: REGISTRY_DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("registrykit: unknown store driver %q", c.StoreDriver)
	}
	return nil
}

// PoolConfig returns the connection pool settings.
func (c *Config) PoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConnections:    c.DBMaxOpenConnections,
		MaxIdleConnections:    c.DBMaxIdleConnections,
		ConnectionMaxLifetime: c.DBConnMaxLifetime,
	}
}

// NewLogger creates a JSON logger at the configured level, writing to w.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	var logLevel slog.Level
	switch c.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	return slog.New(handler)
}

func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}

// Runtime is a Service together with the resources Open created for it.
type Runtime struct {
	Service *Service
	Health  *HealthService
	Logger  *slog.Logger

	// Audit is nil for the memory driver or when auditing is disabled.
	Audit *AuditStore
	// Metrics is nil when metrics are disabled.
	Metrics *MetricsProvider

	closers []func(context.Context) error
}

// Close releases everything Open created, in reverse order.
func (r *Runtime) Close(ctx context.Context) error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

// Open builds a ready Service from cfg: it connects the store, runs
// migrations, and wires the audit store, metrics and logger.
func Open(ctx context.Context, cfg *Config) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := cfg.LogOutput
	if out == nil {
		out = os.Stdout
	}
	rt := &Runtime{Logger: cfg.NewLogger(out)}
	opts := []Option{
		WithLogger(rt.Logger),
		WithClock(NewLedgerClock(SystemClock{})),
	}
	if cfg.RequireActor {
		opts = append(opts, WithAuthenticator(ContextAuthenticator{}))
	}

	var (
		store Store
		pgDB  *dbkit.DBKit
	)
	switch cfg.StoreDriver {
	case DriverMemory:
		store = NewMemoryStore()
	case DriverSQLite:
		db, err := OpenSQLite(ctx, cfg.SQLiteDSN)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, func(context.Context) error { return db.Close() })
		store = NewBunStore(db)
		if cfg.AuditEnabled {
			rt.Audit = NewAuditStore(db)
		}
	case DriverPostgres:
		db, err := OpenPostgres(ctx, cfg.DatabaseURL, cfg.PoolConfig(), rt.Logger)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, func(context.Context) error { return db.Close() })
		pgDB = db
		store = NewBunStore(db.Bun())
		if cfg.AuditEnabled {
			rt.Audit = NewAuditStore(db.Bun())
		}
	}

	switch {
	case rt.Audit != nil:
		opts = append(opts, WithEmitter(rt.Audit))
	case cfg.AuditEnabled:
		opts = append(opts, WithEmitter(NewLogEmitter(rt.Logger)))
	}

	if cfg.MetricsEnabled {
		provider, err := NewMetricsProvider()
		if err != nil {
			_ = rt.Close(ctx)
			return nil, err
		}
		rt.closers = append(rt.closers, provider.Shutdown)
		rt.Metrics = provider

		metrics, err := NewOperationMetrics(provider.MeterProvider(), cfg.MetricsNamespace)
		if err != nil {
			_ = rt.Close(ctx)
			return nil, err
		}
		opts = append(opts, WithMetrics(metrics))
	}

	rt.Service = NewService(store, opts...)
	rt.Health = NewHealthService(rt.Service, pgDB)

	rt.Logger.InfoContext(ctx, "registry opened",
		slog.String("driver", cfg.StoreDriver),
		slog.Bool("audit", cfg.AuditEnabled),
		slog.Bool("metrics", cfg.MetricsEnabled),
	)
	return rt, nil
}
