package registrykit

import (
	"context"

	"github.com/fernandezvara/dbkit"
)

// HealthService reports on the registry's backing store.
type HealthService struct {
	*Service
	db *dbkit.DBKit
}

// NewHealthService creates a HealthService. db may be nil when the store is
// not a dbkit-managed PostgreSQL database.
func NewHealthService(service *Service, db *dbkit.DBKit) *HealthService {
	return &HealthService{Service: service, db: db}
}

// Health performs a health check of the store. For PostgreSQL this is
// dbkit's full check.
func (hs *HealthService) Health(ctx context.Context) dbkit.HealthStatus {
	if hs.db != nil {
		return hs.db.Health(ctx)
	}

	err := hs.Ping(ctx)
	status := dbkit.HealthStatus{Healthy: err == nil}
	if err != nil {
		status.Error = err.Error()
	}
	return status
}

// IsHealthy reports whether the store is reachable and recent operations
// are not failing.
func (hs *HealthService) IsHealthy(ctx context.Context) bool {
	if hs.db != nil && !hs.db.IsHealthy(ctx) {
		return false
	}
	return hs.Ping(ctx) == nil && hs.IsOperationHealthy()
}

// GetPoolStats returns connection pool statistics for monitoring.
// Returns zero values when the store has no dbkit pool.
func (hs *HealthService) GetPoolStats() dbkit.PoolStats {
	if hs.db != nil {
		return dbkit.PoolStatsFromSQL(hs.db.Stats())
	}
	return dbkit.PoolStats{}
}

// Ping checks that the store is reachable. Stores that cannot report
// health are assumed reachable.
func (hs *HealthService) Ping(ctx context.Context) error {
	if checker, ok := hs.store.(HealthChecker); ok {
		return checker.Ping(ctx)
	}
	return ctx.Err()
}
