package registrykit

import (
	"context"

	"github.com/fernandezvara/dbkit"
	"github.com/uptrace/bun"
)

// AuditStore is an Emitter that persists events to the registry_audit_log
// table, and the query side of that table.
type AuditStore struct {
	db bun.IDB
}

// NewAuditStore creates an AuditStore on db.
func NewAuditStore(db bun.IDB) *AuditStore {
	return &AuditStore{db: db}
}

// Emit implements Emitter.
func (a *AuditStore) Emit(ctx context.Context, event Event) error {
	result, err := a.db.NewInsert().Model(event.ToModel(ctx)).Exec(ctx)
	return dbkit.WithErr(result, err, "InsertAuditLog").Err()
}

// GetAuditLog retrieves audit log entries with optional filters, oldest first.
func (a *AuditStore) GetAuditLog(ctx context.Context, filter AuditLogFilter) ([]AuditLog, error) {
	var logs []AuditLog
	q := a.db.NewSelect().Model(&logs)
	if filter.Actor != "" {
		q = q.Where("actor = ?", string(filter.Actor))
	}
	if filter.Subject != "" {
		q = q.Where("subject = ?", string(filter.Subject))
	}
	if filter.EntityID != 0 {
		q = q.Where("entity_id = ?", int64(filter.EntityID))
	}
	if filter.Topic != "" {
		q = q.Where("topic = ?", string(filter.Topic))
	}
	if filter.Action != "" {
		q = q.Where("action = ?", string(filter.Action))
	}
	if filter.Since > 0 {
		q = q.Where("ledger_time >= ?", int64(filter.Since))
	}
	if filter.Until > 0 {
		q = q.Where("ledger_time <= ?", int64(filter.Until))
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 100
	}
	q = q.Limit(limit)

	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	q = q.Order("ledger_time ASC", "recorded_at ASC")
	if err := dbkit.WithErr1(q.Scan(ctx), "GetAuditLog").Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// GetEvents is GetAuditLog with the rows converted back to events.
func (a *AuditStore) GetEvents(ctx context.Context, filter AuditLogFilter) ([]Event, error) {
	logs, err := a.GetAuditLog(ctx, filter)
	if err != nil {
		return nil, err
	}
	events := make([]Event, len(logs))
	for i := range logs {
		events[i] = logs[i].ToEvent()
	}
	return events, nil
}
