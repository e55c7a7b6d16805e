package registrykit

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Entity is a named, owned registry record.
// ID and CreatedAt never change after creation; UpdatedAt is never before CreatedAt.
type Entity struct {
	ID        uint32  `msgpack:"id" json:"id"`
	Name      string  `msgpack:"name" json:"name"`
	Owner     Address `msgpack:"owner" json:"owner"`
	CreatedAt uint64  `msgpack:"created_at" json:"created_at"`
	UpdatedAt uint64  `msgpack:"updated_at" json:"updated_at"`
	Active    bool    `msgpack:"active" json:"active"`
}

// IsOwnedBy reports whether addr owns the entity.
func (e *Entity) IsOwnedBy(addr Address) bool {
	return e.Owner == addr
}

// Transaction actions recorded for entity mutations.
const (
	ActionCreate   Symbol = "create"
	ActionUpdate   Symbol = "update"
	ActionAttr     Symbol = "attr"
	ActionTransfer Symbol = "transfer"
)

// Transaction is the audit record of one completed entity mutation.
type Transaction struct {
	EntityID    uint32  `json:"entity_id"`
	Action      Symbol  `json:"action"`
	PerformedBy Address `json:"performed_by"`
	Timestamp   uint64  `json:"timestamp"`
}

// AuditLog is the persisted form of an Event, written by AuditStore.
type AuditLog struct {
	bun.BaseModel `bun:"table:registry_audit_log,alias:ral"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	RecordedAt time.Time `bun:"recorded_at,notnull"`

	// Event identity
	Topic  string `bun:"topic,notnull"`
	Action string `bun:"action,notnull"`

	// Who performed the action and when, on the ledger clock
	Actor     string `bun:"actor,notnull"`
	Timestamp int64  `bun:"ledger_time,notnull"`

	// Payload; zero values when the event does not carry the field
	EntityID int64  `bun:"entity_id,notnull"`
	Subject  string `bun:"subject"`
	Role     string `bun:"role"`
	Key      string `bun:"event_key"`
	Value    string `bun:"event_value"`

	// Request metadata for forensics
	IPAddress string `bun:"ip_address"`
	UserAgent string `bun:"user_agent"`
	RequestID string `bun:"request_id"`
}

// ToEvent converts a stored audit row back into the Event it was written from.
func (l *AuditLog) ToEvent() Event {
	e := Event{
		Topic:     Topic(l.Topic),
		Action:    Symbol(l.Action),
		EntityID:  uint32(l.EntityID),
		Actor:     Address(l.Actor),
		Subject:   Address(l.Subject),
		Key:       Symbol(l.Key),
		Value:     l.Value,
		Timestamp: uint64(l.Timestamp),
	}
	if l.Role != "" {
		if r, err := ParseRole(l.Role); err == nil {
			e.Role = r
		}
	}
	return e
}
