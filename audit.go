package registrykit

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Topic is the first element of an event's topic tuple.
type Topic string

const (
	TopicContract    Topic = "contract"
	TopicConfig      Topic = "config"
	TopicRole        Topic = "role"
	TopicAttribute   Topic = "attribute"
	TopicOwnership   Topic = "ownership"
	TopicTransaction Topic = "transaction"
)

// Second topic elements for non-transaction events. Config events use the
// config key itself as their action.
const (
	EventActionInit     Symbol = "init"
	EventActionSet      Symbol = "set"
	EventActionTransfer Symbol = "transfer"
)

// Event is one audit notification. Which payload fields are set depends on
// the topic:
//
//	contract/init          Actor (the admin)
//	config/<key>           Actor, Key, Value
//	role/set               Actor, Subject (target address), Role
//	attribute/set          Actor, EntityID, Key, Value
//	ownership/transfer     Actor, EntityID, Subject (new owner)
//	transaction/<action>   Actor (performed_by), EntityID
//
// Timestamp is always the ledger time of the mutation.
type Event struct {
	Topic     Topic   `json:"topic"`
	Action    Symbol  `json:"action"`
	EntityID  uint32  `json:"entity_id,omitempty"`
	Actor     Address `json:"actor"`
	Subject   Address `json:"subject,omitempty"`
	Role      Role    `json:"role,omitempty"`
	Key       Symbol  `json:"key,omitempty"`
	Value     string  `json:"value,omitempty"`
	Timestamp uint64  `json:"timestamp"`
}

// IsTransaction reports whether the event is a transaction record.
func (e Event) IsTransaction() bool {
	return e.Topic == TopicTransaction
}

// Transaction returns the transaction record carried by a transaction event.
// The boolean is false for every other topic.
func (e Event) Transaction() (Transaction, bool) {
	if !e.IsTransaction() {
		return Transaction{}, false
	}
	return Transaction{
		EntityID:    e.EntityID,
		Action:      e.Action,
		PerformedBy: e.Actor,
		Timestamp:   e.Timestamp,
	}, true
}

// ToModel converts the event into an audit log row, attaching request
// metadata from ctx.
func (e Event) ToModel(ctx context.Context) *AuditLog {
	audit := GetAuditContext(ctx)
	row := &AuditLog{
		ID:         uuid.New(),
		RecordedAt: time.Now().UTC(),
		Topic:      string(e.Topic),
		Action:     string(e.Action),
		Actor:      string(e.Actor),
		Timestamp:  int64(e.Timestamp),
		EntityID:   int64(e.EntityID),
		Subject:    string(e.Subject),
		Key:        string(e.Key),
		Value:      e.Value,
		IPAddress:  audit.IPAddress,
		UserAgent:  audit.UserAgent,
		RequestID:  audit.RequestID,
	}
	if e.Topic == TopicRole {
		row.Role = e.Role.String()
	}
	return row
}

func transactionEvent(action Symbol, entityID uint32, performedBy Address, ts uint64) Event {
	return Event{
		Topic:     TopicTransaction,
		Action:    action,
		EntityID:  entityID,
		Actor:     performedBy,
		Timestamp: ts,
	}
}

// ============================================================================
// EMITTERS
// ============================================================================

// Recorder is an in-memory Emitter that keeps every event it receives.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit implements Emitter.
func (r *Recorder) Emit(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of all recorded events in emission order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// EventsByTopic returns the recorded events with the given topic.
func (r *Recorder) EventsByTopic(topic Topic) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Topic == topic {
			out = append(out, e)
		}
	}
	return out
}

// Transactions returns the transaction records among the recorded events.
func (r *Recorder) Transactions() []Transaction {
	var out []Transaction
	for _, e := range r.EventsByTopic(TopicTransaction) {
		tx, _ := e.Transaction()
		out = append(out, tx)
	}
	return out
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// LogEmitter writes every event as a structured log line.
type LogEmitter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogEmitter creates an Emitter that logs events at info level.
// A nil logger uses slog.Default().
func NewLogEmitter(logger *slog.Logger) *LogEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEmitter{logger: logger, level: slog.LevelInfo}
}

// Emit implements Emitter.
func (l *LogEmitter) Emit(ctx context.Context, e Event) error {
	attrs := []slog.Attr{
		slog.String("topic", string(e.Topic)),
		slog.String("action", string(e.Action)),
		slog.String("actor", string(e.Actor)),
		slog.Uint64("timestamp", e.Timestamp),
	}
	if e.EntityID != 0 {
		attrs = append(attrs, slog.Uint64("entity_id", uint64(e.EntityID)))
	}
	if e.Subject != "" {
		attrs = append(attrs, slog.String("subject", string(e.Subject)))
	}
	if e.Topic == TopicRole {
		attrs = append(attrs, slog.String("role", e.Role.String()))
	}
	if e.Key != "" {
		attrs = append(attrs, slog.String("key", string(e.Key)))
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}
	l.logger.LogAttrs(ctx, l.level, "registry event", attrs...)
	return nil
}

// MultiEmitter fans an event out to several emitters. Every emitter is
// called; their errors are joined.
type MultiEmitter []Emitter

// Emit implements Emitter.
func (m MultiEmitter) Emit(ctx context.Context, event Event) error {
	var errs []error
	for _, e := range m {
		if e == nil {
			continue
		}
		if err := e.Emit(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type nopEmitter struct{}

func (nopEmitter) Emit(context.Context, Event) error { return nil }
