package registrykit

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// mutation is the per-call state of one mutating operation: the storage
// accessor bound to the open store transaction, the ledger time of the call,
// and the events waiting for the commit.
type mutation struct {
	st     storage
	now    uint64
	events []Event
}

func (m *mutation) emit(e Event) {
	e.Timestamp = m.now
	m.events = append(m.events, e)
}

// update authenticates caller and runs fn inside one Store.Update. Buffered
// events are emitted in order once the store has committed; emitter failures
// are logged and do not change the result.
func (s *Service) update(ctx context.Context, op string, caller Address, fn func(ctx context.Context, m *mutation) error) error {
	start := time.Now()

	var events []Event
	err := s.auth.RequireAuth(ctx, caller)
	if err == nil {
		err = s.store.Update(ctx, func(ctx context.Context, kv KV) error {
			m := &mutation{st: newStorage(kv), now: s.clock.Now()}
			if err := fn(ctx, m); err != nil {
				return err
			}
			events = m.events
			return nil
		})
	}

	s.finish(ctx, op, caller, start, err)
	if err != nil {
		return err
	}

	for _, e := range events {
		if emitErr := s.emitter.Emit(ctx, e); emitErr != nil {
			s.logger.WarnContext(ctx, "event emission failed",
				slog.String("operation", op),
				slog.String("topic", string(e.Topic)),
				slog.String("action", string(e.Action)),
				slog.Any("error", emitErr),
			)
		}
	}
	return nil
}

// view runs fn against a read-only view of the store.
func (s *Service) view(ctx context.Context, op string, fn func(ctx context.Context, st storage) error) error {
	start := time.Now()
	err := s.store.View(ctx, func(ctx context.Context, kv KV) error {
		return fn(ctx, newStorage(kv))
	})
	s.finish(ctx, op, "", start, err)
	return err
}

func (s *Service) finish(ctx context.Context, op string, caller Address, start time.Time, err error) {
	duration := time.Since(start)
	status := operationStatus(err)

	s.metrics.RecordOperation(ctx, op, status)
	s.metrics.RecordDuration(ctx, op, duration, status)
	s.monitor.record(duration, status)

	switch status {
	case statusSuccess:
		if caller != "" {
			s.logger.DebugContext(ctx, "registry operation completed",
				slog.String("operation", op),
				slog.String("caller", string(caller)),
			)
		}
	case statusDenied:
		s.logger.InfoContext(ctx, "registry operation rejected",
			slog.String("operation", op),
			slog.String("caller", string(caller)),
			slog.String("reason", err.Error()),
		)
	default:
		s.logger.ErrorContext(ctx, "registry operation failed",
			slog.String("operation", op),
			slog.Any("error", err),
		)
	}
}

// operationStatus classifies an operation result. Errors caused by the
// caller (permissions, bad input, unknown entity) are "denied"; everything
// else, including store failures, is "error".
func operationStatus(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case errors.Is(err, ErrStorage):
		return statusError
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrAlreadyInitialized),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidSymbol),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrIDExhausted):
		return statusDenied
	default:
		return statusError
	}
}
