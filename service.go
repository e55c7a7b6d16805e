package registrykit

import (
	"log/slog"
)

// Service is the access-controlled registry.
//
// Every method runs inside a single Store.Update or Store.View call, so a
// mutation either commits all of its writes or none of them. Events produced
// by a mutation are handed to the Emitter only after the commit succeeds.
//
// Example:
//
//	svc := registrykit.NewService(registrykit.NewMemoryStore(),
//	    registrykit.WithEmitter(registrykit.NewLogEmitter(nil)),
//	)
//	if err := svc.Initialize(ctx, "alice"); err != nil {
//	    return err
//	}
//	id, err := svc.CreateEntity(ctx, "alice", "Widget", "bob")
//	if registrykit.IsUnauthorized(err) {
//	    // caller lacks the manager role
//	}
type Service struct {
	store   Store
	emitter Emitter
	clock   Clock
	auth    Authenticator
	logger  *slog.Logger
	metrics OperationMetrics
	monitor *operationMonitor
}

// Option configures a Service.
type Option func(*Service)

// WithEmitter sets the event sink. Defaults to discarding events.
func WithEmitter(e Emitter) Option {
	return func(s *Service) {
		if e != nil {
			s.emitter = e
		}
	}
}

// WithClock sets the timestamp source. Defaults to SystemClock.
func WithClock(c Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithAuthenticator sets the authentication collaborator. Defaults to TrustAll.
func WithAuthenticator(a Authenticator) Option {
	return func(s *Service) {
		if a != nil {
			s.auth = a
		}
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the operation metrics recorder.
func WithMetrics(m OperationMetrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewService creates a registry Service over store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:   store,
		emitter: nopEmitter{},
		clock:   SystemClock{},
		auth:    TrustAll{},
		logger:  slog.Default(),
		metrics: NoOpOperationMetrics{},
		monitor: newOperationMonitor(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying store.
func (s *Service) Store() Store {
	return s.store
}
