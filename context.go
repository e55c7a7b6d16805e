package registrykit

import (
	"context"
)

// Context keys for registry values.
type contextKey string

const (
	contextKeyActor     contextKey = "registrykit:actor"
	contextKeyIPAddress contextKey = "registrykit:ip_address"
	contextKeyUserAgent contextKey = "registrykit:user_agent"
	contextKeyRequestID contextKey = "registrykit:request_id"
	contextKeyService   contextKey = "registrykit:service"
)

// WithActor records the authenticated address acting in this request.
// ContextAuthenticator compares the caller passed to an operation against it.
func WithActor(ctx context.Context, actor Address) context.Context {
	return context.WithValue(ctx, contextKeyActor, actor)
}

// GetActor retrieves the actor address from context.
// Returns "" if not set.
func GetActor(ctx context.Context) Address {
	if v := ctx.Value(contextKeyActor); v != nil {
		if a, ok := v.(Address); ok {
			return a
		}
	}
	return ""
}

// MustGetActor retrieves the actor address from context.
// Panics if not set.
func MustGetActor(ctx context.Context) Address {
	actor := GetActor(ctx)
	if actor == "" {
		panic("registrykit: actor not in context")
	}
	return actor
}

// WithIPAddress adds the client IP address to the context (for audit).
func WithIPAddress(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKeyIPAddress, ip)
}

// GetIPAddress retrieves the IP address from context.
func GetIPAddress(ctx context.Context) string {
	return stringValue(ctx, contextKeyIPAddress)
}

// WithUserAgent adds the user agent to the context (for audit).
func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, contextKeyUserAgent, ua)
}

// GetUserAgent retrieves the user agent from context.
func GetUserAgent(ctx context.Context) string {
	return stringValue(ctx, contextKeyUserAgent)
}

// WithRequestID adds a request ID to the context (for audit and correlation).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

// GetRequestID retrieves the request ID from context.
func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, contextKeyRequestID)
}

// WithService adds the registry Service to the context.
// Middleware sets this so handlers can reach the registry.
func WithService(ctx context.Context, svc *Service) context.Context {
	return context.WithValue(ctx, contextKeyService, svc)
}

// FromContext retrieves the Service from context.
// Returns nil if not set.
func FromContext(ctx context.Context) *Service {
	if v := ctx.Value(contextKeyService); v != nil {
		if s, ok := v.(*Service); ok {
			return s
		}
	}
	return nil
}

func stringValue(ctx context.Context, key contextKey) string {
	if v := ctx.Value(key); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// AuditContext holds all audit-related information from context.
type AuditContext struct {
	Actor     Address
	IPAddress string
	UserAgent string
	RequestID string
}

// GetAuditContext extracts all audit information from context.
func GetAuditContext(ctx context.Context) AuditContext {
	return AuditContext{
		Actor:     GetActor(ctx),
		IPAddress: GetIPAddress(ctx),
		UserAgent: GetUserAgent(ctx),
		RequestID: GetRequestID(ctx),
	}
}

// WithAuditContext adds all audit information to context at once.
func WithAuditContext(ctx context.Context, ac AuditContext) context.Context {
	if ac.Actor != "" {
		ctx = WithActor(ctx, ac.Actor)
	}
	if ac.IPAddress != "" {
		ctx = WithIPAddress(ctx, ac.IPAddress)
	}
	if ac.UserAgent != "" {
		ctx = WithUserAgent(ctx, ac.UserAgent)
	}
	if ac.RequestID != "" {
		ctx = WithRequestID(ctx, ac.RequestID)
	}
	return ctx
}
