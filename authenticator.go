package registrykit

import (
	"context"
)

// TrustAll accepts every caller. It is the default Authenticator and suits
// embedders that authenticate before calling the Service.
type TrustAll struct{}

// RequireAuth implements Authenticator.
func (TrustAll) RequireAuth(context.Context, Address) error {
	return nil
}

// ContextAuthenticator accepts a caller only if it matches the actor placed
// in the context with WithActor.
type ContextAuthenticator struct{}

// RequireAuth implements Authenticator.
func (ContextAuthenticator) RequireAuth(ctx context.Context, addr Address) error {
	actor := GetActor(ctx)
	if actor == "" {
		return NewError(ErrUnauthenticated, "no authenticated actor in context").WithCaller(addr)
	}
	if actor != addr {
		return NewError(ErrUnauthenticated, "caller does not match authenticated actor").WithCaller(addr)
	}
	return nil
}
