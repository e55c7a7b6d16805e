package registrykit

import (
	"net/http"
	"strconv"
)

// DefaultActorHeader is the conventional header name for ActorFromHeader.
const DefaultActorHeader = "X-Registry-Actor"

// Middleware provides HTTP middleware for role and ownership checks.
type Middleware struct {
	service      *Service
	getActor     func(*http.Request) Address
	errorHandler func(http.ResponseWriter, *http.Request, error)
	trustProxy   bool
}

// MiddlewareOption configures the Middleware.
type MiddlewareOption func(*Middleware)

// NewMiddleware creates a new Middleware instance.
//
// By default the acting address is read from the request context, where an
// upstream authentication layer is expected to have placed it with WithActor.
//
// Example:
//
//	mw := registrykit.NewMiddleware(service)
//	handler := authenticate(mw.RequireRole(registrykit.RoleManager)(createHandler))
func NewMiddleware(service *Service, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{
		service:      service,
		getActor:     defaultGetActor,
		errorHandler: defaultErrorHandler,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// WithActorExtractor sets a custom function to extract the acting address from a request.
func WithActorExtractor(fn func(*http.Request) Address) MiddlewareOption {
	return func(m *Middleware) {
		m.getActor = fn
	}
}

// WithErrorHandler sets a custom error handler for middleware.
func WithErrorHandler(fn func(http.ResponseWriter, *http.Request, error)) MiddlewareOption {
	return func(m *Middleware) {
		m.errorHandler = fn
	}
}

// WithTrustedProxy makes InjectAuditContext take the client IP from the
// X-Forwarded-For and X-Real-IP headers. Enable it only behind a proxy that
// overwrites those headers; otherwise clients choose the IP that is audited.
func WithTrustedProxy() MiddlewareOption {
	return func(m *Middleware) {
		m.trustProxy = true
	}
}

func defaultGetActor(r *http.Request) Address {
	return GetActor(r.Context())
}

// ActorFromHeader reads the acting address from a request header. An actor
// already in the request context always takes precedence over the header.
//
// The header is client controlled: install this extractor only behind a
// gateway that authenticates the caller and sets the header itself.
func ActorFromHeader(header string) func(*http.Request) Address {
	return func(r *http.Request) Address {
		if a := GetActor(r.Context()); a != "" {
			return a
		}
		return Address(r.Header.Get(header))
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case IsUnauthenticated(err):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	case IsUnauthorized(err):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case IsNotFound(err):
		http.Error(w, "Not Found", http.StatusNotFound)
	case IsInvalidInput(err):
		http.Error(w, "Bad Request", http.StatusBadRequest)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// EntityExtractor extracts an entity ID from an HTTP request.
type EntityExtractor func(*http.Request) (uint32, error)

// EntityFromParam creates an EntityExtractor that reads the ID from a path
// parameter (Go 1.22 ServeMux patterns).
//
// Example:
//
//	// For route /entities/{id}
//	mw.RequireEntityAccess(registrykit.RoleManager, registrykit.EntityFromParam("id"))
func EntityFromParam(paramName string) EntityExtractor {
	return func(r *http.Request) (uint32, error) {
		return parseEntityID(r.PathValue(paramName))
	}
}

// EntityFromQuery creates an EntityExtractor that reads the ID from a query parameter.
func EntityFromQuery(queryParam string) EntityExtractor {
	return func(r *http.Request) (uint32, error) {
		return parseEntityID(r.URL.Query().Get(queryParam))
	}
}

func parseEntityID(raw string) (uint32, error) {
	if raw == "" {
		return 0, NewError(ErrInvalidInput, "entity id not found in request")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, NewError(ErrInvalidInput, "entity id is not a valid number")
	}
	return uint32(id), nil
}

// RequireRole creates middleware that requires the actor to hold at least role.
//
// Example:
//
//	mux.Handle("POST /entities", mw.RequireRole(registrykit.RoleManager)(createHandler))
func (m *Middleware) RequireRole(role Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			actor := m.getActor(r)
			if actor == "" {
				m.errorHandler(w, r, NewError(ErrUnauthenticated, "no actor in request"))
				return
			}

			held, err := m.service.GetRole(ctx, actor)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}
			if !held.Satisfies(role) {
				m.errorHandler(w, r, NewError(ErrUnauthorized, "missing required role").
					WithRole(role).
					WithCaller(actor))
				return
			}

			ctx = WithActor(ctx, actor)
			ctx = WithService(ctx, m.service)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireEntityAccess creates middleware that requires the actor to own the
// entity named by the request or to hold at least role.
//
// Example:
//
//	mux.Handle("PUT /entities/{id}",
//	    mw.RequireEntityAccess(registrykit.RoleManager, registrykit.EntityFromParam("id"))(updateHandler))
func (m *Middleware) RequireEntityAccess(role Role, extractor EntityExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			actor := m.getActor(r)
			if actor == "" {
				m.errorHandler(w, r, NewError(ErrUnauthenticated, "no actor in request"))
				return
			}

			id, err := extractor(r)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}

			allowed, err := m.service.CanAccessEntity(ctx, actor, id, role)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}
			if !allowed {
				m.errorHandler(w, r, NewError(ErrUnauthorized, "requires ownership or role").
					WithEntity(id).
					WithRole(role).
					WithCaller(actor))
				return
			}

			ctx = WithActor(ctx, actor)
			ctx = WithService(ctx, m.service)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (m *Middleware) clientIP(r *http.Request) string {
	if m.trustProxy {
		if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
			return ip
		}
		if ip := r.Header.Get("X-Real-IP"); ip != "" {
			return ip
		}
	}
	return r.RemoteAddr
}

// InjectAuditContext creates middleware that extracts the actor and audit
// information from the request and adds them to the context. Events emitted
// while serving the request carry this metadata into the audit log.
// The client IP is the connection's remote address unless WithTrustedProxy
// is set.
//
// Example:
//
//	handler := mw.InjectAuditContext()(mux)
func (m *Middleware) InjectAuditContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ctx = WithIPAddress(ctx, m.clientIP(r))
			ctx = WithUserAgent(ctx, r.UserAgent())

			if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
				ctx = WithRequestID(ctx, requestID)
			}

			if actor := m.getActor(r); actor != "" {
				ctx = WithActor(ctx, actor)
			}
			ctx = WithService(ctx, m.service)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
