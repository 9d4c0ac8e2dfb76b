// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them, services only read them, so
// service packages never need to import net/http.
package requestcontext

import "context"

// Context key types (unexported for encapsulation).
type (
	requestIDKey struct{}
	clientIPKey  struct{}
	apiKeyIDKey  struct{}
)

// WithRequestID attaches the request correlation ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request correlation ID, or "" when unset.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithClientIP attaches the originating client IP to the context.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP returns the originating client IP, or "" when unset.
func ClientIP(ctx context.Context) string {
	if v, ok := ctx.Value(clientIPKey{}).(string); ok {
		return v
	}
	return ""
}

// WithAPIKeyID attaches the authenticated API key identifier (a hash prefix,
// never the raw key) to the context.
func WithAPIKeyID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, apiKeyIDKey{}, id)
}

// APIKeyID returns the authenticated API key identifier, or "" when unset.
func APIKeyID(ctx context.Context) string {
	if v, ok := ctx.Value(apiKeyIDKey{}).(string); ok {
		return v
	}
	return ""
}
