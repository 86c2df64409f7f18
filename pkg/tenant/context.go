package tenant

import (
	"context"
	"log/slog"
)

// Context is the per-request tenant scope created by the admission
// middleware. It lives only for the duration of one request and is never
// shared across requests.
type Context struct {
	Tenant Tenant
	UserID string
}

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithContext attaches the tenant context to ctx.
func WithContext(ctx context.Context, tc Context) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// FromContext retrieves the tenant context from ctx.
func FromContext(ctx context.Context) (Context, bool) {
	tc, ok := ctx.Value(contextKey{}).(Context)
	return tc, ok
}

// SlugFromContext retrieves just the tenant slug from ctx.
// Returns "" and false for unauthenticated scopes.
func SlugFromContext(ctx context.Context) (string, bool) {
	tc, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	return tc.Tenant.Slug, true
}

// MustFromContext retrieves the tenant context and panics when absent.
// Use only in handlers mounted behind the admission middleware.
func MustFromContext(ctx context.Context) Context {
	tc, ok := FromContext(ctx)
	if !ok {
		panic(ErrNoContext)
	}
	return tc
}

// LoggerExtractor returns a logger context extractor that contributes the
// tenant slug to every log record emitted within an admitted request.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if slug, ok := SlugFromContext(ctx); ok {
			return slog.String("tenant", slug), true
		}
		return slog.Attr{}, false
	}
}
