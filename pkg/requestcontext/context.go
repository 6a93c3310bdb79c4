// Package requestcontext provides HTTP-independent accessors for
// request-scoped values. Middleware sets them; services and handlers read
// them without importing net/http.
package requestcontext

import "context"

type (
	requestIDKey struct{}
	userIDKey    struct{}
	userEmailKey struct{}
)

// RequestID retrieves the request correlation ID, or "" if unset.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithRequestID injects a request correlation ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// UserID retrieves the authenticated user ID, or "" for anonymous requests.
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithUserID injects an authenticated user ID.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserEmail retrieves the authenticated user's email, or "" if unset.
func UserEmail(ctx context.Context) string {
	if v, ok := ctx.Value(userEmailKey{}).(string); ok {
		return v
	}
	return ""
}

// WithUserEmail injects the authenticated user's email.
func WithUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userEmailKey{}, email)
}
