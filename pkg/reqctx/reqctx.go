package reqctx

import (
	"context"
	"time"
)

type contextKey struct{}

// Meta carries per-request metadata through service calls for logging.
type Meta struct {
	RequestID   string
	ClientIP    string
	UserAgent   string
	RequestedAt time.Time
}

func WithMeta(ctx context.Context, m Meta) context.Context {
	return context.WithValue(ctx, contextKey{}, m)
}

func MetaFrom(ctx context.Context) (Meta, bool) {
	m, ok := ctx.Value(contextKey{}).(Meta)
	return m, ok
}

// RequestID returns the request id from ctx, or "" when absent.
func RequestID(ctx context.Context) string {
	m, _ := MetaFrom(ctx)
	return m.RequestID
}
