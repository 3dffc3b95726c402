package graphql

import (
	"context"

	entity "dashboard.GO/model/entity"
)

// Context keys for resolver injection (avoids circular imports).
type contextKey string

const CtxKeySession contextKey = "session"

// WithSession attaches the signed-in session to ctx.
func WithSession(ctx context.Context, s *entity.Session) context.Context {
	return context.WithValue(ctx, CtxKeySession, s)
}

// SessionFromContext returns the session for the current request, or nil.
func SessionFromContext(ctx context.Context) *entity.Session {
	if s, ok := ctx.Value(CtxKeySession).(*entity.Session); ok {
		return s
	}
	return nil
}
