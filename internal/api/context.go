package api

import (
	"context"

	"github.com/veridia/authgate/internal/token"
)

type sessionContextKey struct{}

// withSession returns a context carrying the verified session.
func withSession(ctx context.Context, sess token.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext returns the session the middleware attached after
// verifying the bearer token. The second value is false on routes that run
// outside the session middleware.
func SessionFromContext(ctx context.Context) (token.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(token.Session)
	return sess, ok
}
