package http

import (
	"context"
	"net/http"

	"bloodbank-backend/internal/domain"
)

type sessionKey struct{}

func withSession(ctx context.Context, s domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session the auth middleware attached.
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(domain.Session)
	return s, ok
}

// mustSession is for handlers behind the auth middleware.
func mustSession(w http.ResponseWriter, r *http.Request) (domain.Session, bool) {
	s, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, r, errMissingToken)
	}
	return s, ok
}
