package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// CtxUserIDKey mirrors Session.UserID in the gin context for keying and logs.
const CtxUserIDKey = "userID"

// Session is the authenticated caller of a request.
type Session struct {
	UserID    string
	ExpiresAt time.Time
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session attached by Auth.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok && s.UserID != ""
}

// SessionFrom is SessionFromContext for a gin request.
func SessionFrom(c *gin.Context) (Session, bool) {
	return SessionFromContext(c.Request.Context())
}
