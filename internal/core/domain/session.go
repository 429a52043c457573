package domain

import (
	"context"
	"time"
)

// Session is an authenticated session backed by a signed access token.
type Session struct {
	AccessToken string
	TokenID     string
	ExpiresAt   time.Time
	UserID      string
	Email       string
}

// Expired reports whether the session is no longer usable at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type sessionKey struct{}

// ContextWithSession returns a copy of ctx carrying s.
func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by ContextWithSession, if any.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}
