package ports

import (
	"context"
	"time"
)

// Session is the server-side record correlated with one login. The token is
// verified statelessly; this record exists so logout can revoke a session
// before its token expires.
type Session struct {
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
	IsLogin bool   `json:"is_login"`
}

// SessionStore keeps login sessions keyed by their correlator.
type SessionStore interface {
	Put(ctx context.Context, sessionID string, session Session, ttl time.Duration) error
	// Get returns (nil, nil) when the session does not exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
