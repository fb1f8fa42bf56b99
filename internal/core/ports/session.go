package ports

import (
	"context"
	"time"

	"github.com/vanguox/accounts-api/internal/core/domain"
)

// SessionAuthenticator issues and resolves session tokens.
type SessionAuthenticator interface {
	// Issue mints a token bound to userID. It re-resolves the user first and
	// fails with domain.ErrSessionIssuance when the identity no longer exists.
	Issue(ctx context.Context, userID string) (*domain.Session, error)
	// Verify resolves a token to a user id. Missing, malformed, expired, or
	// revoked tokens yield the empty string; Verify never mutates state and
	// never propagates an error into the request pipeline.
	Verify(ctx context.Context, token string) string
	// Invalidate revokes the session carried by token, if any.
	Invalidate(ctx context.Context, token string) error
}

// SessionStore persists active session records (session id → user id).
type SessionStore interface {
	Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	Lookup(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}
