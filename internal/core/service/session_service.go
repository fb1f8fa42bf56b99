package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vanguox/accounts-api/internal/api/metrics"
	"github.com/vanguox/accounts-api/internal/core/domain"
	"github.com/vanguox/accounts-api/internal/core/ports"
)

// SessionService mints and resolves session tokens. A token is an HS256 JWT
// whose jti must also be live in the session store, so revocation works even
// though the token itself is self-describing.
type SessionService struct {
	repo      ports.UserRepository
	store     ports.SessionStore
	jwtSecret string
	ttl       time.Duration
	log       zerolog.Logger
}

func NewSessionService(repo ports.UserRepository, store ports.SessionStore, jwtSecret string, ttl time.Duration, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{repo: repo, store: store, jwtSecret: jwtSecret, ttl: ttl, log: log}
}

// Issue re-resolves the user before minting: a login whose identity vanished
// between password verification and issuance must fail, not produce a
// session for a non-existent account.
func (s *SessionService) Issue(ctx context.Context, userID string) (*domain.Session, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrSessionIssuance
		}
		return nil, err
	}

	sessionID := uuid.NewString()
	expiresAt := time.Now().Add(s.ttl)

	claims := jwt.MapClaims{
		"sub": user.ID,
		"jti": sessionID,
		"exp": expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, sessionID, user.ID, s.ttl); err != nil {
		return nil, err
	}

	metrics.SessionsIssuedTotal.Inc()
	return &domain.Session{
		ID:        sessionID,
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// Verify resolves token to a user id, or "" when the token is absent,
// malformed, expired, forged, or revoked. It never returns an error: the
// route gate treats every failure as "no session".
func (s *SessionService) Verify(ctx context.Context, token string) string {
	sessionID, sub, ok := s.parse(token)
	if !ok {
		return ""
	}

	userID, err := s.store.Lookup(ctx, sessionID)
	if err != nil || userID == "" || userID != sub {
		return ""
	}
	return userID
}

func (s *SessionService) Invalidate(ctx context.Context, token string) error {
	sessionID, _, ok := s.parse(token)
	if !ok {
		return nil
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	metrics.SessionsRevokedTotal.Inc()
	return nil
}

// parse validates signature, algorithm, and expiry, returning the session id
// and subject claims.
func (s *SessionService) parse(token string) (sessionID, sub string, ok bool) {
	if token == "" {
		return "", "", false
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", "", false
	}

	sessionID, _ = claims["jti"].(string)
	sub, _ = claims["sub"].(string)
	if sessionID == "" || sub == "" {
		return "", "", false
	}
	return sessionID, sub, true
}
