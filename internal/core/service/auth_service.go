package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vanguox/accounts-api/internal/api/metrics"
	"github.com/vanguox/accounts-api/internal/core/domain"
	"github.com/vanguox/accounts-api/internal/core/ports"
)

// AuthService implements registration and login.
//
// Registration deliberately does NOT log the user in: the client calls
// POST /auth/login afterwards, so registration success never depends on
// session issuance and the password is verified exactly once per login.
type AuthService struct {
	repo     ports.UserRepository
	sessions ports.SessionAuthenticator
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, sessions ports.SessionAuthenticator, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, sessions: sessions, log: log}
}

// NormalizeEmail canonicalises the login key. The users.email unique index
// operates on this form, so A@x.com and a@x.com are one account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := NormalizeEmail(in.Email)
	if in.FirstName == "" || in.LastName == "" || email == "" || in.Password == "" || in.Pin == "" {
		return nil, domain.ErrInvalidInput
	}

	// Password and pin are hashed independently; bcrypt salts each call.
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	pinHash, err := bcrypt.GenerateFromPassword([]byte(in.Pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// Fast-path duplicate check for a friendly error. Not authoritative:
	// concurrent registrations are resolved by the unique index on email,
	// which the repository reports as ErrDuplicateEmail.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		PasswordHash: string(passwordHash),
		PinHash:      string(pinHash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("unknown_email").Inc()
			return nil, domain.ErrUnknownEmail
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("wrong_password").Inc()
		return nil, domain.ErrWrongPassword
	}

	session, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")
	return session, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Invalidate(ctx, token)
}
