package ports

import (
	"context"

	"github.com/vanguox/accounts-api/internal/core/domain"
)

// RegisterInput carries the registration form fields. Password and Pin arrive
// in plaintext and are hashed before anything touches the repository.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Pin       string
}

// AuthService implements the registration and login actions.
//
// Register does not establish a session; callers log in explicitly afterwards.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
}
