package ports

import (
	"context"

	"github.com/vanguox/accounts-api/internal/core/domain"
)

// UserRepository defines persistence for user credentials.
type UserRepository interface {
	// Create inserts a new user. A duplicate email surfaces as
	// domain.ErrDuplicateEmail regardless of which layer detected it.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
