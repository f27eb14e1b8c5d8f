package ports

import (
	"context"

	"github.com/aquaguard/api/internal/core/domain"
)

type UserRepository interface {
	// GetByEmail matches case-insensitively and returns nil, nil when absent.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID returns nil, nil when absent.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// Create inserts the user with its role assignments and fills in ID and
	// CreatedAt. It returns domain.ErrEmailTaken on a case-insensitive
	// email collision.
	Create(ctx context.Context, user *domain.User) error

	// EnsureRoles inserts any missing role rows. Safe to call from several
	// instances starting concurrently.
	EnsureRoles(ctx context.Context, names []string) error
}
