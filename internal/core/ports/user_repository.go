package ports

import (
	"context"

	"github.com/vetclinic/clinic-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
//
// Lookups return domain.ErrUserNotFound when no record matches. Insert assigns
// the identity, returns domain.ErrUserExists on a username uniqueness
// violation, and wraps domain.ErrStoreUnavailable on infrastructure failures.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
}
