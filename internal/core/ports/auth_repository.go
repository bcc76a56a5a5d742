package ports

import (
	"context"

	"github.com/shopfront/storefront/internal/core/domain"
)

// UserRepository persists end-user accounts. Lookups that match nothing return
// domain.ErrNotFound; inserts that violate email uniqueness return
// domain.ErrConflict.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.EndUser, error)
	FindByID(ctx context.Context, id int64) (*domain.EndUser, error)
	Create(ctx context.Context, user *domain.EndUser) (*domain.EndUser, error)
}

// AdminRepository persists administrator accounts with the same error
// contract as UserRepository.
type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Administrator, error)
	FindByID(ctx context.Context, id int64) (*domain.Administrator, error)
	List(ctx context.Context) ([]domain.Administrator, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, admin *domain.Administrator) (*domain.Administrator, error)
	Update(ctx context.Context, admin *domain.Administrator) error
	// Delete removes the administrator and any end-user sharing its id.
	Delete(ctx context.Context, id int64) error
}
