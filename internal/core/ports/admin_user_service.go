package ports

import (
	"context"

	"github.com/shopfront/storefront/internal/core/domain"
)

// Actor is the administrator performing a change.
type Actor struct {
	ID   int64
	Role string
}

// CreateAdminInput carries the fields accepted when adding an administrator.
type CreateAdminInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	Permissions domain.Permissions
	Phone       string
	Actor       Actor
}

// UpdateAdminInput replaces the mutable fields of an administrator. An empty
// Password keeps the current hash.
type UpdateAdminInput struct {
	ID          int64
	Name        string
	Email       string
	Password    string
	Role        string
	Permissions domain.Permissions
	Phone       string
	Actor       Actor
}

// AdminUserService manages administrator accounts.
type AdminUserService interface {
	Create(ctx context.Context, in CreateAdminInput) (*domain.Administrator, error)
	List(ctx context.Context) ([]domain.Administrator, error)
	Get(ctx context.Context, id int64) (*domain.Administrator, error)
	Update(ctx context.Context, in UpdateAdminInput) (*domain.Administrator, error)
	Delete(ctx context.Context, id int64, actor Actor) error
}
