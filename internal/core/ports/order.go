package ports

import (
	"context"

	"github.com/shopfront/storefront/internal/core/domain"
)

// OrderRepository persists checkout orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByReference(ctx context.Context, reference string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	// Settle moves a pending order to status and records paymentID. It
	// returns domain.ErrOrderSettled when the order is no longer pending.
	Settle(ctx context.Context, reference string, status domain.PaymentStatus, paymentID string) error
}

// CaptureDedup guards payment captures against replays.
type CaptureDedup interface {
	// Claim returns true the first time a (reference, paymentID) pair is seen.
	Claim(ctx context.Context, reference, paymentID string) (bool, error)
	// Release forgets a claim whose capture was not applied.
	Release(ctx context.Context, reference, paymentID string) error
}

// CreateOrderInput carries a checkout request. Amount is in major units.
type CreateOrderInput struct {
	UserID  int64
	Address domain.ShippingAddress
	Note    string
	Amount  float64
}

// CaptureOrderInput carries the payment result reported by the client.
type CaptureOrderInput struct {
	UserID    int64
	Reference string
	PaymentID string
	Status    domain.PaymentStatus
}

// OrderService implements checkout bookkeeping.
type OrderService interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	Capture(ctx context.Context, in CaptureOrderInput) (*domain.Order, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
}
