package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

// OrderService records checkout orders and settles them when the client
// reports the payment result.
type OrderService struct {
	repo  ports.OrderRepository
	dedup ports.CaptureDedup
	log   zerolog.Logger
	now   func() time.Time
	newID func() string
}

func NewOrderService(repo ports.OrderRepository, dedup ports.CaptureDedup, log zerolog.Logger) *OrderService {
	return &OrderService{
		repo:  repo,
		dedup: dedup,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Create records a pending order for the caller.
func (s *OrderService) Create(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	if in.UserID <= 0 {
		return nil, domain.ErrInvalidToken
	}
	if in.Amount <= 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return nil, fmt.Errorf("%w: invalid amount", domain.ErrInvalidInput)
	}
	if in.Address.FirstName == "" || in.Address.Email == "" || in.Address.City == "" || in.Address.Country == "" {
		return nil, domain.ErrMissingFields
	}

	now := s.now().UTC()
	order := &domain.Order{
		UserID:        in.UserID,
		Reference:     "receipt_" + s.newID(),
		Address:       in.Address,
		Note:          in.Note,
		AmountMinor:   int64(math.Round(in.Amount * 100)),
		Currency:      domain.DefaultCurrency,
		PaymentMethod: domain.DefaultPaymentMethod,
		PaymentStatus: domain.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return created, nil
}

// Capture settles a pending order. Replays of the same payment are answered
// with the current order state without touching the store.
func (s *OrderService) Capture(ctx context.Context, in ports.CaptureOrderInput) (*domain.Order, error) {
	if in.Reference == "" || in.PaymentID == "" || in.Status == "" {
		return nil, domain.ErrMissingFields
	}
	if in.Status != domain.PaymentPaid && in.Status != domain.PaymentFailed {
		return nil, fmt.Errorf("%w: unsupported payment status %q", domain.ErrInvalidInput, in.Status)
	}

	order, err := s.ownedOrder(ctx, in.UserID, in.Reference)
	if err != nil {
		return nil, err
	}

	first, err := s.dedup.Claim(ctx, in.Reference, in.PaymentID)
	if err != nil {
		s.log.Warn().Err(err).Str("reference", in.Reference).Msg("capture dedup failed, processing anyway")
	} else if !first {
		s.log.Debug().Str("reference", in.Reference).Msg("duplicate capture skipped")
		return order, nil
	}
	claimed := err == nil

	if err := s.settle(ctx, order, in); err != nil {
		// A rejected or failed capture must stay retryable.
		if claimed {
			s.release(ctx, in)
		}
		return nil, err
	}

	s.log.Info().
		Str("reference", in.Reference).
		Str("status", string(in.Status)).
		Int64("user_id", in.UserID).
		Msg("order settled")

	order.PaymentStatus = in.Status
	order.PaymentID = in.PaymentID
	order.UpdatedAt = s.now().UTC()
	return order, nil
}

func (s *OrderService) settle(ctx context.Context, order *domain.Order, in ports.CaptureOrderInput) error {
	if !order.PaymentStatus.CanSettleTo(in.Status) {
		return domain.ErrOrderSettled
	}
	if err := s.repo.Settle(ctx, in.Reference, in.Status, in.PaymentID); err != nil {
		if errors.Is(err, domain.ErrOrderSettled) {
			return err
		}
		return fmt.Errorf("capture order: %w", err)
	}
	return nil
}

func (s *OrderService) release(ctx context.Context, in ports.CaptureOrderInput) {
	if err := s.dedup.Release(context.WithoutCancel(ctx), in.Reference, in.PaymentID); err != nil {
		s.log.Warn().Err(err).Str("reference", in.Reference).Msg("capture dedup release failed")
	}
}

func (s *OrderService) ListForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	out, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}

// ownedOrder loads an order and hides orders of other users behind
// ErrNotFound.
func (s *OrderService) ownedOrder(ctx context.Context, userID int64, reference string) (*domain.Order, error) {
	order, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}
