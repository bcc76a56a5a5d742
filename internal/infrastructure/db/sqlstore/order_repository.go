package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shopfront/storefront/internal/core/domain"
)

type OrderRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db, now: time.Now}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	rec := newOrderRecord(o)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, translate(err)
	}
	out := rec.toDomain()
	return &out, nil
}

func (r *OrderRepository) FindByReference(ctx context.Context, reference string) (*domain.Order, error) {
	var rec orderRecord
	if err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	out := rec.toDomain()
	return &out, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *OrderRepository) list(q *gorm.DB) ([]domain.Order, error) {
	var recs []orderRecord
	if err := q.Order("created_at DESC, id DESC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := make([]domain.Order, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toDomain())
	}
	return out, nil
}

// Settle moves a pending order to a terminal status. The status guard sits in
// the WHERE clause so concurrent captures cannot both win.
func (r *OrderRepository) Settle(ctx context.Context, reference string, status domain.PaymentStatus, paymentID string) error {
	res := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("reference = ? AND payment_status = ?", reference, string(domain.PaymentPending)).
		Updates(map[string]interface{}{
			"payment_status": string(status),
			"payment_id":     paymentID,
			"updated_at":     r.now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("settle order: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	_, err := r.FindByReference(ctx, reference)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.ErrNotFound
	case err != nil:
		return err
	}
	return domain.ErrOrderSettled
}
