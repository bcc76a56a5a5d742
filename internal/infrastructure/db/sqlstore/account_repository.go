package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shopfront/storefront/internal/core/domain"
)

// UserRepository stores storefront accounts in the users table.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.EndUser, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return rec.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.EndUser, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, translate(err)
	}
	return rec.toDomain(), nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.EndUser) (*domain.EndUser, error) {
	rec := userRecord{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return rec.toDomain(), nil
}

// AdminRepository stores administrator accounts in the admins table.
type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Administrator, error) {
	var rec adminRecord
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return rec.toDomain(), nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id int64) (*domain.Administrator, error) {
	var rec adminRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, translate(err)
	}
	return rec.toDomain(), nil
}

// List returns administrators newest first.
func (r *AdminRepository) List(ctx context.Context) ([]domain.Administrator, error) {
	var recs []adminRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	out := make([]domain.Administrator, 0, len(recs))
	for i := range recs {
		out = append(out, *recs[i].toDomain())
	}
	return out, nil
}

func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&adminRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return n, nil
}

func (r *AdminRepository) Create(ctx context.Context, admin *domain.Administrator) (*domain.Administrator, error) {
	rec := newAdminRecord(admin)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, translate(err)
	}
	return rec.toDomain(), nil
}

// Update overwrites every mutable column, zero values included.
func (r *AdminRepository) Update(ctx context.Context, admin *domain.Administrator) error {
	rec := newAdminRecord(admin)
	res := r.db.WithContext(ctx).
		Model(&adminRecord{ID: admin.ID}).
		Select("name", "email", "password_hash", "role", "permissions", "phone", "updated_at").
		Updates(rec)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the administrator and the end-user row sharing its id in a
// single transaction.
func (r *AdminRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&adminRecord{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete admin: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		if err := tx.Delete(&userRecord{}, id).Error; err != nil {
			return fmt.Errorf("delete admin user row: %w", err)
		}
		return nil
	})
}
