package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shopfront/storefront/internal/core/domain"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	rec := categoryRecord{
		Name:      c.Name,
		DataItem:  c.DataItem,
		Icon:      c.Icon,
		Sale:      c.Sale,
		CreatedAt: c.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translate(err)
	}
	out := rec.toDomain()
	return &out, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var recs []categoryRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]domain.Category, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toDomain())
	}
	return out, nil
}

type categoryCountRow struct {
	categoryRecord
	ProductCount int64
}

// ListWithCounts counts products by category name.
func (r *CategoryRepository) ListWithCounts(ctx context.Context) ([]domain.CategorySummary, error) {
	var rows []categoryCountRow
	err := r.db.WithContext(ctx).
		Model(&categoryRecord{}).
		Select("categories.*, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.category = categories.name").
		Group("categories.id").
		Order("categories.created_at DESC, categories.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list categories with counts: %w", err)
	}
	out := make([]domain.CategorySummary, 0, len(rows))
	for i := range rows {
		out = append(out, domain.CategorySummary{
			Category:     rows[i].toDomain(),
			ProductCount: rows[i].ProductCount,
		})
	}
	return out, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&categoryRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type AttributeRepository struct {
	db *gorm.DB
}

func NewAttributeRepository(db *gorm.DB) *AttributeRepository {
	return &AttributeRepository{db: db}
}

// Create stores a. It returns domain.ErrNotFound when the category does not
// exist.
func (r *AttributeRepository) Create(ctx context.Context, a *domain.Attribute) (*domain.Attribute, error) {
	rec := attributeRecord{
		CategoryID: a.CategoryID,
		Name:       a.Name,
		Value:      a.Value,
		CreatedAt:  a.CreatedAt,
	}
	var category categoryRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id", "name").First(&category, a.CategoryID).Error; err != nil {
			return translate(err)
		}
		return translate(tx.Create(&rec).Error)
	})
	if err != nil {
		return nil, err
	}
	return &domain.Attribute{
		ID:           rec.ID,
		CategoryID:   rec.CategoryID,
		CategoryName: category.Name,
		Name:         rec.Name,
		Value:        rec.Value,
		CreatedAt:    rec.CreatedAt.UTC(),
	}, nil
}

type attributeRow struct {
	attributeRecord
	CategoryName string
}

func (r *AttributeRepository) List(ctx context.Context) ([]domain.Attribute, error) {
	var rows []attributeRow
	err := r.db.WithContext(ctx).
		Model(&attributeRecord{}).
		Select("attributes.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = attributes.category_id").
		Order("attributes.created_at DESC, attributes.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}
	out := make([]domain.Attribute, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Attribute{
			ID:           row.ID,
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Name:         row.Name,
			Value:        row.Value,
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *AttributeRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&attributeRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete attribute: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	rec := newProductRecord(p)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, translate(err)
	}
	out := rec.toDomain()
	return &out, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	var rec productRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, translate(err)
	}
	out := rec.toDomain()
	return &out, nil
}

// List returns products newest first.
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var recs []productRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]domain.Product, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toDomain())
	}
	return out, nil
}

// Update overwrites every column except id and created_at.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	res := r.db.WithContext(ctx).
		Model(&productRecord{ID: p.ID}).
		Select("*").
		Omit("id", "created_at").
		Updates(newProductRecord(p))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&productRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
