package ports

import (
	"context"

	"github.com/shopfront/storefront/internal/core/domain"
)

// CategoryRepository persists categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	// ListWithCounts returns every category with its product count, newest first.
	ListWithCounts(ctx context.Context) ([]domain.CategorySummary, error)
	Delete(ctx context.Context, id int64) error
}

// AttributeRepository persists category attributes.
type AttributeRepository interface {
	Create(ctx context.Context, a *domain.Attribute) (*domain.Attribute, error)
	// List returns attributes joined with their category name, newest first.
	List(ctx context.Context) ([]domain.Attribute, error)
	Delete(ctx context.Context, id int64) error
}

// ProductRepository persists products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

// CreateCategoryInput carries a new category. DataItem defaults to the slug
// of Name.
type CreateCategoryInput struct {
	Name     string
	DataItem string
	Icon     string
	Sale     int
}

// CreateAttributeInput carries a new attribute.
type CreateAttributeInput struct {
	CategoryID int64
	Name       string
	Value      string
}

// CatalogService implements category, attribute and product management.
type CatalogService interface {
	CreateCategory(ctx context.Context, in CreateCategoryInput) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListPublicCategories(ctx context.Context) ([]domain.CategorySummary, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateAttribute(ctx context.Context, in CreateAttributeInput) (*domain.Attribute, error)
	ListAttributes(ctx context.Context) ([]domain.Attribute, error)
	DeleteAttribute(ctx context.Context, id int64) error

	CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}
