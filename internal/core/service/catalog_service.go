package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

// CatalogService manages categories, attributes and products.
type CatalogService struct {
	categories ports.CategoryRepository
	attributes ports.AttributeRepository
	products   ports.ProductRepository
	now        func() time.Time
}

func NewCatalogService(
	categories ports.CategoryRepository,
	attributes ports.AttributeRepository,
	products ports.ProductRepository,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		attributes: attributes,
		products:   products,
		now:        time.Now,
	}
}

// --- Categories ---

func (s *CatalogService) CreateCategory(ctx context.Context, in ports.CreateCategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.Icon) == "" {
		return nil, domain.ErrMissingFields
	}
	if in.Sale < 0 || in.Sale > 100 {
		return nil, fmt.Errorf("%w: sale must be between 0 and 100", domain.ErrInvalidInput)
	}

	dataItem := strings.TrimSpace(in.DataItem)
	if dataItem == "" {
		dataItem = domain.Slugify(name)
	}

	created, err := s.categories.Create(ctx, &domain.Category{
		Name:      name,
		DataItem:  dataItem,
		Icon:      strings.TrimSpace(in.Icon),
		Sale:      in.Sale,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	out, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (s *CatalogService) ListPublicCategories(ctx context.Context) ([]domain.CategorySummary, error) {
	out, err := s.categories.ListWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list public categories: %w", err)
	}
	return out, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return passNotFound(s.categories.Delete(ctx, id), "delete category")
}

// --- Attributes ---

func (s *CatalogService) CreateAttribute(ctx context.Context, in ports.CreateAttributeInput) (*domain.Attribute, error) {
	name := strings.TrimSpace(in.Name)
	value := strings.TrimSpace(in.Value)
	if in.CategoryID <= 0 || name == "" || value == "" {
		return nil, domain.ErrMissingFields
	}

	created, err := s.attributes.Create(ctx, &domain.Attribute{
		CategoryID: in.CategoryID,
		Name:       name,
		Value:      value,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown category %d", domain.ErrNotFound, in.CategoryID)
		}
		return nil, fmt.Errorf("create attribute: %w", err)
	}
	return created, nil
}

func (s *CatalogService) ListAttributes(ctx context.Context) ([]domain.Attribute, error) {
	out, err := s.attributes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}
	return out, nil
}

func (s *CatalogService) DeleteAttribute(ctx context.Context, id int64) error {
	return passNotFound(s.attributes.Delete(ctx, id), "delete attribute")
}

// --- Products ---

func (s *CatalogService) CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := prepareProduct(&p); err != nil {
		return nil, err
	}
	p.ID = 0
	p.CreatedAt = s.now().UTC()

	created, err := s.products.Create(ctx, &p)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, passNotFound(err, "get product")
	}
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	out, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	existing, err := s.GetProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if err := prepareProduct(&p); err != nil {
		return nil, err
	}
	p.CreatedAt = existing.CreatedAt

	if err := s.products.Update(ctx, &p); err != nil {
		return nil, passNotFound(err, "update product")
	}
	return &p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	return passNotFound(s.products.Delete(ctx, id), "delete product")
}

// prepareProduct validates p and fills defaults the storefront relies on.
func prepareProduct(p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.ErrMissingFields
	}
	if p.Price < 0 || p.OriginPrice < 0 || p.Quantity < 0 || p.Sold < 0 || p.QuantityPurchase < 0 {
		return fmt.Errorf("%w: numeric fields must not be negative", domain.ErrInvalidInput)
	}
	if p.Rate < 0 || p.Rate > 5 {
		return fmt.Errorf("%w: rate must be between 0 and 5", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(p.Slug) == "" {
		p.Slug = domain.Slugify(p.Name)
	}
	if p.Gallery == nil {
		p.Gallery = domain.StringList{}
	}
	if p.Sizes == nil {
		p.Sizes = domain.StringList{}
	}
	if p.Variations == nil {
		p.Variations = domain.Variations{}
	}
	return nil
}

func passNotFound(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return domain.ErrNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
