package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

type stubCategoryRepo struct {
	items  []domain.Category
	counts map[string]int64
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	clone := *c
	clone.ID = int64(len(r.items) + 1)
	r.items = append(r.items, clone)
	return &clone, nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	return append([]domain.Category(nil), r.items...), nil
}

func (r *stubCategoryRepo) ListWithCounts(_ context.Context) ([]domain.CategorySummary, error) {
	out := make([]domain.CategorySummary, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, domain.CategorySummary{Category: c, ProductCount: r.counts[c.Name]})
	}
	return out, nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id int64) error {
	for i, c := range r.items {
		if c.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type stubAttributeRepo struct {
	items []domain.Attribute

	// known lists category ids that exist.
	known map[int64]bool
}

func (r *stubAttributeRepo) Create(_ context.Context, a *domain.Attribute) (*domain.Attribute, error) {
	if !r.known[a.CategoryID] {
		return nil, domain.ErrNotFound
	}
	clone := *a
	clone.ID = int64(len(r.items) + 1)
	r.items = append(r.items, clone)
	return &clone, nil
}

func (r *stubAttributeRepo) List(_ context.Context) ([]domain.Attribute, error) {
	return append([]domain.Attribute(nil), r.items...), nil
}

func (r *stubAttributeRepo) Delete(_ context.Context, id int64) error {
	for i, a := range r.items {
		if a.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type stubProductRepo struct {
	items map[int64]domain.Product
	next  int64
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{items: make(map[int64]domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.next++
	clone := *p
	clone.ID = r.next
	r.items[clone.ID] = clone
	return &clone, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.items[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[p.ID] = *p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func newTestCatalogService() (*CatalogService, *stubCategoryRepo, *stubAttributeRepo, *stubProductRepo) {
	cats := &stubCategoryRepo{counts: map[string]int64{}}
	attrs := &stubAttributeRepo{known: map[int64]bool{}}
	prods := newStubProductRepo()
	return NewCatalogService(cats, attrs, prods), cats, attrs, prods
}

func TestCatalogService_CreateCategory(t *testing.T) {
	svc, _, _, _ := newTestCatalogService()
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, ports.CreateCategoryInput{Name: "Summer Dresses", Icon: "dress.png", Sale: 20})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if c.DataItem != "summer-dresses" {
		t.Fatalf("expected slug data item, got %q", c.DataItem)
	}
	if c.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}

	if _, err := svc.CreateCategory(ctx, ports.CreateCategoryInput{Name: "No icon"}); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := svc.CreateCategory(ctx, ports.CreateCategoryInput{Name: "X", Icon: "x.png", Sale: 150}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCatalogService_PublicCategoriesCarryCounts(t *testing.T) {
	svc, cats, _, _ := newTestCatalogService()
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, ports.CreateCategoryInput{Name: "Shoes", Icon: "shoes.png"}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	cats.counts["Shoes"] = 3

	out, err := svc.ListPublicCategories(ctx)
	if err != nil {
		t.Fatalf("ListPublicCategories: %v", err)
	}
	if len(out) != 1 || out[0].ProductCount != 3 {
		t.Fatalf("unexpected summaries: %+v", out)
	}
}

func TestCatalogService_DeleteCategoryNotFound(t *testing.T) {
	svc, _, _, _ := newTestCatalogService()

	if err := svc.DeleteCategory(context.Background(), 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogService_CreateAttribute(t *testing.T) {
	svc, _, attrs, _ := newTestCatalogService()
	attrs.known[1] = true
	ctx := context.Background()

	a, err := svc.CreateAttribute(ctx, ports.CreateAttributeInput{CategoryID: 1, Name: " Size ", Value: "XL"})
	if err != nil {
		t.Fatalf("CreateAttribute: %v", err)
	}
	if a.Name != "Size" {
		t.Fatalf("expected trimmed name, got %q", a.Name)
	}

	if _, err := svc.CreateAttribute(ctx, ports.CreateAttributeInput{CategoryID: 1, Name: "Size"}); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := svc.CreateAttribute(ctx, ports.CreateAttributeInput{CategoryID: 9, Name: "Size", Value: "M"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown category, got %v", err)
	}
}

func TestCatalogService_ProductLifecycle(t *testing.T) {
	svc, _, _, prods := newTestCatalogService()
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, domain.Product{Name: "Linen Shirt", Price: 25, Rate: 4})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if created.Slug != "linen-shirt" {
		t.Fatalf("expected slug, got %q", created.Slug)
	}
	if created.Gallery == nil || created.Sizes == nil || created.Variations == nil {
		t.Fatalf("expected non-nil list fields: %+v", created)
	}

	created.Price = 30
	created.Slug = "custom"
	updated, err := svc.UpdateProduct(ctx, *created)
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.Price != 30 || updated.Slug != "custom" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if !prods.items[created.ID].CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at must survive updates")
	}

	if err := svc.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if _, err := svc.GetProduct(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := svc.UpdateProduct(ctx, domain.Product{ID: created.ID, Name: "Gone"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}

func TestCatalogService_ProductValidation(t *testing.T) {
	svc, _, _, _ := newTestCatalogService()
	ctx := context.Background()

	cases := []struct {
		name string
		in   domain.Product
		want error
	}{
		{"missing name", domain.Product{Price: 1}, domain.ErrMissingFields},
		{"negative price", domain.Product{Name: "A", Price: -1}, domain.ErrInvalidInput},
		{"negative quantity", domain.Product{Name: "A", Quantity: -2}, domain.ErrInvalidInput},
		{"rate too high", domain.Product{Name: "A", Rate: 6}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateProduct(ctx, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
