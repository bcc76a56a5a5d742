package handler

import (
	"encoding/json"
	"fmt"

	"github.com/shopfront/storefront/internal/core/domain"
)

// --- Request → Service input ---

func decodeRequestPermissions(raw json.RawMessage) (domain.Permissions, error) {
	perms, err := domain.DecodePermissions(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: permissions must be an object of flags or a list of names", domain.ErrInvalidInput)
	}
	return perms, nil
}

func toProduct(req productRequest) domain.Product {
	return domain.Product{
		Name:             req.Name,
		Category:         req.Category,
		Type:             req.Type,
		Brand:            req.Brand,
		Price:            req.Price,
		OriginPrice:      req.OriginPrice,
		Description:      req.Description,
		Quantity:         req.Quantity,
		Sold:             req.Sold,
		QuantityPurchase: req.QuantityPurchase,
		IsNew:            req.IsNew,
		OnSale:           req.OnSale,
		Rate:             req.Rate,
		Slug:             req.Slug,
		MainImage:        req.MainImage,
		Gallery:          req.Gallery,
		Sizes:            req.Sizes,
		Variations:       req.Variations,
	}
}

func toShippingAddress(req createOrderRequest) domain.ShippingAddress {
	return domain.ShippingAddress{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.PhoneNumber,
		Region:     req.Region,
		City:       req.City,
		Apartment:  req.Apartment,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}
}

// --- Service result → HTTP response ---

func toUserResponse(u *domain.EndUser, withCreatedAt bool) userResponse {
	resp := userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
	if withCreatedAt && !u.CreatedAt.IsZero() {
		created := u.CreatedAt.UTC()
		resp.CreatedAt = &created
	}
	return resp
}

func toAdminResponse(a *domain.Administrator) adminResponse {
	return adminResponse{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Role:        a.Role,
		Permissions: a.Permissions.Granted(),
		Phone:       a.Phone,
		CreatedAt:   a.CreatedAt.UTC(),
	}
}

func toCategoryResponse(c *domain.Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		DataItem:  c.DataItem,
		Icon:      c.Icon,
		Sale:      c.Sale,
		CreatedAt: c.CreatedAt.UTC(),
	}
}

// toPublicCategory shapes a category for the storefront: the icon becomes a
// public upload path and the slug is derived from the name.
func toPublicCategory(s domain.CategorySummary) publicCategoryResponse {
	var icon *string
	if s.Icon != "" {
		path := categoryIconPrefix + s.Icon
		icon = &path
	}
	return publicCategoryResponse{
		ID:        s.ID,
		Name:      s.Name,
		DataItem:  s.DataItem,
		Icon:      icon,
		Sale:      s.Sale,
		Count:     s.ProductCount,
		CreatedAt: s.CreatedAt.UTC(),
		Slug:      domain.Slugify(s.Name),
	}
}

func toAttributeResponse(a *domain.Attribute) attributeResponse {
	return attributeResponse{
		ID:           a.ID,
		CategoryID:   a.CategoryID,
		CategoryName: a.CategoryName,
		Name:         a.Name,
		Value:        a.Value,
		CreatedAt:    a.CreatedAt.UTC(),
	}
}

// toStorefrontProduct renames fields to what the storefront client expects.
func toStorefrontProduct(p *domain.Product) storefrontProductResponse {
	thumb := []string{}
	if p.MainImage != "" {
		thumb = []string{p.MainImage}
	}
	return storefrontProductResponse{
		ID:               p.ID,
		Category:         p.Category,
		Type:             p.Type,
		Name:             p.Name,
		New:              p.IsNew,
		Sale:             p.OnSale,
		Rate:             p.Rate,
		Price:            p.Price,
		OriginPrice:      p.OriginPrice,
		Brand:            p.Brand,
		Sold:             p.Sold,
		Quantity:         p.Quantity,
		QuantityPurchase: p.QuantityPurchase,
		Sizes:            nonNil(p.Sizes),
		Variation:        nonNilVariations(p.Variations),
		ThumbImage:       thumb,
		Images:           nonNil(p.Gallery),
		Description:      p.Description,
		Slug:             p.Slug,
	}
}

func toAdminProduct(p *domain.Product) adminProductResponse {
	return adminProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Category:         p.Category,
		Type:             p.Type,
		Brand:            p.Brand,
		Price:            p.Price,
		OriginPrice:      p.OriginPrice,
		Description:      p.Description,
		Quantity:         p.Quantity,
		Sold:             p.Sold,
		QuantityPurchase: p.QuantityPurchase,
		IsNew:            p.IsNew,
		OnSale:           p.OnSale,
		Rate:             p.Rate,
		Slug:             p.Slug,
		MainImage:        p.MainImage,
		Gallery:          nonNil(p.Gallery),
		Sizes:            nonNil(p.Sizes),
		Variations:       nonNilVariations(p.Variations),
		CreatedAt:        p.CreatedAt.UTC(),
	}
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:            o.ID,
		Reference:     o.Reference,
		UserID:        o.UserID,
		Amount:        float64(o.AmountMinor) / 100,
		AmountMinor:   o.AmountMinor,
		Currency:      o.Currency,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: string(o.PaymentStatus),
		PaymentID:     o.PaymentID,
		Note:          o.Note,
		Address: addressResponse{
			FirstName:   o.Address.FirstName,
			LastName:    o.Address.LastName,
			Email:       o.Address.Email,
			PhoneNumber: o.Address.Phone,
			Region:      o.Address.Region,
			City:        o.Address.City,
			Apartment:   o.Address.Apartment,
			Country:     o.Address.Country,
			PostalCode:  o.Address.PostalCode,
		},
		CreatedAt: o.CreatedAt.UTC(),
		UpdatedAt: o.UpdatedAt.UTC(),
	}
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilVariations(v domain.Variations) []domain.Variation {
	if v == nil {
		return []domain.Variation{}
	}
	return v
}
