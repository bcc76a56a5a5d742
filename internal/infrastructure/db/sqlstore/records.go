package sqlstore

import (
	"time"

	"github.com/shopfront/storefront/internal/core/domain"
)

type userRecord struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

func (r *userRecord) toDomain() *domain.EndUser {
	return &domain.EndUser{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

type adminRecord struct {
	ID           int64 `gorm:"primaryKey"`
	Name         string
	Email        string             `gorm:"uniqueIndex;not null"`
	PasswordHash string             `gorm:"not null"`
	Role         string             `gorm:"not null;default:admin"`
	Permissions  domain.Permissions `gorm:"type:text"`
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (adminRecord) TableName() string { return "admins" }

func newAdminRecord(a *domain.Administrator) *adminRecord {
	return &adminRecord{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		Permissions:  a.Permissions,
		Phone:        a.Phone,
		CreatedAt:    a.CreatedAt,
	}
}

func (r *adminRecord) toDomain() *domain.Administrator {
	perms := r.Permissions
	if perms == nil {
		perms = domain.Permissions{}
	}
	return &domain.Administrator{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		Permissions:  perms,
		Phone:        r.Phone,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

type categoryRecord struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	DataItem  string
	Icon      string
	Sale      int `gorm:"not null;default:0"`
	CreatedAt time.Time
}

func (categoryRecord) TableName() string { return "categories" }

func (r *categoryRecord) toDomain() domain.Category {
	return domain.Category{
		ID:        r.ID,
		Name:      r.Name,
		DataItem:  r.DataItem,
		Icon:      r.Icon,
		Sale:      r.Sale,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type attributeRecord struct {
	ID         int64  `gorm:"primaryKey"`
	CategoryID int64  `gorm:"index;not null"`
	Name       string `gorm:"column:attribute_name;not null"`
	Value      string `gorm:"column:attribute_value;not null"`
	CreatedAt  time.Time
}

func (attributeRecord) TableName() string { return "attributes" }

type productRecord struct {
	ID               int64  `gorm:"primaryKey"`
	Name             string `gorm:"not null"`
	Category         string `gorm:"index"`
	Type             string
	Brand            string
	Price            float64
	OriginPrice      float64
	Description      string
	Quantity         int
	Sold             int
	QuantityPurchase int
	IsNew            bool
	OnSale           bool
	Rate             float64
	Slug             string
	MainImage        string
	Gallery          domain.StringList `gorm:"type:text"`
	Sizes            domain.StringList `gorm:"type:text"`
	Variations       domain.Variations `gorm:"type:text"`
	CreatedAt        time.Time
}

func (productRecord) TableName() string { return "products" }

func newProductRecord(p *domain.Product) *productRecord {
	return &productRecord{
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
		Gallery:          p.Gallery,
		Sizes:            p.Sizes,
		Variations:       p.Variations,
		CreatedAt:        p.CreatedAt,
	}
}

func (r *productRecord) toDomain() domain.Product {
	return domain.Product{
		ID:               r.ID,
		Name:             r.Name,
		Category:         r.Category,
		Type:             r.Type,
		Brand:            r.Brand,
		Price:            r.Price,
		OriginPrice:      r.OriginPrice,
		Description:      r.Description,
		Quantity:         r.Quantity,
		Sold:             r.Sold,
		QuantityPurchase: r.QuantityPurchase,
		IsNew:            r.IsNew,
		OnSale:           r.OnSale,
		Rate:             r.Rate,
		Slug:             r.Slug,
		MainImage:        r.MainImage,
		Gallery:          nonNilStrings(r.Gallery),
		Sizes:            nonNilStrings(r.Sizes),
		Variations:       nonNilVariations(r.Variations),
		CreatedAt:        r.CreatedAt.UTC(),
	}
}

// shippingColumns is embedded into orderRecord with a ship_ prefix.
type shippingColumns struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Region     string
	City       string
	Apartment  string
	Country    string
	PostalCode string
}

type orderRecord struct {
	ID            int64           `gorm:"primaryKey"`
	UserID        int64           `gorm:"index;not null"`
	Reference     string          `gorm:"uniqueIndex;not null"`
	Shipping      shippingColumns `gorm:"embedded;embeddedPrefix:ship_"`
	Note          string
	AmountMinor   int64  `gorm:"not null"`
	Currency      string `gorm:"not null"`
	PaymentMethod string
	PaymentStatus string `gorm:"index;not null"`
	PaymentID     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (orderRecord) TableName() string { return "orders" }

func newOrderRecord(o *domain.Order) *orderRecord {
	return &orderRecord{
		ID:            o.ID,
		UserID:        o.UserID,
		Reference:     o.Reference,
		Shipping:      shippingColumns(o.Address),
		Note:          o.Note,
		AmountMinor:   o.AmountMinor,
		Currency:      o.Currency,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: string(o.PaymentStatus),
		PaymentID:     o.PaymentID,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func (r *orderRecord) toDomain() domain.Order {
	return domain.Order{
		ID:            r.ID,
		UserID:        r.UserID,
		Reference:     r.Reference,
		Address:       domain.ShippingAddress(r.Shipping),
		Note:          r.Note,
		AmountMinor:   r.AmountMinor,
		Currency:      r.Currency,
		PaymentMethod: r.PaymentMethod,
		PaymentStatus: domain.PaymentStatus(r.PaymentStatus),
		PaymentID:     r.PaymentID,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
}

func nonNilStrings(s domain.StringList) domain.StringList {
	if s == nil {
		return domain.StringList{}
	}
	return s
}

func nonNilVariations(v domain.Variations) domain.Variations {
	if v == nil {
		return domain.Variations{}
	}
	return v
}
