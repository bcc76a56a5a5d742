package handler

import (
	"time"

	"github.com/shopfront/storefront/internal/core/domain"
)

// categoryIconPrefix is where uploaded category icons are served from.
const categoryIconPrefix = "/uploads/categories/"

// --- Categories ---

type categoryRequest struct {
	Name     string `json:"name"      validate:"required,max=100"`
	DataItem string `json:"data_item" validate:"max=100"`
	Icon     string `json:"icon"      validate:"required,max=255"`
	Sale     int    `json:"sale"      validate:"gte=0,lte=100"`
}

type categoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	DataItem  string    `json:"data_item"`
	Icon      string    `json:"icon"`
	Sale      int       `json:"sale"`
	CreatedAt time.Time `json:"created_at"`
}

// publicCategoryResponse is the storefront listing shape.
type publicCategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	DataItem  string    `json:"dataItem"`
	Icon      *string   `json:"icon"`
	Sale      int       `json:"sale"`
	Count     int64     `json:"count"`
	CreatedAt time.Time `json:"createdAt"`
	Slug      string    `json:"slug"`
}

// --- Attributes ---

type attributeRequest struct {
	CategoryID int64  `json:"category_id"     validate:"required,gt=0"`
	Name       string `json:"attribute_name"  validate:"required,max=100"`
	Value      string `json:"attribute_value" validate:"required,max=255"`
}

type attributeResponse struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Name         string    `json:"attribute_name"`
	Value        string    `json:"attribute_value"`
	CreatedAt    time.Time `json:"created_at"`
}

// --- Products ---

// productRequest carries image paths already uploaded by the client.
type productRequest struct {
	Name             string             `json:"name"              validate:"required,max=255"`
	Category         string             `json:"category"          validate:"max=100"`
	Type             string             `json:"type"              validate:"max=100"`
	Brand            string             `json:"brand"             validate:"max=100"`
	Price            float64            `json:"price"             validate:"gte=0"`
	OriginPrice      float64            `json:"origin_price"      validate:"gte=0"`
	Description      string             `json:"description"`
	Quantity         int                `json:"quantity"          validate:"gte=0"`
	Sold             int                `json:"sold"              validate:"gte=0"`
	QuantityPurchase int                `json:"quantity_purchase" validate:"gte=0"`
	IsNew            bool               `json:"is_new"`
	OnSale           bool               `json:"on_sale"`
	Rate             float64            `json:"rate"              validate:"gte=0,lte=5"`
	Slug             string             `json:"slug"              validate:"max=255"`
	MainImage        string             `json:"main_image"        validate:"max=255"`
	Gallery          []string           `json:"gallery"`
	Sizes            []string           `json:"sizes"`
	Variations       []domain.Variation `json:"variations"`
}

// storefrontProductResponse is the shape the storefront client renders.
type storefrontProductResponse struct {
	ID               int64              `json:"id"`
	Category         string             `json:"category"`
	Type             string             `json:"type"`
	Name             string             `json:"name"`
	New              bool               `json:"new"`
	Sale             bool               `json:"sale"`
	Rate             float64            `json:"rate"`
	Price            float64            `json:"price"`
	OriginPrice      float64            `json:"originPrice"`
	Brand            string             `json:"brand"`
	Sold             int                `json:"sold"`
	Quantity         int                `json:"quantity"`
	QuantityPurchase int                `json:"quantityPurchase"`
	Sizes            []string           `json:"sizes"`
	Variation        []domain.Variation `json:"variation"`
	ThumbImage       []string           `json:"thumbImage"`
	Images           []string           `json:"images"`
	Description      string             `json:"description"`
	Slug             string             `json:"slug"`
}

// adminProductResponse mirrors the stored columns for the admin panel.
type adminProductResponse struct {
	ID               int64              `json:"id"`
	Name             string             `json:"name"`
	Category         string             `json:"category"`
	Type             string             `json:"type"`
	Brand            string             `json:"brand"`
	Price            float64            `json:"price"`
	OriginPrice      float64            `json:"origin_price"`
	Description      string             `json:"description"`
	Quantity         int                `json:"quantity"`
	Sold             int                `json:"sold"`
	QuantityPurchase int                `json:"quantity_purchase"`
	IsNew            bool               `json:"is_new"`
	OnSale           bool               `json:"on_sale"`
	Rate             float64            `json:"rate"`
	Slug             string             `json:"slug"`
	MainImage        string             `json:"main_image"`
	Gallery          []string           `json:"gallery"`
	Sizes            []string           `json:"sizes"`
	Variations       []domain.Variation `json:"variations"`
	CreatedAt        time.Time          `json:"created_at"`
}
