package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"
)

// Category groups products on the storefront.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	DataItem  string    `json:"data_item"`
	Icon      string    `json:"icon"`
	Sale      int       `json:"sale"`
	CreatedAt time.Time `json:"created_at"`
}

// CategorySummary is a category with the number of products referencing it.
type CategorySummary struct {
	Category
	ProductCount int64
}

// Attribute is a name/value pair attached to a category (e.g. "Size": "XL").
type Attribute struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Name         string    `json:"attribute_name"`
	Value        string    `json:"attribute_value"`
	CreatedAt    time.Time `json:"created_at"`
}

// Product is a sellable catalog item. Image fields hold public paths.
type Product struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Category         string     `json:"category"`
	Type             string     `json:"type"`
	Brand            string     `json:"brand"`
	Price            float64    `json:"price"`
	OriginPrice      float64    `json:"origin_price"`
	Description      string     `json:"description"`
	Quantity         int        `json:"quantity"`
	Sold             int        `json:"sold"`
	QuantityPurchase int        `json:"quantity_purchase"`
	IsNew            bool       `json:"is_new"`
	OnSale           bool       `json:"on_sale"`
	Rate             float64    `json:"rate"`
	Slug             string     `json:"slug"`
	MainImage        string     `json:"main_image"`
	Gallery          StringList `json:"gallery"`
	Sizes            StringList `json:"sizes"`
	Variations       Variations `json:"variations"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Variation is a colour/image variant of a product.
type Variation struct {
	Color      string `json:"color"`
	ColorCode  string `json:"colorCode,omitempty"`
	ColorImage string `json:"colorImage,omitempty"`
	Image      string `json:"image,omitempty"`
}

// StringList is stored as a JSON array column.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *StringList) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// Variations is stored as a JSON array column.
type Variations []Variation

func (v Variations) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	return string(b), err
}

func (v *Variations) Scan(value interface{}) error {
	return scanJSON(value, v)
}

func scanJSON(value interface{}, dst interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

var nonSlug = regexp.MustCompile(`\s+`)

// Slugify lower-cases name and replaces whitespace runs with dashes.
func Slugify(name string) string {
	return nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
