package handler

import "time"

type createOrderRequest struct {
	FirstName   string  `json:"first_name"   validate:"required,max=100"`
	LastName    string  `json:"last_name"    validate:"max=100"`
	Email       string  `json:"email"        validate:"required,email,max=254"`
	PhoneNumber string  `json:"phone_number" validate:"max=32"`
	Region      string  `json:"region"       validate:"max=100"`
	City        string  `json:"city"         validate:"required,max=100"`
	Apartment   string  `json:"apartment"    validate:"max=255"`
	Country     string  `json:"country"      validate:"required,max=100"`
	PostalCode  string  `json:"postal_code"  validate:"max=20"`
	Note        string  `json:"note"         validate:"max=1000"`
	Amount      float64 `json:"amount"       validate:"required,gt=0"`
}

type captureOrderRequest struct {
	Reference     string `json:"order_reference" validate:"required"`
	PaymentID     string `json:"payment_id"      validate:"required"`
	PaymentStatus string `json:"payment_status"  validate:"required,oneof=paid failed"`
}

type addressResponse struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Region      string `json:"region"`
	City        string `json:"city"`
	Apartment   string `json:"apartment"`
	Country     string `json:"country"`
	PostalCode  string `json:"postal_code"`
}

type orderResponse struct {
	ID            int64           `json:"id"`
	Reference     string          `json:"reference"`
	UserID        int64           `json:"user_id"`
	Amount        float64         `json:"amount"`
	AmountMinor   int64           `json:"amount_minor"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	PaymentID     string          `json:"payment_id,omitempty"`
	Note          string          `json:"note,omitempty"`
	Address       addressResponse `json:"address"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
