package domain

import "time"

// PaymentStatus represents the settlement state of an order.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

const (
	DefaultCurrency      = "INR"
	DefaultPaymentMethod = "Razorpay"
)

// CanSettleTo reports whether an order in status s may move to next.
// Only pending orders settle, and only to a terminal status.
func (s PaymentStatus) CanSettleTo(next PaymentStatus) bool {
	return s == PaymentPending && (next == PaymentPaid || next == PaymentFailed)
}

// ShippingAddress is the delivery information captured at checkout.
type ShippingAddress struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone_number"`
	Region     string `json:"region"`
	City       string `json:"city"`
	Apartment  string `json:"apartment"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// Order is a checkout record. AmountMinor is in the currency's minor unit.
type Order struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Reference     string          `json:"reference"`
	Address       ShippingAddress `json:"address"`
	Note          string          `json:"note,omitempty"`
	AmountMinor   int64           `json:"amount_minor"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	PaymentID     string          `json:"payment_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
