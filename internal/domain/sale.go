package domain

import "time"

// PaymentStatus tracks whether a sale has been settled.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusPending PaymentStatus = "PENDING"
)

// Sale records a quantity of product sold, optionally tied to a contact.
type Sale struct {
	ID            string
	AccountID     string
	ProductID     string
	ContactID     *string
	RecordedBy    *string
	Quantity      float64
	UnitPrice     float64
	Total         float64
	PaymentStatus PaymentStatus
	SoldAt        time.Time
	CreatedAt     time.Time
}
