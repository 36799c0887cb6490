package domain

import "time"

// ContactKind separates buyers from suppliers in the address book.
type ContactKind string

const (
	ContactKindCustomer ContactKind = "CUSTOMER"
	ContactKindSupplier ContactKind = "SUPPLIER"
)

// Contact is a customer or supplier belonging to a business.
type Contact struct {
	ID        string
	AccountID string
	Name      string
	Phone     *string
	Email     *string
	Kind      ContactKind
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
