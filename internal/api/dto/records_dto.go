package dto

import "time"

// ContactRequest payload for contact create/update.
type ContactRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
	Kind  string  `json:"kind"`
	Notes *string `json:"notes,omitempty"`
}

// ProductRequest payload for product create/update.
type ProductRequest struct {
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	UnitPrice     float64 `json:"unit_price"`
	StockQuantity float64 `json:"stock_quantity"`
	LowStockLevel float64 `json:"low_stock_level"`
}

// ExpenseRequest payload for expense create/update.
type ExpenseRequest struct {
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Amount      float64    `json:"amount"`
	SpentAt     *time.Time `json:"spent_at,omitempty"`
}

// SaleRequest payload for recording a sale.
type SaleRequest struct {
	ProductID     string     `json:"product_id"`
	ContactID     *string    `json:"contact_id,omitempty"`
	Quantity      float64    `json:"quantity"`
	UnitPrice     *float64   `json:"unit_price,omitempty"`
	PaymentStatus string     `json:"payment_status,omitempty"`
	SoldAt        *time.Time `json:"sold_at,omitempty"`
}
