package domain

import "time"

// Product is a stock item (a fish variety or prepared good) offered for sale.
type Product struct {
	ID            string
	AccountID     string
	Name          string
	Unit          string
	UnitPrice     float64
	StockQuantity float64
	LowStockLevel float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LowOnStock reports whether the product has fallen to or below its
// configured reorder level.
func (p *Product) LowOnStock() bool {
	return p.LowStockLevel > 0 && p.StockQuantity <= p.LowStockLevel
}
