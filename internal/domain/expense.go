package domain

import "time"

// Expense records money spent by the business (fuel, ice, transport, stock).
type Expense struct {
	ID          string
	AccountID   string
	Description string
	Category    string
	Amount      float64
	SpentAt     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
