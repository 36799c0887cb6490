package events

import (
	"time"

	"github.com/harborline/fishmarket-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSaleRecorded  EventType = "sale_recorded"
	EventStockDepleted EventType = "stock_depleted"
	EventWorkerCreated EventType = "worker_created"
)

// Actor encapsulates who triggered an event.
type Actor struct {
	Role      domain.Role `json:"role"`
	AccountID string      `json:"account_id"`
	WorkerID  *string     `json:"worker_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AccountID string      `json:"account_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SaleRecordedPayload payload.
type SaleRecordedPayload struct {
	SaleID      string  `json:"sale_id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	Total       float64 `json:"total"`
}

// StockDepletedPayload payload, emitted when a product crosses its reorder
// level after a sale.
type StockDepletedPayload struct {
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	StockQuantity float64 `json:"stock_quantity"`
	LowStockLevel float64 `json:"low_stock_level"`
}

// WorkerCreatedPayload payload.
type WorkerCreatedPayload struct {
	WorkerID string `json:"worker_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}
