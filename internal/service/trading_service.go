package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/harborline/fishmarket-service/internal/auth"
	"github.com/harborline/fishmarket-service/internal/domain"
	"github.com/harborline/fishmarket-service/internal/events"
	"github.com/harborline/fishmarket-service/internal/repository"
	apperrors "github.com/harborline/fishmarket-service/pkg/util"
)

// TradingService coordinates the product catalog and sale recording.
type TradingService struct {
	products   repository.ProductRepository
	sales      repository.SaleRepository
	contacts   repository.ContactRepository
	dispatcher events.Dispatcher
}

// TradingDependencies bundles store requirements for the trading service.
type TradingDependencies struct {
	ProductRepo repository.ProductRepository
	SaleRepo    repository.SaleRepository
	ContactRepo repository.ContactRepository
	Dispatcher  events.Dispatcher
}

// ProductInput describes product create/update payload.
type ProductInput struct {
	Name          string
	Unit          string
	UnitPrice     float64
	StockQuantity float64
	LowStockLevel float64
}

// SaleInput describes a sale to record.
type SaleInput struct {
	ProductID     string
	ContactID     *string
	Quantity      float64
	UnitPrice     *float64
	PaymentStatus domain.PaymentStatus
	SoldAt        *time.Time
}

// NewTradingService constructs the service.
func NewTradingService(deps TradingDependencies) *TradingService {
	return &TradingService{
		products:   deps.ProductRepo,
		sales:      deps.SaleRepo,
		contacts:   deps.ContactRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateProduct adds a stock item to the account catalog.
func (s *TradingService) CreateProduct(ctx context.Context, accountID string, input ProductInput) (*domain.Product, error) {
	product := &domain.Product{
		AccountID:     accountID,
		Name:          input.Name,
		Unit:          input.Unit,
		UnitPrice:     input.UnitPrice,
		StockQuantity: input.StockQuantity,
		LowStockLevel: input.LowStockLevel,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct edits catalog fields.
func (s *TradingService) UpdateProduct(ctx context.Context, accountID, productID string, input ProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, accountID, productID)
	if err != nil {
		return nil, err
	}
	product.Name = input.Name
	product.Unit = input.Unit
	product.UnitPrice = input.UnitPrice
	product.StockQuantity = input.StockQuantity
	product.LowStockLevel = input.LowStockLevel
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (s *TradingService) DeleteProduct(ctx context.Context, accountID, productID string) error {
	return s.products.Delete(ctx, accountID, productID)
}

// GetProduct loads one product.
func (s *TradingService) GetProduct(ctx context.Context, accountID, productID string) (*domain.Product, error) {
	return s.products.GetByID(ctx, accountID, productID)
}

// ListProducts lists the account catalog.
func (s *TradingService) ListProducts(ctx context.Context, accountID string, limit, offset int) ([]domain.Product, error) {
	return s.products.List(ctx, accountID, limit, offset)
}

// RecordSale decrements product stock, stores the sale, and emits events.
// The recorded price defaults to the product's current unit price.
func (s *TradingService) RecordSale(ctx context.Context, identity *auth.Identity, input SaleInput) (*domain.Sale, error) {
	if input.Quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive", nil)
	}

	product, err := s.products.GetByID(ctx, identity.AccountID, input.ProductID)
	if err != nil {
		return nil, err
	}

	if input.ContactID != nil {
		if _, err := s.contacts.GetByID(ctx, identity.AccountID, *input.ContactID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("unknown contact", nil)
			}
			return nil, err
		}
	}

	remaining, err := s.products.AdjustStock(ctx, identity.AccountID, product.ID, -input.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("insufficient stock", map[string]any{
				"product_id": product.ID,
				"available":  product.StockQuantity,
			})
		}
		return nil, err
	}

	unitPrice := product.UnitPrice
	if input.UnitPrice != nil {
		unitPrice = *input.UnitPrice
	}
	soldAt := time.Now()
	if input.SoldAt != nil {
		soldAt = *input.SoldAt
	}
	paymentStatus := input.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = domain.PaymentStatusPaid
	}

	sale := &domain.Sale{
		AccountID:     identity.AccountID,
		ProductID:     product.ID,
		ContactID:     input.ContactID,
		RecordedBy:    recordedBy(identity),
		Quantity:      input.Quantity,
		UnitPrice:     unitPrice,
		Total:         unitPrice * input.Quantity,
		PaymentStatus: paymentStatus,
		SoldAt:        soldAt,
	}
	if err := s.sales.Create(ctx, sale); err != nil {
		return nil, err
	}

	s.publishSaleEvents(ctx, identity, product, sale, remaining)
	return sale, nil
}

// GetSale loads one sale.
func (s *TradingService) GetSale(ctx context.Context, accountID, saleID string) (*domain.Sale, error) {
	return s.sales.GetByID(ctx, accountID, saleID)
}

// ListSales lists recorded sales with filters.
func (s *TradingService) ListSales(ctx context.Context, accountID string, filter repository.SaleFilter) ([]domain.Sale, error) {
	return s.sales.List(ctx, accountID, filter)
}

func (s *TradingService) publishSaleEvents(ctx context.Context, identity *auth.Identity, product *domain.Product, sale *domain.Sale, remaining float64) {
	if s.dispatcher == nil {
		return
	}

	actor := events.Actor{Role: identity.Role(), AccountID: identity.AccountID}
	if worker, ok := identity.Worker(); ok {
		workerID := worker.WorkerID
		actor.WorkerID = &workerID
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSaleRecorded,
		AccountID: identity.AccountID,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload: events.SaleRecordedPayload{
			SaleID:      sale.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    sale.Quantity,
			Total:       sale.Total,
		},
	})

	if product.LowStockLevel > 0 && remaining <= product.LowStockLevel {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventStockDepleted,
			AccountID: identity.AccountID,
			Actor:     actor,
			Timestamp: time.Now(),
			Payload: events.StockDepletedPayload{
				ProductID:     product.ID,
				ProductName:   product.Name,
				StockQuantity: remaining,
				LowStockLevel: product.LowStockLevel,
			},
		})
	}
}

func recordedBy(identity *auth.Identity) *string {
	if worker, ok := identity.Worker(); ok {
		id := worker.WorkerID
		return &id
	}
	return nil
}
