package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/harborline/fishmarket-service/internal/auth"
	"github.com/harborline/fishmarket-service/internal/domain"
	"github.com/harborline/fishmarket-service/internal/events"
	"github.com/harborline/fishmarket-service/internal/repository"
	apperrors "github.com/harborline/fishmarket-service/pkg/util"
)

type memProductRepo struct {
	products map[string]*domain.Product
}

func (r *memProductRepo) Create(_ context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = "prd-1"
	}
	r.products[product.ID] = product
	return nil
}

func (r *memProductRepo) Update(_ context.Context, product *domain.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, _, id string) error {
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, accountID, id string) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok || product.AccountID != accountID {
		return nil, pgx.ErrNoRows
	}
	copied := *product
	return &copied, nil
}

func (r *memProductRepo) List(_ context.Context, accountID string, _, _ int) ([]domain.Product, error) {
	var out []domain.Product
	for _, product := range r.products {
		if product.AccountID == accountID {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (r *memProductRepo) AdjustStock(_ context.Context, accountID, id string, delta float64) (float64, error) {
	product, ok := r.products[id]
	if !ok || product.AccountID != accountID {
		return 0, pgx.ErrNoRows
	}
	if product.StockQuantity+delta < 0 {
		return 0, pgx.ErrNoRows
	}
	product.StockQuantity += delta
	return product.StockQuantity, nil
}

type memSaleRepo struct {
	sales []*domain.Sale
}

func (r *memSaleRepo) Create(_ context.Context, sale *domain.Sale) error {
	if sale.ID == "" {
		sale.ID = "sal-1"
	}
	r.sales = append(r.sales, sale)
	return nil
}

func (r *memSaleRepo) GetByID(_ context.Context, accountID, id string) (*domain.Sale, error) {
	for _, sale := range r.sales {
		if sale.ID == id && sale.AccountID == accountID {
			return sale, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memSaleRepo) List(_ context.Context, accountID string, _ repository.SaleFilter) ([]domain.Sale, error) {
	var out []domain.Sale
	for _, sale := range r.sales {
		if sale.AccountID == accountID {
			out = append(out, *sale)
		}
	}
	return out, nil
}

type memContactRepo struct {
	contacts map[string]*domain.Contact
}

func (r *memContactRepo) Create(_ context.Context, contact *domain.Contact) error {
	r.contacts[contact.ID] = contact
	return nil
}

func (r *memContactRepo) Update(_ context.Context, contact *domain.Contact) error {
	r.contacts[contact.ID] = contact
	return nil
}

func (r *memContactRepo) Delete(_ context.Context, _, id string) error {
	delete(r.contacts, id)
	return nil
}

func (r *memContactRepo) GetByID(_ context.Context, accountID, id string) (*domain.Contact, error) {
	contact, ok := r.contacts[id]
	if !ok || contact.AccountID != accountID {
		return nil, pgx.ErrNoRows
	}
	return contact, nil
}

func (r *memContactRepo) List(_ context.Context, accountID string, _ repository.ContactFilter) ([]domain.Contact, error) {
	var out []domain.Contact
	for _, contact := range r.contacts {
		if contact.AccountID == accountID {
			out = append(out, *contact)
		}
	}
	return out, nil
}

type captureDispatcher struct {
	published []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *captureDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func (d *captureDispatcher) ofType(eventType events.EventType) []events.Event {
	var out []events.Event
	for _, event := range d.published {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

type tradingFixture struct {
	svc        *TradingService
	products   *memProductRepo
	sales      *memSaleRepo
	contacts   *memContactRepo
	dispatcher *captureDispatcher
}

func newTradingFixture() *tradingFixture {
	f := &tradingFixture{
		products:   &memProductRepo{products: map[string]*domain.Product{}},
		sales:      &memSaleRepo{},
		contacts:   &memContactRepo{contacts: map[string]*domain.Contact{}},
		dispatcher: &captureDispatcher{},
	}
	f.svc = NewTradingService(TradingDependencies{
		ProductRepo: f.products,
		SaleRepo:    f.sales,
		ContactRepo: f.contacts,
		Dispatcher:  f.dispatcher,
	})
	f.products.products["prd-1"] = &domain.Product{
		ID:            "prd-1",
		AccountID:     "acc-1",
		Name:          "Tilapia",
		Unit:          "kg",
		UnitPrice:     12.5,
		StockQuantity: 100,
		LowStockLevel: 10,
	}
	return f
}

func adminIdentity() *auth.Identity {
	return auth.NewAdminIdentity(&domain.Account{
		ID:           "acc-1",
		Email:        "owner@fishmarket.test",
		BusinessName: "Blue Harbor Fish",
		OwnerName:    "Ama Mensah",
	})
}

func workerIdentity(granted []string) *auth.Identity {
	return auth.NewWorkerIdentity(
		&domain.Account{ID: "acc-1", BusinessName: "Blue Harbor Fish"},
		&domain.Worker{ID: "wrk-1", AccountID: "acc-1", Name: "Kofi", Email: "kofi@fishmarket.test", Active: true},
		granted,
	)
}

func TestRecordSaleDecrementsStock(t *testing.T) {
	f := newTradingFixture()

	sale, err := f.svc.RecordSale(context.Background(), adminIdentity(), SaleInput{
		ProductID: "prd-1",
		Quantity:  4,
	})
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}

	if sale.UnitPrice != 12.5 {
		t.Errorf("UnitPrice = %v, want product price 12.5", sale.UnitPrice)
	}
	if sale.Total != 50 {
		t.Errorf("Total = %v, want 50", sale.Total)
	}
	if sale.RecordedBy != nil {
		t.Errorf("RecordedBy = %v, want nil for owner", *sale.RecordedBy)
	}
	if got := f.products.products["prd-1"].StockQuantity; got != 96 {
		t.Errorf("stock = %v, want 96", got)
	}
	if recorded := f.dispatcher.ofType(events.EventSaleRecorded); len(recorded) != 1 {
		t.Errorf("sale_recorded events = %d, want 1", len(recorded))
	}
	if depleted := f.dispatcher.ofType(events.EventStockDepleted); len(depleted) != 0 {
		t.Errorf("stock_depleted events = %d, want 0", len(depleted))
	}
}

func TestRecordSaleAttributesWorker(t *testing.T) {
	f := newTradingFixture()

	sale, err := f.svc.RecordSale(context.Background(), workerIdentity([]string{domain.CapManageSales}), SaleInput{
		ProductID: "prd-1",
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}
	if sale.RecordedBy == nil || *sale.RecordedBy != "wrk-1" {
		t.Errorf("RecordedBy = %v, want wrk-1", sale.RecordedBy)
	}

	recorded := f.dispatcher.ofType(events.EventSaleRecorded)
	if len(recorded) != 1 {
		t.Fatalf("sale_recorded events = %d, want 1", len(recorded))
	}
	if recorded[0].Actor.WorkerID == nil || *recorded[0].Actor.WorkerID != "wrk-1" {
		t.Errorf("event actor worker = %v, want wrk-1", recorded[0].Actor.WorkerID)
	}
}

func TestRecordSaleRejectsInsufficientStock(t *testing.T) {
	f := newTradingFixture()

	_, err := f.svc.RecordSale(context.Background(), adminIdentity(), SaleInput{
		ProductID: "prd-1",
		Quantity:  500,
	})
	if !apperrors.HasCode(err, "CONFLICT") {
		t.Fatalf("err = %v, want CONFLICT", err)
	}
	if got := f.products.products["prd-1"].StockQuantity; got != 100 {
		t.Errorf("stock = %v, want untouched 100", got)
	}
	if len(f.sales.sales) != 0 {
		t.Errorf("sales stored = %d, want 0", len(f.sales.sales))
	}
}

func TestRecordSaleRejectsNonPositiveQuantity(t *testing.T) {
	f := newTradingFixture()

	for _, quantity := range []float64{0, -3} {
		_, err := f.svc.RecordSale(context.Background(), adminIdentity(), SaleInput{
			ProductID: "prd-1",
			Quantity:  quantity,
		})
		if !apperrors.HasCode(err, "VALIDATION_FAILED") {
			t.Errorf("quantity %v: err = %v, want VALIDATION_FAILED", quantity, err)
		}
	}
}

func TestRecordSaleRejectsUnknownContact(t *testing.T) {
	f := newTradingFixture()
	contactID := "cnt-missing"

	_, err := f.svc.RecordSale(context.Background(), adminIdentity(), SaleInput{
		ProductID: "prd-1",
		ContactID: &contactID,
		Quantity:  1,
	})
	if !apperrors.HasCode(err, "VALIDATION_FAILED") {
		t.Fatalf("err = %v, want VALIDATION_FAILED", err)
	}
}

func TestRecordSaleEmitsStockDepleted(t *testing.T) {
	f := newTradingFixture()

	if _, err := f.svc.RecordSale(context.Background(), adminIdentity(), SaleInput{
		ProductID: "prd-1",
		Quantity:  95,
	}); err != nil {
		t.Fatalf("RecordSale: %v", err)
	}

	depleted := f.dispatcher.ofType(events.EventStockDepleted)
	if len(depleted) != 1 {
		t.Fatalf("stock_depleted events = %d, want 1", len(depleted))
	}
	payload, ok := depleted[0].Payload.(events.StockDepletedPayload)
	if !ok {
		t.Fatalf("payload type %T", depleted[0].Payload)
	}
	if payload.StockQuantity != 5 {
		t.Errorf("StockQuantity = %v, want 5", payload.StockQuantity)
	}
}

func TestRecordSaleOverridesPrice(t *testing.T) {
	f := newTradingFixture()
	price := 9.0

	sale, err := f.svc.RecordSale(context.Background(), adminIdentity(), SaleInput{
		ProductID: "prd-1",
		Quantity:  2,
		UnitPrice: &price,
	})
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}
	if sale.UnitPrice != 9 || sale.Total != 18 {
		t.Errorf("UnitPrice = %v Total = %v, want 9 and 18", sale.UnitPrice, sale.Total)
	}
}
