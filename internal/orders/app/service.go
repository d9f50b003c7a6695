package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	customers "github.com/ManoelLobo/ecommerce-challenge/internal/customers/domain"
	"github.com/ManoelLobo/ecommerce-challenge/internal/orders/domain"
	"github.com/ManoelLobo/ecommerce-challenge/internal/orders/oplog"
	products "github.com/ManoelLobo/ecommerce-challenge/internal/products/domain"
)

// Service runs the order-creation workflow: validate the customer, validate
// and price the products, check stock, persist the order, decrement stock.
type Service struct {
	customers CustomerLookup
	catalog   ProductCatalog
	orders    OrderStore
	log       oplog.Recorder // nil-safe: audit trail skipped if nil
}

// NewService wires the workflow with its collaborators. recorder may be
// nil — the workflow then runs without an audit trail.
func NewService(customers CustomerLookup, catalog ProductCatalog, orders OrderStore, recorder oplog.Recorder) *Service {
	return &Service{
		customers: customers,
		catalog:   catalog,
		orders:    orders,
		log:       recorder,
	}
}

// CreateOrder validates the request and, if everything checks out, persists
// an order with price-snapshotted line items and decrements stock.
//
// The steps run in strict sequence and short-circuit on the first failure.
// Nothing is written before the order itself is persisted; the stock
// decrement happens strictly after, with no shared transaction — if it
// fails the order stays persisted and the collaborator error is returned
// unchanged. Two concurrent orders for the same product can both pass the
// stock check against a stale read; no cross-request isolation is provided.
func (s *Service) CreateOrder(ctx context.Context, customerID string, lines []domain.OrderLineRequest) (*domain.Order, error) {
	workflowID := uuid.NewString()
	s.record(ctx, workflowID, "", customerID, oplog.StatusStarted, "")

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customers.ErrNotFound) {
			return nil, s.reject(ctx, workflowID, customerID, domain.NewInvalidCustomer(customerID))
		}
		return nil, err
	}

	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}

	resolved, err := s.catalog.FindAllByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(resolved) == 0 {
		return nil, s.reject(ctx, workflowID, customerID, domain.NewProductsNotFound(ids))
	}

	byID := make(map[string]products.CatalogProduct, len(resolved))
	for _, p := range resolved {
		byID[p.ID] = p
	}

	var missing []string
	for _, line := range lines {
		if _, ok := byID[line.ProductID]; !ok {
			missing = append(missing, line.ProductID)
		}
	}
	if len(missing) > 0 {
		return nil, s.reject(ctx, workflowID, customerID, domain.NewProductsNotFound(missing))
	}

	// Scan every line, not just until the first violation: the error must
	// enumerate all products with insufficient stock.
	var insufficient []string
	for _, line := range lines {
		if byID[line.ProductID].Quantity < line.Quantity {
			insufficient = append(insufficient, line.ProductID)
		}
	}
	if len(insufficient) > 0 {
		return nil, s.reject(ctx, workflowID, customerID, domain.NewInsufficientStock(insufficient))
	}

	items := make([]domain.OrderLineItem, len(lines))
	for i, line := range lines {
		items[i] = domain.OrderLineItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: byID[line.ProductID].Price,
		}
	}

	order, err := s.orders.Create(ctx, customer, items)
	if err != nil {
		s.record(ctx, workflowID, "", customerID, oplog.StatusFailed, err.Error())
		return nil, err
	}
	s.record(ctx, workflowID, order.ID, customerID, oplog.StatusOrderCreated, "")

	updates := make([]products.QuantityUpdate, len(lines))
	for i, line := range lines {
		updates[i] = products.QuantityUpdate{
			ProductID: line.ProductID,
			Quantity:  byID[line.ProductID].Quantity - line.Quantity,
		}
	}
	if err := s.catalog.UpdateQuantities(ctx, updates); err != nil {
		// The order is already persisted; there is no compensating action.
		slog.ErrorContext(ctx, "stock decrement failed after order was persisted",
			"order_id", order.ID, "error", err)
		s.record(ctx, workflowID, order.ID, customerID, oplog.StatusFailed, err.Error())
		return nil, err
	}
	s.record(ctx, workflowID, order.ID, customerID, oplog.StatusStockUpdated, "")

	slog.InfoContext(ctx, "order created",
		"order_id", order.ID, "customer_id", customerID, "items", len(order.LineItems))
	return order, nil
}

// GetOrder returns a previously created order with its line items.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *Service) reject(ctx context.Context, workflowID, customerID string, verr *domain.ValidationError) error {
	s.record(ctx, workflowID, "", customerID, oplog.StatusRejected, verr.Error())
	return verr
}

func (s *Service) record(ctx context.Context, workflowID, orderID, customerID string, status oplog.Status, detail string) {
	if s.log == nil {
		return
	}
	entry := oplog.NewEntry(ctx, workflowID, orderID, customerID, status, detail)
	if err := s.log.Record(ctx, entry); err != nil {
		// The audit trail never gates the business flow.
		slog.ErrorContext(ctx, "failed to record workflow log entry",
			"workflow_id", workflowID, "status", string(status), "error", err)
	}
}
