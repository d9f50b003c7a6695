package app

import (
	"context"

	customers "github.com/ManoelLobo/ecommerce-challenge/internal/customers/domain"
	"github.com/ManoelLobo/ecommerce-challenge/internal/orders/domain"
	products "github.com/ManoelLobo/ecommerce-challenge/internal/products/domain"
)

// CustomerLookup resolves customer identities.
type CustomerLookup interface {
	// FindByID returns customers.ErrNotFound when the id does not resolve.
	FindByID(ctx context.Context, id string) (*customers.Customer, error)
}

// ProductCatalog is the workflow's view of the product catalog.
type ProductCatalog interface {
	// FindAllByID fetches all products matching the given ids in one batch.
	// It may return fewer products than ids; partial or empty results are
	// not errors — completeness is the workflow's concern, not the catalog's.
	FindAllByID(ctx context.Context, ids []string) ([]products.CatalogProduct, error)

	// UpdateQuantities sets new absolute stock quantities in one batch.
	UpdateQuantities(ctx context.Context, updates []products.QuantityUpdate) error
}

// OrderStore persists orders.
type OrderStore interface {
	// Create generates the order id, persists the order and all its line
	// items as one atomic unit, and returns the populated order including
	// generated id and timestamps.
	Create(ctx context.Context, customer *customers.Customer, items []domain.OrderLineItem) (*domain.Order, error)

	// FindByID returns the order with its line items in insertion order.
	FindByID(ctx context.Context, id string) (*domain.Order, error)
}
