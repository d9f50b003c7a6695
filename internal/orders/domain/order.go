package domain

import (
	"time"

	"github.com/shopspring/decimal"

	customers "github.com/ManoelLobo/ecommerce-challenge/internal/customers/domain"
)

// OrderLineRequest is a single (product, quantity) pair of an incoming
// order request, before any validation against the catalog.
type OrderLineRequest struct {
	ProductID string
	Quantity  int64
}

// OrderLineItem is a persisted line of an order. UnitPrice is the catalog
// price captured at order time; later catalog price changes do not affect it.
type OrderLineItem struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

func (i OrderLineItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Order is the aggregate root. Its line items are created atomically with it
// and the aggregate is never mutated after creation.
type Order struct {
	ID        string
	Customer  customers.Customer
	LineItems []OrderLineItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Total is derived from the line items, never stored.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.LineItems {
		total = total.Add(item.Subtotal())
	}
	return total
}
