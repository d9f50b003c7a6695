package httpx

import (
	"context"

	"github.com/shopspring/decimal"

	customersdomain "github.com/ManoelLobo/ecommerce-challenge/internal/customers/domain"
	ordersdomain "github.com/ManoelLobo/ecommerce-challenge/internal/orders/domain"
	"github.com/ManoelLobo/ecommerce-challenge/internal/orders/oplog"
	productsdomain "github.com/ManoelLobo/ecommerce-challenge/internal/products/domain"
)

// The handler depends on these interfaces, not the concrete app services,
// so tests can stand in lightweight stubs.

type CustomerService interface {
	Register(ctx context.Context, name, email string) (*customersdomain.Customer, error)
	Get(ctx context.Context, id string) (*customersdomain.Customer, error)
}

type ProductService interface {
	Register(ctx context.Context, name string, price decimal.Decimal, quantity int64) (*productsdomain.CatalogProduct, error)
	Get(ctx context.Context, id string) (*productsdomain.CatalogProduct, error)
}

type OrderService interface {
	CreateOrder(ctx context.Context, customerID string, lines []ordersdomain.OrderLineRequest) (*ordersdomain.Order, error)
	GetOrder(ctx context.Context, id string) (*ordersdomain.Order, error)
}

// WorkflowLogReader backs the order audit-trail endpoint.
type WorkflowLogReader interface {
	EntriesByOrder(ctx context.Context, orderID string) ([]oplog.Entry, error)
}
