package httpx

import (
	"time"

	"github.com/shopspring/decimal"

	customersdomain "github.com/ManoelLobo/ecommerce-challenge/internal/customers/domain"
	ordersdomain "github.com/ManoelLobo/ecommerce-challenge/internal/orders/domain"
	productsdomain "github.com/ManoelLobo/ecommerce-challenge/internal/products/domain"
)

type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CustomerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreateProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

type CreateOrderRequest struct {
	CustomerID string         `json:"customer_id"`
	Items      []OrderLineDTO `json:"items"`
}

type OrderLineDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type OrderResponse struct {
	ID        string              `json:"id"`
	Customer  CustomerResponse    `json:"customer"`
	Items     []OrderItemResponse `json:"items"`
	Total     decimal.Decimal     `json:"total"`
	CreatedAt string              `json:"created_at"`
	UpdatedAt string              `json:"updated_at"`
}

type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type WorkflowLogEntryResponse struct {
	WorkflowID string `json:"workflow_id"`
	OrderID    string `json:"order_id,omitempty"`
	Status     string `json:"status"`
	Detail     string `json:"detail,omitempty"`
	TraceID    string `json:"trace_id,omitempty"`
	SpanID     string `json:"span_id,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type ErrorResponse struct {
	Error      string   `json:"error"`
	Message    string   `json:"message,omitempty"`
	ProductIDs []string `json:"product_ids,omitempty"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func mapCustomerToResponse(c *customersdomain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func mapProductToResponse(p *productsdomain.CatalogProduct) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  p.Quantity,
		CreatedAt: formatTime(p.CreatedAt),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
}

func mapOrderToResponse(o *ordersdomain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.LineItems))
	for i, item := range o.LineItems {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal(),
		}
	}
	return OrderResponse{
		ID:        o.ID,
		Customer:  mapCustomerToResponse(&o.Customer),
		Items:     items,
		Total:     o.Total(),
		CreatedAt: formatTime(o.CreatedAt),
		UpdatedAt: formatTime(o.UpdatedAt),
	}
}
