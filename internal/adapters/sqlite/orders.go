package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	customersdomain "github.com/ManoelLobo/ecommerce-challenge/internal/customers/domain"
	"github.com/ManoelLobo/ecommerce-challenge/internal/orders/domain"
)

// OrderRepository implements the order workflow's OrderStore port.
type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(d *DB) *OrderRepository {
	return &OrderRepository{db: d.db}
}

// Create persists the order and all its line items in one transaction, so
// no order is ever visible without its lines.
func (r *OrderRepository) Create(ctx context.Context, customer *customersdomain.Customer, items []domain.OrderLineItem) (*domain.Order, error) {
	order := &domain.Order{
		ID:        uuid.NewString(),
		Customer:  *customer,
		LineItems: items,
		CreatedAt: time.Now().UTC(),
	}
	order.UpdatedAt = order.CreatedAt

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: begin order create: %w", err)
	}
	defer tx.Rollback()

	const insertOrder = `
		INSERT INTO orders (id, customer_id, created_at, updated_at)
		VALUES (?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, insertOrder,
		order.ID, customer.ID, formatTime(order.CreatedAt), formatTime(order.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("sqlite: insert order: %w", err)
	}

	const insertItem = `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES (?, ?, ?, ?)`
	for _, item := range items {
		_, err = tx.ExecContext(ctx, insertItem,
			order.ID, item.ProductID, item.Quantity, item.UnitPrice.String())
		if err != nil {
			return nil, fmt.Errorf("sqlite: insert order item %q: %w", item.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: commit order create: %w", err)
	}
	return order, nil
}

// FindByID returns the order with its customer and line items in insertion
// order.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	const orderQuery = `
		SELECT o.id, o.created_at, o.updated_at,
		       c.id, c.name, c.email, c.created_at, c.updated_at
		FROM   orders o
		JOIN   customers c ON c.id = o.customer_id
		WHERE  o.id = ?`

	row := r.db.QueryRowContext(ctx, orderQuery, id)

	var order domain.Order
	var oCreated, oUpdated, cCreated, cUpdated string
	err := row.Scan(
		&order.ID, &oCreated, &oUpdated,
		&order.Customer.ID, &order.Customer.Name, &order.Customer.Email, &cCreated, &cUpdated,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: scan order %q: %w", id, err)
	}

	if order.CreatedAt, err = parseRFC3339(oCreated); err != nil {
		return nil, err
	}
	if order.UpdatedAt, err = parseRFC3339(oUpdated); err != nil {
		return nil, err
	}
	if order.Customer.CreatedAt, err = parseRFC3339(cCreated); err != nil {
		return nil, err
	}
	if order.Customer.UpdatedAt, err = parseRFC3339(cUpdated); err != nil {
		return nil, err
	}

	const itemsQuery = `
		SELECT product_id, quantity, unit_price
		FROM   order_items
		WHERE  order_id = ?
		ORDER  BY id`

	rows, err := r.db.QueryContext(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("sqlite: find order items for %q: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderLineItem
		var price string
		if err := rows.Scan(&item.ProductID, &item.Quantity, &price); err != nil {
			return nil, fmt.Errorf("sqlite: scan order item: %w", err)
		}
		if item.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("sqlite: parse unit price %q: %w", price, err)
		}
		order.LineItems = append(order.LineItems, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate order items: %w", err)
	}

	return &order, nil
}
