package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ManoelLobo/ecommerce-challenge/internal/customers/domain"
)

// CustomerRepository implements customers/app.Repository and the order
// workflow's CustomerLookup port.
type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(d *DB) *CustomerRepository {
	return &CustomerRepository{db: d.db}
}

func (r *CustomerRepository) Create(ctx context.Context, name, email string) (*domain.Customer, error) {
	const q = `
		INSERT INTO customers (id, name, email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`

	customer := &domain.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	customer.UpdatedAt = customer.CreatedAt

	_, err := r.db.ExecContext(ctx, q,
		customer.ID,
		customer.Name,
		customer.Email,
		formatTime(customer.CreatedAt),
		formatTime(customer.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: create customer %q: %w", email, err)
	}
	return customer, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `
		SELECT id, name, email, created_at, updated_at
		FROM   customers
		WHERE  id = ?`

	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const q = `
		SELECT id, name, email, created_at, updated_at
		FROM   customers
		WHERE  email = ?`

	return r.scanOne(r.db.QueryRowContext(ctx, q, email))
}

func (r *CustomerRepository) scanOne(row *sql.Row) (*domain.Customer, error) {
	var customer domain.Customer
	var createdAt, updatedAt string
	err := row.Scan(&customer.ID, &customer.Name, &customer.Email, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: scan customer: %w", err)
	}

	if customer.CreatedAt, err = parseRFC3339(createdAt); err != nil {
		return nil, err
	}
	if customer.UpdatedAt, err = parseRFC3339(updatedAt); err != nil {
		return nil, err
	}
	return &customer, nil
}
