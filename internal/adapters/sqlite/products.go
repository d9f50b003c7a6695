package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ManoelLobo/ecommerce-challenge/internal/products/domain"
)

// ProductRepository implements products/app.Repository and the order
// workflow's ProductCatalog port.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(d *DB) *ProductRepository {
	return &ProductRepository{db: d.db}
}

func (r *ProductRepository) Create(ctx context.Context, name string, price decimal.Decimal, quantity int64) (*domain.CatalogProduct, error) {
	const q = `
		INSERT INTO products (id, name, price, quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	product := &domain.CatalogProduct{
		ID:        uuid.NewString(),
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		CreatedAt: time.Now().UTC(),
	}
	product.UpdatedAt = product.CreatedAt

	_, err := r.db.ExecContext(ctx, q,
		product.ID,
		product.Name,
		product.Price.String(),
		product.Quantity,
		formatTime(product.CreatedAt),
		formatTime(product.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: create product %q: %w", name, err)
	}
	return product, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.CatalogProduct, error) {
	const q = `
		SELECT id, name, price, quantity, created_at, updated_at
		FROM   products
		WHERE  id = ?`

	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.CatalogProduct, error) {
	const q = `
		SELECT id, name, price, quantity, created_at, updated_at
		FROM   products
		WHERE  name = ?`

	return r.scanOne(r.db.QueryRowContext(ctx, q, name))
}

// FindAllByID fetches all products matching ids in one query. Ids with no
// matching row are simply absent from the result; that is not an error.
func (r *ProductRepository) FindAllByID(ctx context.Context, ids []string) ([]domain.CatalogProduct, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	q := fmt.Sprintf(`
		SELECT id, name, price, quantity, created_at, updated_at
		FROM   products
		WHERE  id IN (%s)`, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: find products by ids: %w", err)
	}
	defer rows.Close()

	var result []domain.CatalogProduct
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate products: %w", err)
	}
	return result, nil
}

// UpdateQuantities sets new absolute stock quantities in a single
// transaction so a partial batch is never visible.
func (r *ProductRepository) UpdateQuantities(ctx context.Context, updates []domain.QuantityUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin quantity update: %w", err)
	}
	defer tx.Rollback()

	const q = `UPDATE products SET quantity = ?, updated_at = ? WHERE id = ?`
	now := formatTime(time.Now())
	for _, u := range updates {
		if _, err := tx.ExecContext(ctx, q, u.Quantity, now, u.ProductID); err != nil {
			return fmt.Errorf("sqlite: update quantity for %q: %w", u.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit quantity update: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ProductRepository) scanOne(row *sql.Row) (*domain.CatalogProduct, error) {
	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return product, err
}

func scanProduct(row rowScanner) (*domain.CatalogProduct, error) {
	var product domain.CatalogProduct
	var price, createdAt, updatedAt string
	err := row.Scan(&product.ID, &product.Name, &price, &product.Quantity, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: scan product: %w", err)
	}

	if product.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("sqlite: parse price %q: %w", price, err)
	}
	if product.CreatedAt, err = parseRFC3339(createdAt); err != nil {
		return nil, err
	}
	if product.UpdatedAt, err = parseRFC3339(updatedAt); err != nil {
		return nil, err
	}
	return &product, nil
}
