package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned by single-product lookups when no product matches.
	ErrNotFound = errors.New("product not found")

	// ErrNameTaken is returned on registration when the name is already in use.
	ErrNameTaken = errors.New("product name already in use")
)

// CatalogProduct is a product as the catalog owns it: a price and the
// currently available stock quantity.
type CatalogProduct struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	Quantity  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuantityUpdate sets a product's stock to an absolute new value.
// The order workflow computes the new value itself (old stock minus the
// requested amount) rather than asking the catalog for a relative decrement.
type QuantityUpdate struct {
	ProductID string
	Quantity  int64
}
