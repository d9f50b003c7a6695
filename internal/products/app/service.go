package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/ManoelLobo/ecommerce-challenge/internal/products/domain"
)

// Repository is the port for catalog persistence.
type Repository interface {
	Create(ctx context.Context, name string, price decimal.Decimal, quantity int64) (*domain.CatalogProduct, error)
	FindByID(ctx context.Context, id string) (*domain.CatalogProduct, error)
	FindByName(ctx context.Context, name string) (*domain.CatalogProduct, error)
	FindAllByID(ctx context.Context, ids []string) ([]domain.CatalogProduct, error)
	UpdateQuantities(ctx context.Context, updates []domain.QuantityUpdate) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a catalog product with an initial price and stock level.
func (s *Service) Register(ctx context.Context, name string, price decimal.Decimal, quantity int64) (*domain.CatalogProduct, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}

	_, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return nil, domain.ErrNameTaken
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	product, err := s.repo.Create(ctx, name, price, quantity)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "product registered",
		"product_id", product.ID, "price", product.Price.String(), "quantity", product.Quantity)
	return product, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.CatalogProduct, error) {
	return s.repo.FindByID(ctx, id)
}
