package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ManoelLobo/ecommerce-challenge/internal/customers/domain"
)

// Repository is the port for customer persistence.
type Repository interface {
	Create(ctx context.Context, name, email string) (*domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new customer. Emails are unique across customers.
func (s *Service) Register(ctx context.Context, name, email string) (*domain.Customer, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email are required")
	}

	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	customer, err := s.repo.Create(ctx, name, email)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "customer registered", "customer_id", customer.ID)
	return customer, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}
