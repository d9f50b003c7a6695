package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManoelLobo/ecommerce-challenge/internal/customers/domain"
)

// mockRepository implements Repository for testing
type mockRepository struct {
	byID    map[string]*domain.Customer
	byEmail map[string]*domain.Customer
	err     error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		byID:    make(map[string]*domain.Customer),
		byEmail: make(map[string]*domain.Customer),
	}
}

func (m *mockRepository) Create(_ context.Context, name, email string) (*domain.Customer, error) {
	if m.err != nil {
		return nil, m.err
	}
	customer := &domain.Customer{ID: "id-" + email, Name: name, Email: email}
	m.byID[customer.ID] = customer
	m.byEmail[email] = customer
	return customer, nil
}

func (m *mockRepository) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	if customer, ok := m.byID[id]; ok {
		return customer, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockRepository) FindByEmail(_ context.Context, email string) (*domain.Customer, error) {
	if customer, ok := m.byEmail[email]; ok {
		return customer, nil
	}
	return nil, domain.ErrNotFound
}

func TestRegister(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	customer, err := svc.Register(context.Background(), "Alice", "alice@example.com")

	require.NoError(t, err)
	assert.Equal(t, "Alice", customer.Name)
	assert.Equal(t, "alice@example.com", customer.Email)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Impostor", "alice@example.com")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegister_MissingFields(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Register(context.Background(), "", "alice@example.com")
	assert.Error(t, err)

	_, err = svc.Register(context.Background(), "Alice", "")
	assert.Error(t, err)
}

func TestRegister_RepositoryErrorPropagates(t *testing.T) {
	repo := newMockRepository()
	repoErr := errors.New("db down")
	repo.err = repoErr
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com")
	assert.ErrorIs(t, err, repoErr)
}

func TestGet(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	created, err := svc.Register(context.Background(), "Alice", "alice@example.com")
	require.NoError(t, err)

	found, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
