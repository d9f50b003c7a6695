package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customersdomain "github.com/ManoelLobo/ecommerce-challenge/internal/customers/domain"
	ordersdomain "github.com/ManoelLobo/ecommerce-challenge/internal/orders/domain"
	"github.com/ManoelLobo/ecommerce-challenge/internal/orders/oplog"
	productsdomain "github.com/ManoelLobo/ecommerce-challenge/internal/products/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCustomerRepository_CreateAndFind(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)
	assert.Equal(t, "Alice", byID.Name)

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestCustomerRepository_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomerRepository(db)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, customersdomain.ErrNotFound)

	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, customersdomain.ErrNotFound)
}

func TestCustomerRepository_DuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "Impostor", "alice@example.com")
	assert.Error(t, err, "unique email constraint should reject the duplicate")
}

func TestProductRepository_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Widget", decimal.RequireFromString("10.00"), 5)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, found.Price.Equal(decimal.RequireFromString("10.00")),
		"decimal price survives the TEXT round trip")
	assert.EqualValues(t, 5, found.Quantity)

	byName, err := repo.FindByName(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
}

func TestProductRepository_FindAllByID_Partial(t *testing.T) {
	db := openTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	p1, err := repo.Create(ctx, "Widget", decimal.RequireFromString("10.00"), 5)
	require.NoError(t, err)
	p2, err := repo.Create(ctx, "Gadget", decimal.RequireFromString("3.50"), 8)
	require.NoError(t, err)

	// Unknown ids are silently absent, never an error.
	result, err := repo.FindAllByID(ctx, []string{p1.ID, "ghost", p2.ID})
	require.NoError(t, err)
	assert.Len(t, result, 2)

	none, err := repo.FindAllByID(ctx, []string{"ghost"})
	require.NoError(t, err)
	assert.Empty(t, none)

	empty, err := repo.FindAllByID(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProductRepository_UpdateQuantities(t *testing.T) {
	db := openTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	p1, err := repo.Create(ctx, "Widget", decimal.RequireFromString("10.00"), 5)
	require.NoError(t, err)
	p2, err := repo.Create(ctx, "Gadget", decimal.RequireFromString("3.50"), 8)
	require.NoError(t, err)

	err = repo.UpdateQuantities(ctx, []productsdomain.QuantityUpdate{
		{ProductID: p1.ID, Quantity: 2},
		{ProductID: p2.ID, Quantity: 0},
	})
	require.NoError(t, err)

	found1, err := repo.FindByID(ctx, p1.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, found1.Quantity)

	found2, err := repo.FindByID(ctx, p2.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, found2.Quantity)
}

func TestOrderRepository_CreateAndFind(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	customer, err := NewCustomerRepository(db).Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)

	productRepo := NewProductRepository(db)
	p1, err := productRepo.Create(ctx, "Widget", decimal.RequireFromString("10.00"), 5)
	require.NoError(t, err)
	p2, err := productRepo.Create(ctx, "Gadget", decimal.RequireFromString("3.50"), 8)
	require.NoError(t, err)

	repo := NewOrderRepository(db)
	items := []ordersdomain.OrderLineItem{
		{ProductID: p1.ID, Quantity: 3, UnitPrice: p1.Price},
		{ProductID: p2.ID, Quantity: 1, UnitPrice: p2.Price},
	}

	created, err := repo.Create(ctx, customer, items)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, found.Customer.ID)
	assert.Equal(t, "Alice", found.Customer.Name)

	require.Len(t, found.LineItems, 2, "line items persist atomically with the order")
	assert.Equal(t, p1.ID, found.LineItems[0].ProductID, "line order preserved")
	assert.Equal(t, p2.ID, found.LineItems[1].ProductID)
	assert.True(t, found.LineItems[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, found.Total().Equal(decimal.RequireFromString("33.50")))
}

func TestOrderRepository_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ordersdomain.ErrNotFound)
}

func TestWorkflowLogRepository_RecordAndQuery(t *testing.T) {
	db := openTestDB(t)
	repo := NewWorkflowLogRepository(db)
	ctx := context.Background()

	entries := []*oplog.Entry{
		oplog.NewEntry(ctx, "wf-1", "", "c1", oplog.StatusStarted, ""),
		oplog.NewEntry(ctx, "wf-1", "order-1", "c1", oplog.StatusOrderCreated, ""),
		oplog.NewEntry(ctx, "wf-1", "order-1", "c1", oplog.StatusStockUpdated, ""),
		oplog.NewEntry(ctx, "wf-2", "", "c2", oplog.StatusRejected, "customer id \"c2\" is not valid"),
	}
	for _, e := range entries {
		require.NoError(t, repo.Record(ctx, e))
	}

	byWorkflow, err := repo.Entries(ctx, "wf-1")
	require.NoError(t, err)
	require.Len(t, byWorkflow, 3)
	assert.Equal(t, oplog.StatusStarted, byWorkflow[0].Status)
	assert.Equal(t, oplog.StatusStockUpdated, byWorkflow[2].Status)

	byOrder, err := repo.EntriesByOrder(ctx, "order-1")
	require.NoError(t, err)
	require.Len(t, byOrder, 2)
	assert.Equal(t, "wf-1", byOrder[0].WorkflowID)

	rejected, err := repo.Entries(ctx, "wf-2")
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Contains(t, rejected[0].Detail, "not valid")
}
