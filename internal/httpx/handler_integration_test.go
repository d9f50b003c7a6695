package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customersapp "github.com/ManoelLobo/ecommerce-challenge/internal/customers/app"
	ordersapp "github.com/ManoelLobo/ecommerce-challenge/internal/orders/app"
	productsapp "github.com/ManoelLobo/ecommerce-challenge/internal/products/app"

	"github.com/ManoelLobo/ecommerce-challenge/internal/adapters/sqlite"
	"github.com/ManoelLobo/ecommerce-challenge/internal/pkg/cache"
)

// newIntegrationRouter wires the full stack: real services, a real SQLite
// database in a temp dir, and a miniredis-backed order cache.
func newIntegrationRouter(t *testing.T) (http.Handler, *miniredis.Miniredis) {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	customerRepo := sqlite.NewCustomerRepository(db)
	productRepo := sqlite.NewProductRepository(db)
	orderRepo := sqlite.NewOrderRepository(db)
	logRepo := sqlite.NewWorkflowLogRepository(db)

	mr := miniredis.RunT(t)
	orderCache := cache.NewRedisCache(mr.Addr(), "order")

	handler := NewHandler(
		customersapp.NewService(customerRepo),
		productsapp.NewService(productRepo),
		ordersapp.NewService(customerRepo, productRepo, orderRepo, logRepo),
		logRepo,
		orderCache,
	)
	return NewRouter(handler, nil), mr
}

func getJSON(t *testing.T, router http.Handler, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestOrderFlow_EndToEnd(t *testing.T) {
	router, mr := newIntegrationRouter(t)

	var customer CustomerResponse
	rec := postJSON(t, router, "/customers", CreateCustomerRequest{Name: "Alice", Email: "alice@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customer))

	var product ProductResponse
	rec = postJSON(t, router, "/products", CreateProductRequest{
		Name: "Widget", Price: decimal.RequireFromString("10.00"), Quantity: 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))

	var order OrderResponse
	rec = postJSON(t, router, "/orders", CreateOrderRequest{
		CustomerID: customer.ID,
		Items:      []OrderLineDTO{{ProductID: product.ID, Quantity: 3}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("30.00")))

	// Stock dropped from 5 to 2.
	var updated ProductResponse
	rec = getJSON(t, router, "/products/"+product.ID, &updated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, updated.Quantity)

	// First read populates the cache; second is served from it.
	var fetched OrderResponse
	rec = getJSON(t, router, "/orders/"+order.ID, &fetched)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, order.ID, fetched.ID)
	assert.True(t, mr.Exists("order:order:"+order.ID))

	var cached OrderResponse
	rec = getJSON(t, router, "/orders/"+order.ID, &cached)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, order.ID, cached.ID)
	require.Len(t, cached.Items, 1)
	assert.EqualValues(t, 3, cached.Items[0].Quantity)

	// The audit trail recorded the full happy path.
	var logEntries []WorkflowLogEntryResponse
	rec = getJSON(t, router, "/orders/"+order.ID+"/log", &logEntries)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, logEntries, 2)
	assert.Equal(t, "ORDER_CREATED", logEntries[0].Status)
	assert.Equal(t, "STOCK_UPDATED", logEntries[1].Status)
}

func TestOrderFlow_InsufficientStock(t *testing.T) {
	router, _ := newIntegrationRouter(t)

	var customer CustomerResponse
	rec := postJSON(t, router, "/customers", CreateCustomerRequest{Name: "Alice", Email: "alice@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customer))

	var product ProductResponse
	rec = postJSON(t, router, "/products", CreateProductRequest{
		Name: "Widget", Price: decimal.RequireFromString("10.00"), Quantity: 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))

	rec = postJSON(t, router, "/orders", CreateOrderRequest{
		CustomerID: customer.ID,
		Items:      []OrderLineDTO{{ProductID: product.ID, Quantity: 7}},
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "insufficient_stock", errResp.Error)
	assert.Equal(t, []string{product.ID}, errResp.ProductIDs)

	// Stock untouched.
	var unchanged ProductResponse
	rec = getJSON(t, router, "/products/"+product.ID, &unchanged)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 5, unchanged.Quantity)
}

func TestOrderFlow_UnknownProduct(t *testing.T) {
	router, _ := newIntegrationRouter(t)

	var customer CustomerResponse
	rec := postJSON(t, router, "/customers", CreateCustomerRequest{Name: "Alice", Email: "alice@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customer))

	rec = postJSON(t, router, "/orders", CreateOrderRequest{
		CustomerID: customer.ID,
		Items:      []OrderLineDTO{{ProductID: "ghost", Quantity: 1}},
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "products_not_found", errResp.Error)
	assert.Equal(t, []string{"ghost"}, errResp.ProductIDs)
}
