package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	customersdomain "github.com/ManoelLobo/ecommerce-challenge/internal/customers/domain"
	ordersdomain "github.com/ManoelLobo/ecommerce-challenge/internal/orders/domain"
	productsdomain "github.com/ManoelLobo/ecommerce-challenge/internal/products/domain"
	"github.com/ManoelLobo/ecommerce-challenge/internal/pkg/cache"
)

// orderCacheTTL bounds memory held by cached order responses. Orders are
// immutable, so the TTL exists only to cap the working set, not for
// correctness.
const orderCacheTTL = 15 * time.Minute

// Handler handles the HTTP surface: customers, products, orders.
type Handler struct {
	customers CustomerService
	products  ProductService
	orders    OrderService
	oplog     WorkflowLogReader // nil-safe: endpoint returns 404 if nil
	cache     cache.Cache       // nil-safe: order reads skip the cache if nil
}

// NewHandler wires the handler. oplogReader and orderCache may be nil.
func NewHandler(cs CustomerService, ps ProductService, os OrderService, oplogReader WorkflowLogReader, orderCache cache.Cache) *Handler {
	return &Handler{
		customers: cs,
		products:  ps,
		orders:    os,
		oplog:     oplogReader,
		cache:     orderCache,
	}
}

// CreateCustomer registers a new customer.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), nil)
		return
	}
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name and email are required", nil)
		return
	}

	customer, err := h.customers.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, customersdomain.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email_taken", err.Error(), nil)
			return
		}
		h.internalError(w, r, "customer registration failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, mapCustomerToResponse(customer))
}

// GetCustomer fetches a customer by id.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customers.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, customersdomain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "customer_not_found", err.Error(), nil)
			return
		}
		h.internalError(w, r, "customer lookup failed", err)
		return
	}
	writeJSON(w, http.StatusOK, mapCustomerToResponse(customer))
}

// CreateProduct registers a new catalog product.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), nil)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required", nil)
		return
	}
	if req.Price.IsNegative() || req.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "price and quantity must not be negative", nil)
		return
	}

	product, err := h.products.Register(r.Context(), req.Name, req.Price, req.Quantity)
	if err != nil {
		if errors.Is(err, productsdomain.ErrNameTaken) {
			writeError(w, http.StatusConflict, "name_taken", err.Error(), nil)
			return
		}
		h.internalError(w, r, "product registration failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, mapProductToResponse(product))
}

// GetProduct fetches a product by id.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, productsdomain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product_not_found", err.Error(), nil)
			return
		}
		h.internalError(w, r, "product lookup failed", err)
		return
	}
	writeJSON(w, http.StatusOK, mapProductToResponse(product))
}

// CreateOrder runs the order-creation workflow.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), nil)
		return
	}

	if req.CustomerID == "" || len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "customer_id and items are required", nil)
		return
	}

	lines := make([]ordersdomain.OrderLineRequest, 0, len(req.Items))
	for _, it := range req.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_item", "product_id must be set and quantity must be > 0", nil)
			return
		}
		lines = append(lines, ordersdomain.OrderLineRequest{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	slog.InfoContext(r.Context(), "creating order", "customer_id", req.CustomerID, "items", len(lines))

	order, err := h.orders.CreateOrder(r.Context(), req.CustomerID, lines)
	if err != nil {
		var verr *ordersdomain.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, verr)
			return
		}
		h.internalError(w, r, "order creation failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, mapOrderToResponse(order))
}

// GetOrderByID fetches a persisted order, read-through cached: orders never
// change after creation, so a cache hit is always current.
func (h *Handler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	if h.cache != nil {
		key := h.cache.GenerateKey("order", orderID)
		if cached, err := h.cache.Get(r.Context(), key); err == nil && cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		}
	}

	order, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, ordersdomain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order_not_found", err.Error(), nil)
			return
		}
		h.internalError(w, r, "order lookup failed", err)
		return
	}

	resp := mapOrderToResponse(order)

	if h.cache != nil {
		if body, err := json.Marshal(resp); err == nil {
			key := h.cache.GenerateKey("order", orderID)
			if err := h.cache.Set(r.Context(), key, body, orderCacheTTL); err != nil {
				slog.ErrorContext(r.Context(), "failed to cache order", "order_id", orderID, "error", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetOrderLog returns the workflow audit trail for a persisted order.
func (h *Handler) GetOrderLog(w http.ResponseWriter, r *http.Request) {
	if h.oplog == nil {
		writeError(w, http.StatusNotFound, "log_unavailable", "workflow log is not enabled", nil)
		return
	}

	orderID := chi.URLParam(r, "id")
	entries, err := h.oplog.EntriesByOrder(r.Context(), orderID)
	if err != nil {
		h.internalError(w, r, "workflow log lookup failed", err)
		return
	}
	if len(entries) == 0 {
		writeError(w, http.StatusNotFound, "order_not_found", "no workflow log entries for order", nil)
		return
	}

	out := make([]WorkflowLogEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = WorkflowLogEntryResponse{
			WorkflowID: e.WorkflowID,
			OrderID:    e.OrderID,
			Status:     string(e.Status),
			Detail:     e.Detail,
			TraceID:    e.TraceID,
			SpanID:     e.SpanID,
			CreatedAt:  formatTime(e.CreatedAt),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// Healthz is the liveness probe.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.ErrorContext(r.Context(), msg, "error", err)
	writeError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
}

// writeValidationError maps the workflow's error taxonomy to HTTP statuses:
// unresolvable ids are 404, insufficient stock is a 409 conflict.
func writeValidationError(w http.ResponseWriter, verr *ordersdomain.ValidationError) {
	status := http.StatusBadRequest
	code := "invalid_request"
	switch verr.Kind {
	case ordersdomain.KindInvalidCustomer:
		status, code = http.StatusNotFound, "invalid_customer"
	case ordersdomain.KindProductsNotFound:
		status, code = http.StatusNotFound, "products_not_found"
	case ordersdomain.KindInsufficientStock:
		status, code = http.StatusConflict, "insufficient_stock"
	}
	writeError(w, status, code, verr.Error(), verr.ProductIDs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string, productIDs []string) {
	writeJSON(w, status, ErrorResponse{
		Error:      code,
		Message:    msg,
		ProductIDs: productIDs,
	})
}
