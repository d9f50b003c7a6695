package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ManoelLobo/ecommerce-challenge/internal/pkg/metrics"
)

// NewRouter assembles the HTTP routes. m may be nil to disable metrics
// collection (e.g. in handler tests, where the global prometheus registry
// would otherwise complain about double registration).
func NewRouter(handler *Handler, m *metrics.ServerMetrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if m != nil {
		r.Use(m.Middleware)
	}

	r.Post("/customers", handler.CreateCustomer)
	r.Get("/customers/{id}", handler.GetCustomer)

	r.Post("/products", handler.CreateProduct)
	r.Get("/products/{id}", handler.GetProduct)

	r.Post("/orders", handler.CreateOrder)
	r.Get("/orders/{id}", handler.GetOrderByID)
	r.Get("/orders/{id}/log", handler.GetOrderLog)

	r.Get("/healthz", handler.Healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
