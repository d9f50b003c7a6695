package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	customersapp "github.com/ManoelLobo/ecommerce-challenge/internal/customers/app"
	ordersapp "github.com/ManoelLobo/ecommerce-challenge/internal/orders/app"
	productsapp "github.com/ManoelLobo/ecommerce-challenge/internal/products/app"

	"github.com/ManoelLobo/ecommerce-challenge/internal/adapters/sqlite"
	"github.com/ManoelLobo/ecommerce-challenge/internal/httpx"
	"github.com/ManoelLobo/ecommerce-challenge/internal/pkg/cache"
	"github.com/ManoelLobo/ecommerce-challenge/internal/pkg/metrics"
	"github.com/ManoelLobo/ecommerce-challenge/internal/pkg/telemetry"
)

func main() {
	telemetry.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, getEnv("OTEL_SERVICE_NAME", "order-service"))
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	db, err := sqlite.Open(getEnv("SQLITE_PATH", "./data/orders.db"))
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	customerRepo := sqlite.NewCustomerRepository(db)
	productRepo := sqlite.NewProductRepository(db)
	orderRepo := sqlite.NewOrderRepository(db)
	logRepo := sqlite.NewWorkflowLogRepository(db)

	customerService := customersapp.NewService(customerRepo)
	productService := productsapp.NewService(productRepo)
	orderService := ordersapp.NewService(customerRepo, productRepo, orderRepo, logRepo)

	// The cache is optional: an empty REDIS_ADDR runs the service without it.
	var orderCache cache.Cache
	if redisAddr := getEnv("REDIS_ADDR", ""); redisAddr != "" {
		orderCache = cache.NewRedisCache(redisAddr, "order")
		slog.Info("order cache enabled", "addr", redisAddr)
	}

	serverMetrics := metrics.NewServerMetrics("order_service")
	handler := httpx.NewHandler(customerService, productService, orderService, logRepo, orderCache)
	router := httpx.NewRouter(handler, serverMetrics)

	addr := ":" + getEnv("PORT", "8080")
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("order service running", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down order service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
