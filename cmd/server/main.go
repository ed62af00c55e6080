// Package main is the entry point for the stockd API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockd/internal/config"
	"stockd/internal/domain/auth"
	"stockd/internal/domain/catalogs/product"
	"stockd/internal/domain/documents/grn"
	"stockd/internal/domain/documents/invoice"
	"stockd/internal/domain/forecast"
	"stockd/internal/domain/logistics/dropship"
	"stockd/internal/domain/logistics/transfer"
	"stockd/internal/domain/orders/purchase"
	"stockd/internal/domain/orders/sales"
	"stockd/internal/domain/recon"
	"stockd/internal/domain/registers/stock"
	v1 "stockd/internal/infrastructure/http/v1"
	"stockd/internal/infrastructure/storage/postgres"
	"stockd/internal/infrastructure/storage/postgres/auth_repo"
	"stockd/internal/infrastructure/storage/postgres/catalog_repo"
	"stockd/internal/infrastructure/storage/postgres/document_repo"
	"stockd/internal/infrastructure/storage/postgres/logistics_repo"
	"stockd/internal/infrastructure/storage/postgres/order_repo"
	"stockd/internal/infrastructure/storage/postgres/register_repo"
	"stockd/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	ctx := context.Background()
	log.Info("starting stockd server")

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Repositories ---
	productRepo := catalog_repo.NewProductRepo(txManager)
	stockRepo := register_repo.NewStockRepo(txManager)
	purchaseRepo := order_repo.NewPurchaseRepo(txManager)
	salesRepo := order_repo.NewSalesRepo(txManager)
	grnRepo := document_repo.NewGRNRepo(txManager)
	invoiceRepo := document_repo.NewInvoiceRepo(txManager)
	transferRepo := logistics_repo.NewTransferRepo(txManager)
	dropshipRepo := logistics_repo.NewDropShipmentRepo(txManager)
	forecastRepo := logistics_repo.NewForecastRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)

	// --- Reconciliation engine ---
	engine := recon.NewEngine(
		txManager,
		stockRepo,
		purchaseRepo,
		salesRepo,
		grnRepo,
		invoiceRepo,
		cfg.DefaultLocation,
	).WithAudit(auditService)

	// --- Services ---
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	authService := auth.NewService(userRepo, tokens, txManager)

	services := v1.Services{
		Pool: pool.Pool,
		Log:  log,

		Auth:     authService,
		Products: product.NewService(productRepo, txManager),
		Stocks:   stock.NewService(stockRepo, txManager),

		PurchaseOrders: purchase.NewService(purchaseRepo, txManager),
		SalesOrders:    sales.NewService(salesRepo, txManager),

		Notes:    grn.NewService(grnRepo, engine, txManager),
		Invoices: invoice.NewService(invoiceRepo, engine, txManager),

		Transfers:     transfer.NewService(transferRepo, stockRepo, txManager),
		DropShipments: dropship.NewService(dropshipRepo, txManager),
		Forecasts:     forecast.NewService(forecastRepo, txManager),

		Audit: auditService,
	}

	router := v1.NewRouter(services)

	// --- HTTP server ---
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port,
			"default_location", cfg.DefaultLocation)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	postgres.LogPoolStats(ctx, pool.Pool)
	log.Info("server stopped")
}
