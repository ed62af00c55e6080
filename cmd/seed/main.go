// Package main provides a CLI tool for seeding the database with an
// admin account and optional demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"stockd/internal/domain/auth"
	"stockd/internal/domain/catalogs/product"
	"stockd/internal/domain/registers/stock"
	"stockd/internal/infrastructure/storage/postgres"
	"stockd/internal/infrastructure/storage/postgres/auth_repo"
	"stockd/internal/infrastructure/storage/postgres/catalog_repo"
	"stockd/internal/infrastructure/storage/postgres/register_repo"
	"stockd/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)

	if err := seedAdminUser(ctx, txManager, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, txManager, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@stockd.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	users := auth_repo.NewUserRepo(txManager)

	exists, err := users.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("check admin exists: %w", err)
	}
	if exists {
		log.Infow("admin user already exists", "username", username)
		return nil
	}

	u, err := auth.NewUser(username, email, password, auth.RoleAdmin)
	if err != nil {
		return err
	}
	if err := users.Create(ctx, u); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	log.Infow("admin user created", "username", username, "user_id", u.ID)
	return nil
}

func seedDemoData(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	products := catalog_repo.NewProductRepo(txManager)
	stocks := register_repo.NewStockRepo(txManager)

	location := os.Getenv("DEFAULT_LOCATION")
	if location == "" {
		location = "Main Warehouse"
	}

	demo := []struct {
		sku      string
		name     string
		price    string
		quantity int64
	}{
		{"WID-001", "Widget, standard", "4.95", 120},
		{"WID-002", "Widget, heavy duty", "9.50", 40},
		{"GAD-010", "Gadget assembly kit", "24.00", 15},
		{"SPR-100", "Spare part set", "12.30", 0},
	}

	for _, d := range demo {
		exists, err := products.ExistsBySKU(ctx, d.sku)
		if err != nil {
			return fmt.Errorf("check sku %s: %w", d.sku, err)
		}
		if exists {
			log.Infow("product already exists, skipping", "sku", d.sku)
			continue
		}

		p := product.New(d.sku, d.name, decimal.RequireFromString(d.price))
		if err := products.Create(ctx, p); err != nil {
			return fmt.Errorf("create product %s: %w", d.sku, err)
		}

		s := stock.New(p.ID, location)
		s.Quantity = d.quantity
		if err := stocks.Create(ctx, s); err != nil {
			return fmt.Errorf("create stock for %s: %w", d.sku, err)
		}

		log.Infow("demo product seeded",
			"sku", d.sku, "quantity", d.quantity, "location", location)
	}

	return nil
}
