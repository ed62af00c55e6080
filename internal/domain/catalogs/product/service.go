package product

import (
	"context"
	"fmt"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/core/tx"
	"stockd/internal/domain"
	"stockd/pkg/logger"
)

// Service provides business operations for the Product catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Create creates a new product after checking SKU uniqueness.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsBySKU(ctx, p.SKU)
		if err != nil {
			return fmt.Errorf("check sku: %w", err)
		}
		if exists {
			return apperror.NewDuplicate("product", "sku", p.SKU)
		}

		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create product: %w", err)
		}

		logger.Info(ctx, "product created", "id", p.ID, "sku", p.SKU)
		return nil
	})
}

// GetByID retrieves a product.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// GetBySKU retrieves a product by SKU.
func (s *Service) GetBySKU(ctx context.Context, sku string) (*Product, error) {
	return s.repo.GetBySKU(ctx, sku)
}

// Update modifies a product. Products referenced by any order are
// immutable and the update is rejected.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		referenced, err := s.repo.IsReferenced(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("check references: %w", err)
		}
		if referenced {
			return apperror.NewConflict("product is referenced by orders and cannot be modified").
				WithDetail("product_id", p.ID.String())
		}

		if err := s.repo.Update(ctx, p); err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		return nil
	})
}

// Delete removes an unreferenced product.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		referenced, err := s.repo.IsReferenced(ctx, productID)
		if err != nil {
			return fmt.Errorf("check references: %w", err)
		}
		if referenced {
			return apperror.NewConflict("product is referenced by orders and cannot be deleted").
				WithDetail("product_id", productID.String())
		}

		return s.repo.Delete(ctx, productID)
	})
}

// List retrieves products with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Product], error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}
