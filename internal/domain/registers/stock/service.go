package stock

import (
	"context"
	"fmt"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/core/tx"
	"stockd/internal/domain"
)

// Service provides business operations for the stock register.
// Quantity mutations tied to receipt-matching and invoice-fulfillment
// belong to the reconciliation engine; this service covers the plain
// CRUD surface and balance queries.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new stock service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Create inserts a stock row, enforcing one row per (product, location).
func (s *Service) Create(ctx context.Context, st *Stock) error {
	if err := st.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByProductLocation(ctx, st.ProductID, st.Location)
		if err != nil && !apperror.IsNotFound(err) {
			return fmt.Errorf("check stock row: %w", err)
		}
		if existing != nil {
			return apperror.NewDuplicate("stock", "product+location",
				fmt.Sprintf("%s@%s", st.ProductID, st.Location))
		}

		return s.repo.Create(ctx, st)
	})
}

// GetByID retrieves a stock row.
func (s *Service) GetByID(ctx context.Context, stockID id.ID) (*Stock, error) {
	return s.repo.GetByID(ctx, stockID)
}

// Update modifies a stock row (reorder level, manual corrections).
func (s *Service) Update(ctx context.Context, st *Stock) error {
	if err := st.Validate(ctx); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, st)
	})
}

// Delete removes a stock row.
func (s *Service) Delete(ctx context.Context, stockID id.ID) error {
	return s.repo.Delete(ctx, stockID)
}

// List retrieves stock rows with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Stock], error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}

// GetAvailability returns the quantity on hand for a product at a
// location, zero when no row exists.
func (s *Service) GetAvailability(ctx context.Context, productID id.ID, location string) (int64, error) {
	st, err := s.repo.GetByProductLocation(ctx, productID, location)
	if err != nil {
		if apperror.IsNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("get stock row: %w", err)
	}
	return st.Quantity, nil
}
