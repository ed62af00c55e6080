package sales

import (
	"context"
	"fmt"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/core/tx"
	"stockd/internal/domain"
	"stockd/pkg/logger"
)

// Service provides business operations for sales orders.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new sales order service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Create creates a pending sales order.
func (s *Service) Create(ctx context.Context, so *SalesOrder) error {
	if so.Status == "" {
		so.Status = StatusPending
	}
	if err := so.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, so); err != nil {
			return fmt.Errorf("create sales order: %w", err)
		}
		logger.Info(ctx, "sales order created",
			"id", so.ID, "product_id", so.ProductID, "quantity", so.Quantity)
		return nil
	})
}

// GetByID retrieves a sales order.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*SalesOrder, error) {
	return s.repo.GetByID(ctx, orderID)
}

// Update modifies a sales order. Invoiced orders are frozen.
func (s *Service) Update(ctx context.Context, so *SalesOrder) error {
	if err := so.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, so.ID)
		if err != nil {
			return err
		}
		if current.IsInvoiced() {
			return apperror.NewBusinessRule("invoiced sales order cannot be modified").
				WithDetail("order_id", so.ID.String())
		}
		return s.repo.Update(ctx, so)
	})
}

// Delete removes a sales order that has not been invoiced.
func (s *Service) Delete(ctx context.Context, orderID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if current.IsInvoiced() {
			return apperror.NewBusinessRule("invoiced sales order cannot be deleted").
				WithDetail("order_id", orderID.String())
		}
		return s.repo.Delete(ctx, orderID)
	})
}

// List retrieves sales orders with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*SalesOrder], error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}
