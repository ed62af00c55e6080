package purchase

import (
	"context"
	"fmt"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/core/tx"
	"stockd/internal/domain"
	"stockd/pkg/logger"
)

// Service provides business operations for purchase orders.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new purchase order service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Create creates a pending purchase order.
func (s *Service) Create(ctx context.Context, po *PurchaseOrder) error {
	if po.Status == "" {
		po.Status = StatusPending
	}
	if err := po.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, po); err != nil {
			return fmt.Errorf("create purchase order: %w", err)
		}
		logger.Info(ctx, "purchase order created",
			"id", po.ID, "product_id", po.ProductID, "quantity", po.Quantity)
		return nil
	})
}

// GetByID retrieves a purchase order.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*PurchaseOrder, error) {
	return s.repo.GetByID(ctx, orderID)
}

// Update modifies a purchase order. Received orders are frozen; their
// quantity already landed in the stock register.
func (s *Service) Update(ctx context.Context, po *PurchaseOrder) error {
	if err := po.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, po.ID)
		if err != nil {
			return err
		}
		if current.IsReceived() {
			return apperror.NewBusinessRule("received purchase order cannot be modified").
				WithDetail("order_id", po.ID.String())
		}
		return s.repo.Update(ctx, po)
	})
}

// Delete removes a purchase order that has not been received.
func (s *Service) Delete(ctx context.Context, orderID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if current.IsReceived() {
			return apperror.NewBusinessRule("received purchase order cannot be deleted").
				WithDetail("order_id", orderID.String())
		}
		return s.repo.Delete(ctx, orderID)
	})
}

// List retrieves purchase orders with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseOrder], error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}
