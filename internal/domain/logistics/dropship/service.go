package dropship

import (
	"context"
	"fmt"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/core/tx"
	"stockd/internal/domain"
	"stockd/pkg/logger"
)

// Service provides business operations for drop shipments.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new drop shipment service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Create records a drop shipment.
func (s *Service) Create(ctx context.Context, d *DropShipment) error {
	if err := d.Validate(ctx); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, d)
	})
}

// GetByID retrieves a drop shipment.
func (s *Service) GetByID(ctx context.Context, shipmentID id.ID) (*DropShipment, error) {
	return s.repo.GetByID(ctx, shipmentID)
}

// Update modifies a drop shipment that has not been shipped.
func (s *Service) Update(ctx context.Context, d *DropShipment) error {
	if err := d.Validate(ctx); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, d.ID)
		if err != nil {
			return err
		}
		if current.Shipped {
			return apperror.NewBusinessRule("shipped drop shipment cannot be modified").
				WithDetail("shipment_id", d.ID.String())
		}
		return s.repo.Update(ctx, d)
	})
}

// MarkShipped flags the shipment dispatched. Already shipped is a
// no-op.
func (s *Service) MarkShipped(ctx context.Context, shipmentID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		d, err := s.repo.GetByID(ctx, shipmentID)
		if err != nil {
			return err
		}
		if d.Shipped {
			return nil
		}
		d.Shipped = true
		if err := s.repo.Update(ctx, d); err != nil {
			return fmt.Errorf("mark shipped: %w", err)
		}
		logger.Info(ctx, "drop shipment dispatched",
			"shipment_id", shipmentID, "product_id", d.ProductID)
		return nil
	})
}

// Delete removes an unshipped drop shipment.
func (s *Service) Delete(ctx context.Context, shipmentID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, shipmentID)
		if err != nil {
			return err
		}
		if current.Shipped {
			return apperror.NewBusinessRule("shipped drop shipment cannot be deleted").
				WithDetail("shipment_id", shipmentID.String())
		}
		return s.repo.Delete(ctx, shipmentID)
	})
}

// List retrieves drop shipments with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*DropShipment], error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}
