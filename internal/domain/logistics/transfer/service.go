package transfer

import (
	"context"
	"fmt"

	"stockd/internal/core/id"
	"stockd/internal/core/tx"
	"stockd/internal/domain"
	"stockd/internal/domain/registers/stock"
	"stockd/pkg/logger"
)

// Service records transfers and moves the quantities in the stock
// register. Recording and moving happen in one transaction: a
// transfer row never exists without its stock effect.
type Service struct {
	repo      Repository
	stocks    stock.Repository
	txManager tx.Manager
}

// NewService creates a new transfer service.
func NewService(repo Repository, stocks stock.Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		stocks:    stocks,
		txManager: txManager,
	}
}

// Create validates the transfer, deducts from the source location and
// adds to the destination, creating the destination row when missing.
// A short source position fails the whole transaction.
func (s *Service) Create(ctx context.Context, t *StockTransfer) error {
	if err := t.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		src, err := s.stocks.GetForUpdate(ctx, t.ProductID, t.FromLocation)
		if err != nil {
			return fmt.Errorf("lock source stock: %w", err)
		}
		if src.Quantity < t.Quantity {
			return stock.InsufficientStock(t.ProductID, t.FromLocation,
				t.Quantity, src.Quantity)
		}

		dst, err := s.stocks.GetOrCreateForUpdate(ctx, t.ProductID, t.ToLocation)
		if err != nil {
			return fmt.Errorf("lock destination stock: %w", err)
		}

		if err := s.stocks.AdjustQuantity(ctx, src.ID, -t.Quantity); err != nil {
			return fmt.Errorf("deduct source: %w", err)
		}
		if err := s.stocks.AdjustQuantity(ctx, dst.ID, t.Quantity); err != nil {
			return fmt.Errorf("add destination: %w", err)
		}

		if err := s.repo.Create(ctx, t); err != nil {
			return fmt.Errorf("create transfer: %w", err)
		}

		logger.Info(ctx, "stock transferred",
			"transfer_id", t.ID,
			"product_id", t.ProductID,
			"from", t.FromLocation,
			"to", t.ToLocation,
			"quantity", t.Quantity)
		return nil
	})
}

// GetByID retrieves a transfer.
func (s *Service) GetByID(ctx context.Context, transferID id.ID) (*StockTransfer, error) {
	return s.repo.GetByID(ctx, transferID)
}

// Delete removes a transfer and reverses its stock effect, moving the
// quantity back from the destination to the source. Fails when the
// destination no longer holds enough.
func (s *Service) Delete(ctx context.Context, transferID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err := s.repo.GetByID(ctx, transferID)
		if err != nil {
			return err
		}

		dst, err := s.stocks.GetForUpdate(ctx, t.ProductID, t.ToLocation)
		if err != nil {
			return fmt.Errorf("lock destination stock: %w", err)
		}
		if dst.Quantity < t.Quantity {
			return stock.InsufficientStock(t.ProductID, t.ToLocation,
				t.Quantity, dst.Quantity)
		}

		src, err := s.stocks.GetOrCreateForUpdate(ctx, t.ProductID, t.FromLocation)
		if err != nil {
			return fmt.Errorf("lock source stock: %w", err)
		}

		if err := s.stocks.AdjustQuantity(ctx, dst.ID, -t.Quantity); err != nil {
			return fmt.Errorf("deduct destination: %w", err)
		}
		if err := s.stocks.AdjustQuantity(ctx, src.ID, t.Quantity); err != nil {
			return fmt.Errorf("restore source: %w", err)
		}

		if err := s.repo.Delete(ctx, transferID); err != nil {
			return fmt.Errorf("delete transfer: %w", err)
		}

		logger.Info(ctx, "stock transfer reversed",
			"transfer_id", transferID,
			"product_id", t.ProductID,
			"from", t.FromLocation,
			"to", t.ToLocation,
			"quantity", t.Quantity)
		return nil
	})
}

// List retrieves transfers with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*StockTransfer], error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}
