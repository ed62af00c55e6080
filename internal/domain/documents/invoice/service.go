package invoice

import (
	"context"
	"fmt"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/core/tx"
	"stockd/internal/domain"
	"stockd/pkg/logger"
)

// InvoiceFulfiller deducts stock for an invoice and moves the sales
// order to invoiced. The returned flag reports whether the deduction
// happened in this call; false means the invoice was already
// processed.
type InvoiceFulfiller interface {
	FulfillInvoice(ctx context.Context, invoiceID id.ID) (bool, error)
}

// Service provides business operations for sales invoices.
//
// Persisting the invoice and deducting stock are two separate
// transactions. When fulfillment fails the invoice stays on record,
// unprocessed, and the failure is returned to the caller.
type Service struct {
	repo      Repository
	fulfiller InvoiceFulfiller
	txManager tx.Manager
}

// NewService creates a new invoice service.
func NewService(repo Repository, fulfiller InvoiceFulfiller, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		fulfiller: fulfiller,
		txManager: txManager,
	}
}

// Create persists the invoice, then runs fulfillment. A fulfillment
// failure is reported to the caller; the invoice itself is kept.
func (s *Service) Create(ctx context.Context, inv *SalesInvoice) error {
	if inv.Processed {
		return apperror.NewValidation("a new invoice cannot be processed").
			WithDetail("field", "processed")
	}
	if err := inv.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, inv)
	})
	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}

	applied, err := s.fulfiller.FulfillInvoice(ctx, inv.ID)
	if err != nil {
		logger.Warn(ctx, "invoice fulfillment failed",
			"invoice_id", inv.ID, "error", err)
		return err
	}
	if applied {
		inv.Processed = true
		logger.Info(ctx, "invoice processed",
			"invoice_id", inv.ID, "sales_order_id", inv.SalesOrderID)
	}
	return nil
}

// GetByID retrieves an invoice.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*SalesInvoice, error) {
	return s.repo.GetByID(ctx, invoiceID)
}

// Update modifies an unprocessed invoice. The processed flag is owned
// by the fulfiller and cannot be changed here.
func (s *Service) Update(ctx context.Context, inv *SalesInvoice) error {
	if err := inv.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, inv.ID)
		if err != nil {
			return err
		}
		if current.Processed {
			return apperror.NewBusinessRule("processed invoice cannot be modified").
				WithDetail("invoice_id", inv.ID.String())
		}
		inv.Processed = current.Processed
		return s.repo.Update(ctx, inv)
	})
}

// Delete removes an unprocessed invoice.
func (s *Service) Delete(ctx context.Context, invoiceID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if current.Processed {
			return apperror.NewBusinessRule("processed invoice cannot be deleted").
				WithDetail("invoice_id", invoiceID.String())
		}
		return s.repo.Delete(ctx, invoiceID)
	})
}

// List retrieves invoices with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*SalesInvoice], error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}

// Retry re-runs fulfillment for an invoice that failed earlier, for
// example after stock arrived. Already processed invoices are a no-op.
func (s *Service) Retry(ctx context.Context, invoiceID id.ID) (bool, error) {
	return s.fulfiller.FulfillInvoice(ctx, invoiceID)
}
