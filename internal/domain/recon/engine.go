// Package recon implements the stock reconciliation engine.
//
// The engine owns the only two code paths that change stock levels as
// a business effect: applying a matched goods received note and
// fulfilling a sales invoice. Each transition runs in a single
// transaction, re-reads every precondition under row locks, adjusts
// the stock register, moves the order status, and flags the document
// processed as the last write. The processed flag is what makes the
// transitions idempotent: a replay finds it set and does nothing.
package recon

import (
	"context"
	"fmt"

	"stockd/internal/core/id"
	"stockd/internal/core/tx"
	"stockd/internal/domain/documents/grn"
	"stockd/internal/domain/documents/invoice"
	"stockd/internal/domain/orders/purchase"
	"stockd/internal/domain/orders/sales"
	"stockd/internal/domain/registers/stock"
	"stockd/pkg/logger"
)

// AuditRecorder records applied transitions so a stock movement can be
// traced back to the document that caused it. Recording happens inside
// the transition's transaction.
type AuditRecorder interface {
	ReceiptMatched(ctx context.Context, noteID, orderID, productID id.ID, quantity int64, location string) error
	InvoiceFulfilled(ctx context.Context, invoiceID, orderID, productID id.ID, quantity int64, location string) error
}

// Engine applies receipt-matching and invoice-fulfillment transitions.
type Engine struct {
	txManager tx.Manager
	stocks    stock.Repository
	purchases purchase.Repository
	sales     sales.Repository
	notes     grn.Repository
	invoices  invoice.Repository
	audit     AuditRecorder

	// defaultLocation is where received goods land and orders ship from
	defaultLocation string
}

// NewEngine creates a reconciliation engine.
func NewEngine(
	txManager tx.Manager,
	stocks stock.Repository,
	purchases purchase.Repository,
	salesOrders sales.Repository,
	notes grn.Repository,
	invoices invoice.Repository,
	defaultLocation string,
) *Engine {
	return &Engine{
		txManager:       txManager,
		stocks:          stocks,
		purchases:       purchases,
		sales:           salesOrders,
		notes:           notes,
		invoices:        invoices,
		defaultLocation: defaultLocation,
	}
}

// WithAudit attaches an audit recorder. Without one, transitions are
// logged but leave no audit trail.
func (e *Engine) WithAudit(audit AuditRecorder) *Engine {
	e.audit = audit
	return e
}

// MatchReceipt applies a matched note to the stock register: the
// received quantity is added at the default location, the purchase
// order becomes RECEIVED, and the note is flagged processed. The
// received quantity is not checked against the ordered one; what
// arrived is what counts.
//
// The call is a no-op returning false when the note is not matched,
// already processed, or its order already received. All checks are
// performed on freshly locked rows inside the transaction, so a stale
// caller snapshot cannot cause a double application.
func (e *Engine) MatchReceipt(ctx context.Context, noteID id.ID) (bool, error) {
	var applied bool

	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		note, err := e.notes.GetForUpdate(ctx, noteID)
		if err != nil {
			return fmt.Errorf("lock note: %w", err)
		}
		if !note.Matched || note.Processed {
			return nil
		}

		po, err := e.purchases.GetForUpdate(ctx, note.PurchaseOrderID)
		if err != nil {
			return fmt.Errorf("lock purchase order: %w", err)
		}
		if po.IsReceived() {
			logger.Warn(ctx, "note skipped, order already received",
				"note_id", noteID, "purchase_order_id", po.ID)
			return nil
		}

		st, err := e.stocks.GetOrCreateForUpdate(ctx, po.ProductID, e.defaultLocation)
		if err != nil {
			return fmt.Errorf("lock stock row: %w", err)
		}
		if err := e.stocks.AdjustQuantity(ctx, st.ID, note.ReceivedQuantity); err != nil {
			return fmt.Errorf("adjust stock: %w", err)
		}

		if err := e.purchases.SetStatus(ctx, po.ID, purchase.StatusReceived); err != nil {
			return fmt.Errorf("set order status: %w", err)
		}

		// The processed flag goes last: if anything above fails the
		// note stays unprocessed and a replay applies cleanly.
		if err := e.notes.MarkProcessed(ctx, noteID); err != nil {
			return fmt.Errorf("mark note processed: %w", err)
		}

		if e.audit != nil {
			err := e.audit.ReceiptMatched(ctx, noteID, po.ID, po.ProductID,
				note.ReceivedQuantity, e.defaultLocation)
			if err != nil {
				return fmt.Errorf("record audit: %w", err)
			}
		}

		applied = true
		logger.Info(ctx, "receipt matched",
			"note_id", noteID,
			"purchase_order_id", po.ID,
			"product_id", po.ProductID,
			"quantity", note.ReceivedQuantity,
			"location", e.defaultLocation)
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

// FulfillInvoice deducts the ordered quantity from stock at the
// default location, moves the sales order to INVOICED, and flags the
// invoice processed.
//
// The call is a no-op returning false when the invoice is already
// processed. A missing stock row is NotFound; a short stock position
// is InsufficientStock. Either way the transaction rolls back, the
// order stays PENDING and the invoice stays unprocessed; retrying
// after stock arrives succeeds.
func (e *Engine) FulfillInvoice(ctx context.Context, invoiceID id.ID) (bool, error) {
	var applied bool

	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		inv, err := e.invoices.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return fmt.Errorf("lock invoice: %w", err)
		}
		if inv.Processed {
			return nil
		}

		so, err := e.sales.GetForUpdate(ctx, inv.SalesOrderID)
		if err != nil {
			return fmt.Errorf("lock sales order: %w", err)
		}
		if so.IsInvoiced() {
			logger.Warn(ctx, "invoice skipped, order already invoiced",
				"invoice_id", invoiceID, "sales_order_id", so.ID)
			return nil
		}

		st, err := e.stocks.GetForUpdate(ctx, so.ProductID, e.defaultLocation)
		if err != nil {
			return fmt.Errorf("lock stock row: %w", err)
		}
		if st.Quantity < so.Quantity {
			return stock.InsufficientStock(so.ProductID, e.defaultLocation,
				so.Quantity, st.Quantity)
		}

		if err := e.stocks.AdjustQuantity(ctx, st.ID, -so.Quantity); err != nil {
			return fmt.Errorf("adjust stock: %w", err)
		}

		if err := e.sales.SetStatus(ctx, so.ID, sales.StatusInvoiced); err != nil {
			return fmt.Errorf("set order status: %w", err)
		}

		if err := e.invoices.MarkProcessed(ctx, invoiceID); err != nil {
			return fmt.Errorf("mark invoice processed: %w", err)
		}

		if e.audit != nil {
			err := e.audit.InvoiceFulfilled(ctx, invoiceID, so.ID, so.ProductID,
				so.Quantity, e.defaultLocation)
			if err != nil {
				return fmt.Errorf("record audit: %w", err)
			}
		}

		applied = true
		logger.Info(ctx, "invoice fulfilled",
			"invoice_id", invoiceID,
			"sales_order_id", so.ID,
			"product_id", so.ProductID,
			"quantity", so.Quantity,
			"location", e.defaultLocation)
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}
