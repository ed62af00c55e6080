package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/domain"
	"stockd/internal/domain/documents/invoice"
	"stockd/internal/infrastructure/storage/postgres"
)

const invoiceTable = "doc_sales_invoices"

var invoiceColumns = []string{
	"id", "version", "created_at", "updated_at",
	"sales_order_id", "quantity", "invoice_date", "processed",
}

// Compile-time check.
var _ invoice.Repository = (*InvoiceRepo)(nil)

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	txm *postgres.TxManager
}

// NewInvoiceRepo creates a new sales invoice repository.
func NewInvoiceRepo(txm *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{txm: txm}
}

func (r *InvoiceRepo) Create(ctx context.Context, inv *invoice.SalesInvoice) error {
	q := postgres.Builder().
		Insert(invoiceTable).
		SetMap(map[string]any{
			"id":             inv.ID,
			"version":        inv.Version,
			"created_at":     inv.CreatedAt,
			"updated_at":     inv.UpdatedAt,
			"sales_order_id": inv.SalesOrderID,
			"quantity":       inv.Quantity,
			"invoice_date":   inv.InvoiceDate,
			"processed":      inv.Processed,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	return postgres.TranslateError(err, "sales_invoice", inv.ID.String())
}

func (r *InvoiceRepo) GetByID(ctx context.Context, invoiceID id.ID) (*invoice.SalesInvoice, error) {
	return r.getOne(ctx, invoiceID, false)
}

// GetForUpdate locks the invoice row for the rest of the transaction.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, invoiceID id.ID) (*invoice.SalesInvoice, error) {
	return r.getOne(ctx, invoiceID, true)
}

func (r *InvoiceRepo) getOne(ctx context.Context, invoiceID id.ID, forUpdate bool) (*invoice.SalesInvoice, error) {
	q := postgres.Builder().
		Select(invoiceColumns...).
		From(invoiceTable).
		Where(squirrel.Eq{"id": invoiceID})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var inv invoice.SalesInvoice
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &inv, sql, args...); err != nil {
		return nil, postgres.TranslateError(err, "sales_invoice", invoiceID.String())
	}
	return &inv, nil
}

// Update writes the mutable columns. The processed flag is not among
// them; only MarkProcessed can set it.
func (r *InvoiceRepo) Update(ctx context.Context, inv *invoice.SalesInvoice) error {
	currentVersion := inv.Version
	inv.Touch()

	q := postgres.Builder().
		Update(invoiceTable).
		SetMap(map[string]any{
			"version":        inv.Version,
			"updated_at":     inv.UpdatedAt,
			"sales_order_id": inv.SalesOrderID,
			"quantity":       inv.Quantity,
			"invoice_date":   inv.InvoiceDate,
		}).
		Where(squirrel.Eq{"id": inv.ID, "version": currentVersion})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, "sales_invoice", inv.ID.String())
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, inv.ID); err != nil {
			return err
		}
		return apperror.NewConcurrentModification("sales_invoice", inv.ID)
	}
	return nil
}

// MarkProcessed sets only the processed flag.
func (r *InvoiceRepo) MarkProcessed(ctx context.Context, invoiceID id.ID) error {
	const sql = `UPDATE doc_sales_invoices
		SET processed = true, version = version + 1, updated_at = now()
		WHERE id = $1`

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, invoiceID)
	if err != nil {
		return postgres.TranslateError(err, "sales_invoice", invoiceID.String())
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("sales_invoice", invoiceID)
	}
	return nil
}

func (r *InvoiceRepo) Delete(ctx context.Context, invoiceID id.ID) error {
	sql, args, err := postgres.Builder().
		Delete(invoiceTable).
		Where(squirrel.Eq{"id": invoiceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, "sales_invoice", invoiceID.String())
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("sales_invoice", invoiceID)
	}
	return nil
}

func (r *InvoiceRepo) List(ctx context.Context, filter invoice.ListFilter) (domain.ListResult[*invoice.SalesInvoice], error) {
	var result domain.ListResult[*invoice.SalesInvoice]

	base := postgres.Builder().
		Select(invoiceColumns...).
		From(invoiceTable)
	countQ := postgres.Builder().
		Select("COUNT(*)").
		From(invoiceTable)

	var conds []squirrel.Sqlizer
	if filter.SalesOrderID != nil {
		conds = append(conds, squirrel.Eq{"sales_order_id": *filter.SalesOrderID})
	}
	if filter.Processed != nil {
		conds = append(conds, squirrel.Eq{"processed": *filter.Processed})
	}
	for _, c := range conds {
		base = base.Where(c)
		countQ = countQ.Where(c)
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}
	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, postgres.TranslateError(err, "sales_invoice", "")
	}

	sql, args, err := base.
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	items := make([]*invoice.SalesInvoice, 0)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return result, postgres.TranslateError(err, "sales_invoice", "")
	}

	result.Items = items
	result.Limit = filter.Limit
	result.Offset = filter.Offset
	return result, nil
}
