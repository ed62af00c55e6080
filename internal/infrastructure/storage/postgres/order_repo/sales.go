package order_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/domain"
	"stockd/internal/domain/orders/sales"
	"stockd/internal/infrastructure/storage/postgres"
)

const salesTable = "doc_sales_orders"

var salesColumns = []string{
	"id", "version", "created_at", "updated_at",
	"product_id", "quantity", "customer", "order_date", "status",
}

// Compile-time check.
var _ sales.Repository = (*SalesRepo)(nil)

// SalesRepo implements sales.Repository.
type SalesRepo struct {
	txm *postgres.TxManager
}

// NewSalesRepo creates a new sales order repository.
func NewSalesRepo(txm *postgres.TxManager) *SalesRepo {
	return &SalesRepo{txm: txm}
}

func (r *SalesRepo) Create(ctx context.Context, so *sales.SalesOrder) error {
	q := postgres.Builder().
		Insert(salesTable).
		SetMap(map[string]any{
			"id":         so.ID,
			"version":    so.Version,
			"created_at": so.CreatedAt,
			"updated_at": so.UpdatedAt,
			"product_id": so.ProductID,
			"quantity":   so.Quantity,
			"customer":   so.Customer,
			"order_date": so.OrderDate,
			"status":     so.Status,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	return postgres.TranslateError(err, "sales_order", so.ID.String())
}

func (r *SalesRepo) GetByID(ctx context.Context, orderID id.ID) (*sales.SalesOrder, error) {
	return r.getOne(ctx, orderID, false)
}

// GetForUpdate locks the order row for the rest of the transaction.
func (r *SalesRepo) GetForUpdate(ctx context.Context, orderID id.ID) (*sales.SalesOrder, error) {
	return r.getOne(ctx, orderID, true)
}

func (r *SalesRepo) getOne(ctx context.Context, orderID id.ID, forUpdate bool) (*sales.SalesOrder, error) {
	q := postgres.Builder().
		Select(salesColumns...).
		From(salesTable).
		Where(squirrel.Eq{"id": orderID})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var so sales.SalesOrder
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &so, sql, args...); err != nil {
		return nil, postgres.TranslateError(err, "sales_order", orderID.String())
	}
	return &so, nil
}

func (r *SalesRepo) Update(ctx context.Context, so *sales.SalesOrder) error {
	currentVersion := so.Version
	so.Touch()

	q := postgres.Builder().
		Update(salesTable).
		SetMap(map[string]any{
			"version":    so.Version,
			"updated_at": so.UpdatedAt,
			"product_id": so.ProductID,
			"quantity":   so.Quantity,
			"customer":   so.Customer,
			"order_date": so.OrderDate,
			"status":     so.Status,
		}).
		Where(squirrel.Eq{"id": so.ID, "version": currentVersion})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, "sales_order", so.ID.String())
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, so.ID); err != nil {
			return err
		}
		return apperror.NewConcurrentModification("sales_order", so.ID)
	}
	return nil
}

// SetStatus writes only the status column. Callers hold the row lock.
func (r *SalesRepo) SetStatus(ctx context.Context, orderID id.ID, status sales.Status) error {
	const sql = `UPDATE doc_sales_orders
		SET status = $2, version = version + 1, updated_at = now()
		WHERE id = $1`

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, orderID, status)
	if err != nil {
		return postgres.TranslateError(err, "sales_order", orderID.String())
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("sales_order", orderID)
	}
	return nil
}

func (r *SalesRepo) Delete(ctx context.Context, orderID id.ID) error {
	sql, args, err := postgres.Builder().
		Delete(salesTable).
		Where(squirrel.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, "sales_order", orderID.String())
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("sales_order", orderID)
	}
	return nil
}

func (r *SalesRepo) List(ctx context.Context, filter sales.ListFilter) (domain.ListResult[*sales.SalesOrder], error) {
	var result domain.ListResult[*sales.SalesOrder]

	base := postgres.Builder().
		Select(salesColumns...).
		From(salesTable)
	countQ := postgres.Builder().
		Select("COUNT(*)").
		From(salesTable)

	var conds []squirrel.Sqlizer
	if filter.ProductID != nil {
		conds = append(conds, squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.Customer != "" {
		conds = append(conds, squirrel.Eq{"customer": filter.Customer})
	}
	if filter.Status != "" {
		conds = append(conds, squirrel.Eq{"status": filter.Status})
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
		return result, postgres.TranslateError(err, "sales_order", "")
	}

	sql, args, err := base.
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	items := make([]*sales.SalesOrder, 0)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return result, postgres.TranslateError(err, "sales_order", "")
	}

	result.Items = items
	result.Limit = filter.Limit
	result.Offset = filter.Offset
	return result, nil
}
