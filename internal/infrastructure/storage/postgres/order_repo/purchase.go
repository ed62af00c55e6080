// Package order_repo implements order repositories on PostgreSQL.
package order_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/domain"
	"stockd/internal/domain/orders/purchase"
	"stockd/internal/infrastructure/storage/postgres"
)

const purchaseTable = "doc_purchase_orders"

var purchaseColumns = []string{
	"id", "version", "created_at", "updated_at",
	"product_id", "quantity", "supplier", "expected_date", "status",
}

// Compile-time check.
var _ purchase.Repository = (*PurchaseRepo)(nil)

// PurchaseRepo implements purchase.Repository.
type PurchaseRepo struct {
	txm *postgres.TxManager
}

// NewPurchaseRepo creates a new purchase order repository.
func NewPurchaseRepo(txm *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{txm: txm}
}

func (r *PurchaseRepo) Create(ctx context.Context, po *purchase.PurchaseOrder) error {
	q := postgres.Builder().
		Insert(purchaseTable).
		SetMap(map[string]any{
			"id":            po.ID,
			"version":       po.Version,
			"created_at":    po.CreatedAt,
			"updated_at":    po.UpdatedAt,
			"product_id":    po.ProductID,
			"quantity":      po.Quantity,
			"supplier":      po.Supplier,
			"expected_date": po.ExpectedDate,
			"status":        po.Status,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	return postgres.TranslateError(err, "purchase_order", po.ID.String())
}

func (r *PurchaseRepo) GetByID(ctx context.Context, orderID id.ID) (*purchase.PurchaseOrder, error) {
	return r.getOne(ctx, orderID, false)
}

// GetForUpdate locks the order row for the rest of the transaction.
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, orderID id.ID) (*purchase.PurchaseOrder, error) {
	return r.getOne(ctx, orderID, true)
}

func (r *PurchaseRepo) getOne(ctx context.Context, orderID id.ID, forUpdate bool) (*purchase.PurchaseOrder, error) {
	q := postgres.Builder().
		Select(purchaseColumns...).
		From(purchaseTable).
		Where(squirrel.Eq{"id": orderID})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var po purchase.PurchaseOrder
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &po, sql, args...); err != nil {
		return nil, postgres.TranslateError(err, "purchase_order", orderID.String())
	}
	return &po, nil
}

func (r *PurchaseRepo) Update(ctx context.Context, po *purchase.PurchaseOrder) error {
	currentVersion := po.Version
	po.Touch()

	q := postgres.Builder().
		Update(purchaseTable).
		SetMap(map[string]any{
			"version":       po.Version,
			"updated_at":    po.UpdatedAt,
			"product_id":    po.ProductID,
			"quantity":      po.Quantity,
			"supplier":      po.Supplier,
			"expected_date": po.ExpectedDate,
			"status":        po.Status,
		}).
		Where(squirrel.Eq{"id": po.ID, "version": currentVersion})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, "purchase_order", po.ID.String())
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, po.ID); err != nil {
			return err
		}
		return apperror.NewConcurrentModification("purchase_order", po.ID)
	}
	return nil
}

// SetStatus writes only the status column. Callers hold the row lock.
func (r *PurchaseRepo) SetStatus(ctx context.Context, orderID id.ID, status purchase.Status) error {
	const sql = `UPDATE doc_purchase_orders
		SET status = $2, version = version + 1, updated_at = now()
		WHERE id = $1`

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, orderID, status)
	if err != nil {
		return postgres.TranslateError(err, "purchase_order", orderID.String())
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("purchase_order", orderID)
	}
	return nil
}

func (r *PurchaseRepo) Delete(ctx context.Context, orderID id.ID) error {
	sql, args, err := postgres.Builder().
		Delete(purchaseTable).
		Where(squirrel.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, "purchase_order", orderID.String())
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("purchase_order", orderID)
	}
	return nil
}

func (r *PurchaseRepo) List(ctx context.Context, filter purchase.ListFilter) (domain.ListResult[*purchase.PurchaseOrder], error) {
	var result domain.ListResult[*purchase.PurchaseOrder]

	base := postgres.Builder().
		Select(purchaseColumns...).
		From(purchaseTable)
	countQ := postgres.Builder().
		Select("COUNT(*)").
		From(purchaseTable)

	var conds []squirrel.Sqlizer
	if filter.ProductID != nil {
		conds = append(conds, squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.Supplier != "" {
		conds = append(conds, squirrel.Eq{"supplier": filter.Supplier})
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
		return result, postgres.TranslateError(err, "purchase_order", "")
	}

	sql, args, err := base.
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	items := make([]*purchase.PurchaseOrder, 0)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return result, postgres.TranslateError(err, "purchase_order", "")
	}

	result.Items = items
	result.Limit = filter.Limit
	result.Offset = filter.Offset
	return result, nil
}
