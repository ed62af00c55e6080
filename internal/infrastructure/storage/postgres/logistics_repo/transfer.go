// Package logistics_repo implements logistics and forecasting
// repositories on PostgreSQL.
package logistics_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/domain"
	"stockd/internal/domain/logistics/transfer"
	"stockd/internal/infrastructure/storage/postgres"
)

const transferTable = "doc_stock_transfers"

var transferColumns = []string{
	"id", "version", "created_at", "updated_at",
	"product_id", "from_location", "to_location", "quantity", "transfer_date",
}

// Compile-time check.
var _ transfer.Repository = (*TransferRepo)(nil)

// TransferRepo implements transfer.Repository.
type TransferRepo struct {
	txm *postgres.TxManager
}

// NewTransferRepo creates a new stock transfer repository.
func NewTransferRepo(txm *postgres.TxManager) *TransferRepo {
	return &TransferRepo{txm: txm}
}

func (r *TransferRepo) Create(ctx context.Context, t *transfer.StockTransfer) error {
	q := postgres.Builder().
		Insert(transferTable).
		SetMap(map[string]any{
			"id":            t.ID,
			"version":       t.Version,
			"created_at":    t.CreatedAt,
			"updated_at":    t.UpdatedAt,
			"product_id":    t.ProductID,
			"from_location": t.FromLocation,
			"to_location":   t.ToLocation,
			"quantity":      t.Quantity,
			"transfer_date": t.TransferDate,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	return postgres.TranslateError(err, "stock_transfer", t.ID.String())
}

func (r *TransferRepo) GetByID(ctx context.Context, transferID id.ID) (*transfer.StockTransfer, error) {
	sql, args, err := postgres.Builder().
		Select(transferColumns...).
		From(transferTable).
		Where(squirrel.Eq{"id": transferID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var t transfer.StockTransfer
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &t, sql, args...); err != nil {
		return nil, postgres.TranslateError(err, "stock_transfer", transferID.String())
	}
	return &t, nil
}

func (r *TransferRepo) Delete(ctx context.Context, transferID id.ID) error {
	sql, args, err := postgres.Builder().
		Delete(transferTable).
		Where(squirrel.Eq{"id": transferID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, "stock_transfer", transferID.String())
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("stock_transfer", transferID)
	}
	return nil
}

func (r *TransferRepo) List(ctx context.Context, filter transfer.ListFilter) (domain.ListResult[*transfer.StockTransfer], error) {
	var result domain.ListResult[*transfer.StockTransfer]

	base := postgres.Builder().
		Select(transferColumns...).
		From(transferTable)
	countQ := postgres.Builder().
		Select("COUNT(*)").
		From(transferTable)

	var conds []squirrel.Sqlizer
	if filter.ProductID != nil {
		conds = append(conds, squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.FromLocation != "" {
		conds = append(conds, squirrel.Eq{"from_location": filter.FromLocation})
	}
	if filter.ToLocation != "" {
		conds = append(conds, squirrel.Eq{"to_location": filter.ToLocation})
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
		return result, postgres.TranslateError(err, "stock_transfer", "")
	}

	sql, args, err := base.
		OrderBy("transfer_date DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	items := make([]*transfer.StockTransfer, 0)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return result, postgres.TranslateError(err, "stock_transfer", "")
	}

	result.Items = items
	result.Limit = filter.Limit
	result.Offset = filter.Offset
	return result, nil
}
