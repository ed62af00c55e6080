// Package register_repo implements register repositories on
// PostgreSQL.
package register_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/domain"
	"stockd/internal/domain/registers/stock"
	"stockd/internal/infrastructure/storage/postgres"
)

const stockTable = "reg_stock"

var stockColumns = []string{
	"id", "version", "created_at", "updated_at",
	"product_id", "location", "quantity", "reorder_level",
}

// Compile-time check.
var _ stock.Repository = (*StockRepo)(nil)

// StockRepo implements stock.Repository.
type StockRepo struct {
	txm *postgres.TxManager
}

// NewStockRepo creates a new stock repository.
func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{txm: txm}
}

func (r *StockRepo) Create(ctx context.Context, s *stock.Stock) error {
	q := postgres.Builder().
		Insert(stockTable).
		SetMap(stockValues(s))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	return postgres.TranslateError(err, "stock", stockKey(s.ProductID, s.Location))
}

func (r *StockRepo) GetByID(ctx context.Context, stockID id.ID) (*stock.Stock, error) {
	return r.getOne(ctx, squirrel.Eq{"id": stockID}, stockID.String(), false)
}

func (r *StockRepo) GetByProductLocation(ctx context.Context, productID id.ID, location string) (*stock.Stock, error) {
	return r.getOne(ctx,
		squirrel.Eq{"product_id": productID, "location": location},
		stockKey(productID, location), false)
}

// GetForUpdate locks the row for the rest of the transaction.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID id.ID, location string) (*stock.Stock, error) {
	return r.getOne(ctx,
		squirrel.Eq{"product_id": productID, "location": location},
		stockKey(productID, location), true)
}

func (r *StockRepo) getOne(ctx context.Context, where squirrel.Eq, key string, forUpdate bool) (*stock.Stock, error) {
	q := postgres.Builder().
		Select(stockColumns...).
		From(stockTable).
		Where(where)
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var s stock.Stock
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &s, sql, args...); err != nil {
		return nil, postgres.TranslateError(err, "stock", key)
	}
	return &s, nil
}

// GetOrCreateForUpdate locks the (product, location) row, inserting
// one at zero quantity first when it does not exist. The insert uses
// ON CONFLICT DO NOTHING so two concurrent callers converge on the
// same row, with the loser blocking on the winner's lock.
func (r *StockRepo) GetOrCreateForUpdate(ctx context.Context, productID id.ID, location string) (*stock.Stock, error) {
	s, err := r.GetForUpdate(ctx, productID, location)
	if err == nil {
		return s, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	created := stock.New(productID, location)
	q := postgres.Builder().
		Insert(stockTable).
		SetMap(stockValues(created)).
		Suffix("ON CONFLICT (product_id, location) DO NOTHING")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return nil, postgres.TranslateError(err, "stock", stockKey(productID, location))
	}

	return r.GetForUpdate(ctx, productID, location)
}

// AdjustQuantity applies a signed delta to the row. Callers hold the
// row lock already; the guard against negative quantities is the
// check constraint plus the engine's own availability check.
func (r *StockRepo) AdjustQuantity(ctx context.Context, stockID id.ID, delta int64) error {
	const sql = `UPDATE reg_stock
		SET quantity = quantity + $2, version = version + 1, updated_at = now()
		WHERE id = $1`

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, stockID, delta)
	if err != nil {
		return postgres.TranslateError(err, "stock", stockID.String())
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("stock", stockID)
	}
	return nil
}

func (r *StockRepo) Update(ctx context.Context, s *stock.Stock) error {
	currentVersion := s.Version
	s.Touch()

	q := postgres.Builder().
		Update(stockTable).
		SetMap(map[string]any{
			"version":       s.Version,
			"updated_at":    s.UpdatedAt,
			"location":      s.Location,
			"quantity":      s.Quantity,
			"reorder_level": s.ReorderLevel,
		}).
		Where(squirrel.Eq{"id": s.ID, "version": currentVersion})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, "stock", s.ID.String())
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, s.ID); err != nil {
			return err
		}
		return apperror.NewConcurrentModification("stock", s.ID)
	}
	return nil
}

func (r *StockRepo) Delete(ctx context.Context, stockID id.ID) error {
	sql, args, err := postgres.Builder().
		Delete(stockTable).
		Where(squirrel.Eq{"id": stockID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, "stock", stockID.String())
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("stock", stockID)
	}
	return nil
}

func (r *StockRepo) List(ctx context.Context, filter stock.ListFilter) (domain.ListResult[*stock.Stock], error) {
	var result domain.ListResult[*stock.Stock]

	base := postgres.Builder().
		Select(stockColumns...).
		From(stockTable)
	countQ := postgres.Builder().
		Select("COUNT(*)").
		From(stockTable)

	for _, c := range stockConds(filter) {
		base = base.Where(c)
		countQ = countQ.Where(c)
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}
	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, postgres.TranslateError(err, "stock", "")
	}

	sql, args, err := base.
		OrderBy("location, product_id").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	items := make([]*stock.Stock, 0)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return result, postgres.TranslateError(err, "stock", "")
	}

	result.Items = items
	result.Limit = filter.Limit
	result.Offset = filter.Offset
	return result, nil
}

func stockConds(filter stock.ListFilter) []squirrel.Sqlizer {
	var conds []squirrel.Sqlizer
	if filter.ProductID != nil {
		conds = append(conds, squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.Location != "" {
		conds = append(conds, squirrel.Eq{"location": filter.Location})
	}
	if filter.Quantity != nil {
		conds = append(conds, squirrel.Eq{"quantity": *filter.Quantity})
	}
	if filter.BelowReorder {
		conds = append(conds, squirrel.Expr("quantity <= reorder_level"))
	}
	return conds
}

func stockValues(s *stock.Stock) map[string]any {
	return map[string]any{
		"id":            s.ID,
		"version":       s.Version,
		"created_at":    s.CreatedAt,
		"updated_at":    s.UpdatedAt,
		"product_id":    s.ProductID,
		"location":      s.Location,
		"quantity":      s.Quantity,
		"reorder_level": s.ReorderLevel,
	}
}

func stockKey(productID id.ID, location string) string {
	return productID.String() + "@" + location
}
