// Package document_repo implements document repositories on
// PostgreSQL.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/domain"
	"stockd/internal/domain/documents/grn"
	"stockd/internal/infrastructure/storage/postgres"
)

const grnTable = "doc_goods_received_notes"

var grnColumns = []string{
	"id", "version", "created_at", "updated_at",
	"purchase_order_id", "received_quantity", "received_date", "matched", "processed",
}

// Compile-time check.
var _ grn.Repository = (*GRNRepo)(nil)

// GRNRepo implements grn.Repository.
type GRNRepo struct {
	txm *postgres.TxManager
}

// NewGRNRepo creates a new goods received note repository.
func NewGRNRepo(txm *postgres.TxManager) *GRNRepo {
	return &GRNRepo{txm: txm}
}

func (r *GRNRepo) Create(ctx context.Context, n *grn.GoodsReceivedNote) error {
	q := postgres.Builder().
		Insert(grnTable).
		SetMap(map[string]any{
			"id":                n.ID,
			"version":           n.Version,
			"created_at":        n.CreatedAt,
			"updated_at":        n.UpdatedAt,
			"purchase_order_id": n.PurchaseOrderID,
			"received_quantity": n.ReceivedQuantity,
			"received_date":     n.ReceivedDate,
			"matched":           n.Matched,
			"processed":         n.Processed,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	return postgres.TranslateError(err, "goods_received_note", n.ID.String())
}

func (r *GRNRepo) GetByID(ctx context.Context, noteID id.ID) (*grn.GoodsReceivedNote, error) {
	return r.getOne(ctx, noteID, false)
}

// GetForUpdate locks the note row for the rest of the transaction.
func (r *GRNRepo) GetForUpdate(ctx context.Context, noteID id.ID) (*grn.GoodsReceivedNote, error) {
	return r.getOne(ctx, noteID, true)
}

func (r *GRNRepo) getOne(ctx context.Context, noteID id.ID, forUpdate bool) (*grn.GoodsReceivedNote, error) {
	q := postgres.Builder().
		Select(grnColumns...).
		From(grnTable).
		Where(squirrel.Eq{"id": noteID})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var n grn.GoodsReceivedNote
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &n, sql, args...); err != nil {
		return nil, postgres.TranslateError(err, "goods_received_note", noteID.String())
	}
	return &n, nil
}

// Update writes the mutable columns. The processed flag is not among
// them; only MarkProcessed can set it.
func (r *GRNRepo) Update(ctx context.Context, n *grn.GoodsReceivedNote) error {
	currentVersion := n.Version
	n.Touch()

	q := postgres.Builder().
		Update(grnTable).
		SetMap(map[string]any{
			"version":           n.Version,
			"updated_at":        n.UpdatedAt,
			"purchase_order_id": n.PurchaseOrderID,
			"received_quantity": n.ReceivedQuantity,
			"received_date":     n.ReceivedDate,
			"matched":           n.Matched,
		}).
		Where(squirrel.Eq{"id": n.ID, "version": currentVersion})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, "goods_received_note", n.ID.String())
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, n.ID); err != nil {
			return err
		}
		return apperror.NewConcurrentModification("goods_received_note", n.ID)
	}
	return nil
}

// MarkProcessed sets only the processed flag. The touched row keeps
// every other column untouched so the flag cannot overwrite a
// concurrent edit.
func (r *GRNRepo) MarkProcessed(ctx context.Context, noteID id.ID) error {
	const sql = `UPDATE doc_goods_received_notes
		SET processed = true, version = version + 1, updated_at = now()
		WHERE id = $1`

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, noteID)
	if err != nil {
		return postgres.TranslateError(err, "goods_received_note", noteID.String())
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("goods_received_note", noteID)
	}
	return nil
}

func (r *GRNRepo) Delete(ctx context.Context, noteID id.ID) error {
	sql, args, err := postgres.Builder().
		Delete(grnTable).
		Where(squirrel.Eq{"id": noteID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, "goods_received_note", noteID.String())
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("goods_received_note", noteID)
	}
	return nil
}

func (r *GRNRepo) List(ctx context.Context, filter grn.ListFilter) (domain.ListResult[*grn.GoodsReceivedNote], error) {
	var result domain.ListResult[*grn.GoodsReceivedNote]

	base := postgres.Builder().
		Select(grnColumns...).
		From(grnTable)
	countQ := postgres.Builder().
		Select("COUNT(*)").
		From(grnTable)

	var conds []squirrel.Sqlizer
	if filter.PurchaseOrderID != nil {
		conds = append(conds, squirrel.Eq{"purchase_order_id": *filter.PurchaseOrderID})
	}
	if filter.Matched != nil {
		conds = append(conds, squirrel.Eq{"matched": *filter.Matched})
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
		return result, postgres.TranslateError(err, "goods_received_note", "")
	}

	sql, args, err := base.
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	items := make([]*grn.GoodsReceivedNote, 0)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return result, postgres.TranslateError(err, "goods_received_note", "")
	}

	result.Items = items
	result.Limit = filter.Limit
	result.Offset = filter.Offset
	return result, nil
}
