package logistics_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/domain"
	"stockd/internal/domain/logistics/dropship"
	"stockd/internal/infrastructure/storage/postgres"
)

const dropshipTable = "doc_drop_shipments"

var dropshipColumns = []string{
	"id", "version", "created_at", "updated_at",
	"product_id", "customer_name", "address", "shipped",
}

// Compile-time check.
var _ dropship.Repository = (*DropShipmentRepo)(nil)

// DropShipmentRepo implements dropship.Repository.
type DropShipmentRepo struct {
	txm *postgres.TxManager
}

// NewDropShipmentRepo creates a new drop shipment repository.
func NewDropShipmentRepo(txm *postgres.TxManager) *DropShipmentRepo {
	return &DropShipmentRepo{txm: txm}
}

func (r *DropShipmentRepo) Create(ctx context.Context, d *dropship.DropShipment) error {
	q := postgres.Builder().
		Insert(dropshipTable).
		SetMap(map[string]any{
			"id":            d.ID,
			"version":       d.Version,
			"created_at":    d.CreatedAt,
			"updated_at":    d.UpdatedAt,
			"product_id":    d.ProductID,
			"customer_name": d.CustomerName,
			"address":       d.Address,
			"shipped":       d.Shipped,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	return postgres.TranslateError(err, "drop_shipment", d.ID.String())
}

func (r *DropShipmentRepo) GetByID(ctx context.Context, shipmentID id.ID) (*dropship.DropShipment, error) {
	sql, args, err := postgres.Builder().
		Select(dropshipColumns...).
		From(dropshipTable).
		Where(squirrel.Eq{"id": shipmentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var d dropship.DropShipment
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &d, sql, args...); err != nil {
		return nil, postgres.TranslateError(err, "drop_shipment", shipmentID.String())
	}
	return &d, nil
}

func (r *DropShipmentRepo) Update(ctx context.Context, d *dropship.DropShipment) error {
	currentVersion := d.Version
	d.Touch()

	q := postgres.Builder().
		Update(dropshipTable).
		SetMap(map[string]any{
			"version":       d.Version,
			"updated_at":    d.UpdatedAt,
			"product_id":    d.ProductID,
			"customer_name": d.CustomerName,
			"address":       d.Address,
			"shipped":       d.Shipped,
		}).
		Where(squirrel.Eq{"id": d.ID, "version": currentVersion})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, "drop_shipment", d.ID.String())
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, d.ID); err != nil {
			return err
		}
		return apperror.NewConcurrentModification("drop_shipment", d.ID)
	}
	return nil
}

func (r *DropShipmentRepo) Delete(ctx context.Context, shipmentID id.ID) error {
	sql, args, err := postgres.Builder().
		Delete(dropshipTable).
		Where(squirrel.Eq{"id": shipmentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, "drop_shipment", shipmentID.String())
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("drop_shipment", shipmentID)
	}
	return nil
}

func (r *DropShipmentRepo) List(ctx context.Context, filter dropship.ListFilter) (domain.ListResult[*dropship.DropShipment], error) {
	var result domain.ListResult[*dropship.DropShipment]

	base := postgres.Builder().
		Select(dropshipColumns...).
		From(dropshipTable)
	countQ := postgres.Builder().
		Select("COUNT(*)").
		From(dropshipTable)

	var conds []squirrel.Sqlizer
	if filter.ProductID != nil {
		conds = append(conds, squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.Shipped != nil {
		conds = append(conds, squirrel.Eq{"shipped": *filter.Shipped})
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
		return result, postgres.TranslateError(err, "drop_shipment", "")
	}

	sql, args, err := base.
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	items := make([]*dropship.DropShipment, 0)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return result, postgres.TranslateError(err, "drop_shipment", "")
	}

	result.Items = items
	result.Limit = filter.Limit
	result.Offset = filter.Offset
	return result, nil
}
