// Package catalog_repo implements catalog repositories on PostgreSQL.
package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/domain"
	"stockd/internal/domain/catalogs/product"
	"stockd/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

var productColumns = []string{
	"id", "version", "created_at", "updated_at",
	"sku", "name", "description", "unit_price",
}

// Compile-time check.
var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	txm *postgres.TxManager
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{txm: txm}
}

func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	q := postgres.Builder().
		Insert(productTable).
		SetMap(map[string]any{
			"id":          p.ID,
			"version":     p.Version,
			"created_at":  p.CreatedAt,
			"updated_at":  p.UpdatedAt,
			"sku":         p.SKU,
			"name":        p.Name,
			"description": p.Description,
			"unit_price":  p.UnitPrice,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	return postgres.TranslateError(err, "product", p.SKU)
}

func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	return r.getOne(ctx, squirrel.Eq{"id": productID}, productID.String())
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*product.Product, error) {
	return r.getOne(ctx, squirrel.Eq{"sku": sku}, sku)
}

func (r *ProductRepo) getOne(ctx context.Context, where squirrel.Eq, key string) (*product.Product, error) {
	sql, args, err := postgres.Builder().
		Select(productColumns...).
		From(productTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p product.Product
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, sql, args...); err != nil {
		return nil, postgres.TranslateError(err, "product", key)
	}
	return &p, nil
}

// Update writes all mutable columns, guarded by the version column.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	currentVersion := p.Version
	p.Touch()

	q := postgres.Builder().
		Update(productTable).
		SetMap(map[string]any{
			"version":     p.Version,
			"updated_at":  p.UpdatedAt,
			"sku":         p.SKU,
			"name":        p.Name,
			"description": p.Description,
			"unit_price":  p.UnitPrice,
		}).
		Where(squirrel.Eq{"id": p.ID, "version": currentVersion})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, "product", p.ID.String())
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, p.ID); err != nil {
			return err
		}
		return apperror.NewConcurrentModification("product", p.ID)
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, productID id.ID) error {
	sql, args, err := postgres.Builder().
		Delete(productTable).
		Where(squirrel.Eq{"id": productID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, "product", productID.String())
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID)
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context, filter product.ListFilter) (domain.ListResult[*product.Product], error) {
	var result domain.ListResult[*product.Product]

	base := postgres.Builder().
		Select(productColumns...).
		From(productTable)
	countQ := postgres.Builder().
		Select("COUNT(*)").
		From(productTable)

	conds := productConds(filter)
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
		return result, postgres.TranslateError(err, "product", "")
	}

	sql, args, err := base.
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	items := make([]*product.Product, 0)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return result, postgres.TranslateError(err, "product", "")
	}

	result.Items = items
	result.Limit = filter.Limit
	result.Offset = filter.Offset
	return result, nil
}

func productConds(filter product.ListFilter) []squirrel.Sqlizer {
	var conds []squirrel.Sqlizer
	if filter.Name != "" {
		conds = append(conds, squirrel.Eq{"name": filter.Name})
	}
	if filter.SKU != "" {
		conds = append(conds, squirrel.Eq{"sku": filter.SKU})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"sku": pattern},
		})
	}
	return conds
}

func (r *ProductRepo) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	sql, args, err := postgres.Builder().
		Select("1").
		From(productTable).
		Where(squirrel.Eq{"sku": sku}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists bool
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, postgres.TranslateError(err, "product", sku)
	}
	return exists, nil
}

// IsReferenced reports whether any order or stock row points at the
// product.
func (r *ProductRepo) IsReferenced(ctx context.Context, productID id.ID) (bool, error) {
	const sql = `SELECT EXISTS (SELECT 1 FROM doc_purchase_orders WHERE product_id = $1)
		OR EXISTS (SELECT 1 FROM doc_sales_orders WHERE product_id = $1)
		OR EXISTS (SELECT 1 FROM reg_stock WHERE product_id = $1)`

	var referenced bool
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, productID).Scan(&referenced); err != nil {
		return false, postgres.TranslateError(err, "product", productID.String())
	}
	return referenced, nil
}
