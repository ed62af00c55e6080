package logistics_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/domain"
	"stockd/internal/domain/forecast"
	"stockd/internal/infrastructure/storage/postgres"
)

const forecastTable = "doc_demand_forecasts"

var forecastColumns = []string{
	"id", "version", "created_at", "updated_at",
	"product_id", "month", "predicted_demand",
}

// Compile-time check.
var _ forecast.Repository = (*ForecastRepo)(nil)

// ForecastRepo implements forecast.Repository.
type ForecastRepo struct {
	txm *postgres.TxManager
}

// NewForecastRepo creates a new demand forecast repository.
func NewForecastRepo(txm *postgres.TxManager) *ForecastRepo {
	return &ForecastRepo{txm: txm}
}

func (r *ForecastRepo) Create(ctx context.Context, f *forecast.DemandForecast) error {
	q := postgres.Builder().
		Insert(forecastTable).
		SetMap(map[string]any{
			"id":               f.ID,
			"version":          f.Version,
			"created_at":       f.CreatedAt,
			"updated_at":       f.UpdatedAt,
			"product_id":       f.ProductID,
			"month":            f.Month,
			"predicted_demand": f.PredictedDemand,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	return postgres.TranslateError(err, "demand_forecast", f.ID.String())
}

func (r *ForecastRepo) GetByID(ctx context.Context, forecastID id.ID) (*forecast.DemandForecast, error) {
	return r.getOne(ctx, squirrel.Eq{"id": forecastID}, forecastID.String())
}

func (r *ForecastRepo) GetByProductMonth(ctx context.Context, productID id.ID, month time.Time) (*forecast.DemandForecast, error) {
	return r.getOne(ctx,
		squirrel.Eq{"product_id": productID, "month": forecast.NormalizeMonth(month)},
		productID.String()+"@"+month.Format("2006-01"))
}

func (r *ForecastRepo) getOne(ctx context.Context, where squirrel.Eq, key string) (*forecast.DemandForecast, error) {
	sql, args, err := postgres.Builder().
		Select(forecastColumns...).
		From(forecastTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var f forecast.DemandForecast
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &f, sql, args...); err != nil {
		return nil, postgres.TranslateError(err, "demand_forecast", key)
	}
	return &f, nil
}

func (r *ForecastRepo) Update(ctx context.Context, f *forecast.DemandForecast) error {
	currentVersion := f.Version
	f.Touch()

	q := postgres.Builder().
		Update(forecastTable).
		SetMap(map[string]any{
			"version":          f.Version,
			"updated_at":       f.UpdatedAt,
			"product_id":       f.ProductID,
			"month":            f.Month,
			"predicted_demand": f.PredictedDemand,
		}).
		Where(squirrel.Eq{"id": f.ID, "version": currentVersion})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, "demand_forecast", f.ID.String())
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, f.ID); err != nil {
			return err
		}
		return apperror.NewConcurrentModification("demand_forecast", f.ID)
	}
	return nil
}

func (r *ForecastRepo) Delete(ctx context.Context, forecastID id.ID) error {
	sql, args, err := postgres.Builder().
		Delete(forecastTable).
		Where(squirrel.Eq{"id": forecastID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, "demand_forecast", forecastID.String())
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("demand_forecast", forecastID)
	}
	return nil
}

func (r *ForecastRepo) List(ctx context.Context, filter forecast.ListFilter) (domain.ListResult[*forecast.DemandForecast], error) {
	var result domain.ListResult[*forecast.DemandForecast]

	base := postgres.Builder().
		Select(forecastColumns...).
		From(forecastTable)
	countQ := postgres.Builder().
		Select("COUNT(*)").
		From(forecastTable)

	var conds []squirrel.Sqlizer
	if filter.ProductID != nil {
		conds = append(conds, squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.Month != nil {
		conds = append(conds, squirrel.Eq{"month": forecast.NormalizeMonth(*filter.Month)})
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
		return result, postgres.TranslateError(err, "demand_forecast", "")
	}

	sql, args, err := base.
		OrderBy("month ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	items := make([]*forecast.DemandForecast, 0)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return result, postgres.TranslateError(err, "demand_forecast", "")
	}

	result.Items = items
	result.Limit = filter.Limit
	result.Offset = filter.Offset
	return result, nil
}
