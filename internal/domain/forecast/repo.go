package forecast

import (
	"context"
	"time"

	"stockd/internal/core/id"
	"stockd/internal/domain"
)

// ListFilter contains filtering options for forecast lists.
type ListFilter struct {
	domain.Page

	ProductID *id.ID
	Month     *time.Time
}

// Repository defines DemandForecast persistence.
type Repository interface {
	Create(ctx context.Context, f *DemandForecast) error
	GetByID(ctx context.Context, forecastID id.ID) (*DemandForecast, error)
	GetByProductMonth(ctx context.Context, productID id.ID, month time.Time) (*DemandForecast, error)
	Update(ctx context.Context, f *DemandForecast) error
	Delete(ctx context.Context, forecastID id.ID) error
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*DemandForecast], error)
}
