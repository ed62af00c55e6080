// Package forecast provides monthly demand forecasts per product.
package forecast

import (
	"context"
	"time"

	"stockd/internal/core/apperror"
	"stockd/internal/core/entity"
	"stockd/internal/core/id"
)

// DemandForecast predicts demand for a product in a given month.
// One forecast exists per (product, month); Month is always the first
// day of the month at midnight UTC.
type DemandForecast struct {
	entity.Base

	ProductID id.ID `db:"product_id" json:"productId"`

	Month time.Time `db:"month" json:"month"`

	// PredictedDemand in whole units
	PredictedDemand int64 `db:"predicted_demand" json:"predictedDemand"`
}

// New creates a forecast, normalizing the month.
func New(productID id.ID, month time.Time, predicted int64) *DemandForecast {
	return &DemandForecast{
		Base:            entity.NewBase(),
		ProductID:       productID,
		Month:           NormalizeMonth(month),
		PredictedDemand: predicted,
	}
}

// NormalizeMonth truncates a date to the first of its month, UTC.
func NormalizeMonth(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Validate implements entity.Validatable.
func (f *DemandForecast) Validate(ctx context.Context) error {
	if id.IsNil(f.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if f.Month.IsZero() {
		return apperror.NewValidation("month is required").
			WithDetail("field", "month")
	}
	if f.PredictedDemand < 0 {
		return apperror.NewValidation("predicted demand must not be negative").
			WithDetail("field", "predictedDemand")
	}
	return nil
}
