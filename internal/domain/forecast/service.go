package forecast

import (
	"context"
	"fmt"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/core/tx"
	"stockd/internal/domain"
)

// Service provides business operations for demand forecasts.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new forecast service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Create inserts a forecast, enforcing one per (product, month).
func (s *Service) Create(ctx context.Context, f *DemandForecast) error {
	f.Month = NormalizeMonth(f.Month)
	if err := f.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByProductMonth(ctx, f.ProductID, f.Month)
		if err != nil && !apperror.IsNotFound(err) {
			return fmt.Errorf("check forecast: %w", err)
		}
		if existing != nil {
			return apperror.NewDuplicate("demand_forecast", "product+month",
				fmt.Sprintf("%s@%s", f.ProductID, f.Month.Format("2006-01")))
		}
		return s.repo.Create(ctx, f)
	})
}

// GetByID retrieves a forecast.
func (s *Service) GetByID(ctx context.Context, forecastID id.ID) (*DemandForecast, error) {
	return s.repo.GetByID(ctx, forecastID)
}

// Update modifies a forecast. A month change must not collide with an
// existing (product, month) pair.
func (s *Service) Update(ctx context.Context, f *DemandForecast) error {
	f.Month = NormalizeMonth(f.Month)
	if err := f.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByProductMonth(ctx, f.ProductID, f.Month)
		if err != nil && !apperror.IsNotFound(err) {
			return fmt.Errorf("check forecast: %w", err)
		}
		if existing != nil && existing.ID != f.ID {
			return apperror.NewDuplicate("demand_forecast", "product+month",
				fmt.Sprintf("%s@%s", f.ProductID, f.Month.Format("2006-01")))
		}
		return s.repo.Update(ctx, f)
	})
}

// Delete removes a forecast.
func (s *Service) Delete(ctx context.Context, forecastID id.ID) error {
	return s.repo.Delete(ctx, forecastID)
}

// List retrieves forecasts with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*DemandForecast], error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}
