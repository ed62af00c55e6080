package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/domain"
)

type fakeRepo struct {
	forecasts map[id.ID]DemandForecast
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{forecasts: make(map[id.ID]DemandForecast)}
}

func (r *fakeRepo) Create(ctx context.Context, f *DemandForecast) error {
	r.forecasts[f.ID] = *f
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, forecastID id.ID) (*DemandForecast, error) {
	f, ok := r.forecasts[forecastID]
	if !ok {
		return nil, apperror.NewNotFound("demand_forecast", forecastID)
	}
	return &f, nil
}

func (r *fakeRepo) GetByProductMonth(ctx context.Context, productID id.ID, month time.Time) (*DemandForecast, error) {
	for _, f := range r.forecasts {
		if f.ProductID == productID && f.Month.Equal(month) {
			row := f
			return &row, nil
		}
	}
	return nil, apperror.NewNotFound("demand_forecast", productID)
}

func (r *fakeRepo) Update(ctx context.Context, f *DemandForecast) error {
	r.forecasts[f.ID] = *f
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, forecastID id.ID) error {
	delete(r.forecasts, forecastID)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*DemandForecast], error) {
	return domain.ListResult[*DemandForecast]{}, nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestNormalizeMonth(t *testing.T) {
	in := time.Date(2026, 3, 17, 15, 4, 5, 0, time.FixedZone("CET", 3600))
	got := NormalizeMonth(in)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestCreate_NormalizesMonth(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, passthroughTx{})

	f := New(id.New(), time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC), 100)
	require.NoError(t, svc.Create(t.Context(), f))

	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), f.Month)
}

func TestCreate_RejectsDuplicateMonth(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, passthroughTx{})

	productID := id.New()
	first := New(productID, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), 100)
	require.NoError(t, svc.Create(t.Context(), first))

	second := New(productID, time.Date(2026, 9, 28, 0, 0, 0, 0, time.UTC), 120)
	err := svc.Create(t.Context(), second)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestUpdate_AllowsSameRowSameMonth(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, passthroughTx{})

	f := New(id.New(), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), 100)
	require.NoError(t, svc.Create(t.Context(), f))

	f.PredictedDemand = 140
	require.NoError(t, svc.Update(t.Context(), f))
	assert.Equal(t, int64(140), repo.forecasts[f.ID].PredictedDemand)
}

func TestUpdate_RejectsCollidingMonth(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, passthroughTx{})

	productID := id.New()
	september := New(productID, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), 100)
	october := New(productID, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), 90)
	require.NoError(t, svc.Create(t.Context(), september))
	require.NoError(t, svc.Create(t.Context(), october))

	october.Month = september.Month
	err := svc.Update(t.Context(), october)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}
