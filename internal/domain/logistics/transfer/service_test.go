package transfer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/domain"
	"stockd/internal/domain/registers/stock"
)

type fakeStockRepo struct {
	rows map[id.ID]stock.Stock
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: make(map[id.ID]stock.Stock)}
}

func (r *fakeStockRepo) add(productID id.ID, location string, qty int64) *stock.Stock {
	st := stock.New(productID, location)
	st.Quantity = qty
	r.rows[st.ID] = *st
	return st
}

func (r *fakeStockRepo) quantity(productID id.ID, location string) int64 {
	for _, st := range r.rows {
		if st.ProductID == productID && st.Location == location {
			return st.Quantity
		}
	}
	return -1
}

func (r *fakeStockRepo) Create(ctx context.Context, st *stock.Stock) error {
	r.rows[st.ID] = *st
	return nil
}

func (r *fakeStockRepo) GetByID(ctx context.Context, stockID id.ID) (*stock.Stock, error) {
	st, ok := r.rows[stockID]
	if !ok {
		return nil, apperror.NewNotFound("stock", stockID)
	}
	return &st, nil
}

func (r *fakeStockRepo) GetByProductLocation(ctx context.Context, productID id.ID, location string) (*stock.Stock, error) {
	for _, st := range r.rows {
		if st.ProductID == productID && st.Location == location {
			row := st
			return &row, nil
		}
	}
	return nil, apperror.NewNotFound("stock", productID.String()+"@"+location)
}

func (r *fakeStockRepo) Update(ctx context.Context, st *stock.Stock) error {
	r.rows[st.ID] = *st
	return nil
}

func (r *fakeStockRepo) Delete(ctx context.Context, stockID id.ID) error {
	delete(r.rows, stockID)
	return nil
}

func (r *fakeStockRepo) List(ctx context.Context, filter stock.ListFilter) (domain.ListResult[*stock.Stock], error) {
	return domain.ListResult[*stock.Stock]{}, nil
}

func (r *fakeStockRepo) GetForUpdate(ctx context.Context, productID id.ID, location string) (*stock.Stock, error) {
	return r.GetByProductLocation(ctx, productID, location)
}

func (r *fakeStockRepo) GetOrCreateForUpdate(ctx context.Context, productID id.ID, location string) (*stock.Stock, error) {
	st, err := r.GetByProductLocation(ctx, productID, location)
	if err == nil {
		return st, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}
	created := stock.New(productID, location)
	r.rows[created.ID] = *created
	return created, nil
}

func (r *fakeStockRepo) AdjustQuantity(ctx context.Context, stockID id.ID, delta int64) error {
	st, ok := r.rows[stockID]
	if !ok {
		return apperror.NewNotFound("stock", stockID)
	}
	st.Quantity += delta
	r.rows[stockID] = st
	return nil
}

type fakeTransferRepo struct {
	transfers map[id.ID]StockTransfer
}

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{transfers: make(map[id.ID]StockTransfer)}
}

func (r *fakeTransferRepo) Create(ctx context.Context, t *StockTransfer) error {
	r.transfers[t.ID] = *t
	return nil
}

func (r *fakeTransferRepo) GetByID(ctx context.Context, transferID id.ID) (*StockTransfer, error) {
	t, ok := r.transfers[transferID]
	if !ok {
		return nil, apperror.NewNotFound("stock_transfer", transferID)
	}
	return &t, nil
}

func (r *fakeTransferRepo) Delete(ctx context.Context, transferID id.ID) error {
	delete(r.transfers, transferID)
	return nil
}

func (r *fakeTransferRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*StockTransfer], error) {
	return domain.ListResult[*StockTransfer]{}, nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestCreate_MovesQuantityBetweenLocations(t *testing.T) {
	stocks := newFakeStockRepo()
	repo := newFakeTransferRepo()
	svc := NewService(repo, stocks, passthroughTx{})

	productID := id.New()
	stocks.add(productID, "Main Warehouse", 30)
	stocks.add(productID, "Outlet", 5)

	tr := New(productID, "Main Warehouse", "Outlet", 10)
	require.NoError(t, svc.Create(t.Context(), tr))

	assert.Equal(t, int64(20), stocks.quantity(productID, "Main Warehouse"))
	assert.Equal(t, int64(15), stocks.quantity(productID, "Outlet"))
	assert.Contains(t, repo.transfers, tr.ID)
}

func TestCreate_CreatesDestinationRow(t *testing.T) {
	stocks := newFakeStockRepo()
	svc := NewService(newFakeTransferRepo(), stocks, passthroughTx{})

	productID := id.New()
	stocks.add(productID, "Main Warehouse", 30)

	tr := New(productID, "Main Warehouse", "Outlet", 10)
	require.NoError(t, svc.Create(t.Context(), tr))

	assert.Equal(t, int64(20), stocks.quantity(productID, "Main Warehouse"))
	assert.Equal(t, int64(10), stocks.quantity(productID, "Outlet"))
}

func TestCreate_InsufficientSource(t *testing.T) {
	stocks := newFakeStockRepo()
	repo := newFakeTransferRepo()
	svc := NewService(repo, stocks, passthroughTx{})

	productID := id.New()
	stocks.add(productID, "Main Warehouse", 3)

	tr := New(productID, "Main Warehouse", "Outlet", 10)
	err := svc.Create(t.Context(), tr)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	assert.Equal(t, int64(3), stocks.quantity(productID, "Main Warehouse"))
	assert.Empty(t, repo.transfers)
}

func TestCreate_RejectsSameLocation(t *testing.T) {
	svc := NewService(newFakeTransferRepo(), newFakeStockRepo(), passthroughTx{})

	tr := New(id.New(), "Main Warehouse", "main warehouse", 10)
	err := svc.Create(t.Context(), tr)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestDelete_ReversesMove(t *testing.T) {
	stocks := newFakeStockRepo()
	repo := newFakeTransferRepo()
	svc := NewService(repo, stocks, passthroughTx{})

	productID := id.New()
	stocks.add(productID, "Main Warehouse", 30)

	tr := New(productID, "Main Warehouse", "Outlet", 10)
	require.NoError(t, svc.Create(t.Context(), tr))
	require.NoError(t, svc.Delete(t.Context(), tr.ID))

	assert.Equal(t, int64(30), stocks.quantity(productID, "Main Warehouse"))
	assert.Equal(t, int64(0), stocks.quantity(productID, "Outlet"))
	assert.Empty(t, repo.transfers)
}

func TestDelete_FailsWhenDestinationDrained(t *testing.T) {
	stocks := newFakeStockRepo()
	repo := newFakeTransferRepo()
	svc := NewService(repo, stocks, passthroughTx{})

	productID := id.New()
	stocks.add(productID, "Main Warehouse", 30)

	tr := New(productID, "Main Warehouse", "Outlet", 10)
	require.NoError(t, svc.Create(t.Context(), tr))

	dst, err := stocks.GetByProductLocation(t.Context(), productID, "Outlet")
	require.NoError(t, err)
	require.NoError(t, stocks.AdjustQuantity(t.Context(), dst.ID, -8))

	err = svc.Delete(t.Context(), tr.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Contains(t, repo.transfers, tr.ID)
}
