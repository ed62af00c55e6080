package invoice

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
	invoices map[id.ID]SalesInvoice
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{invoices: make(map[id.ID]SalesInvoice)}
}

func (r *fakeRepo) Create(ctx context.Context, inv *SalesInvoice) error {
	r.invoices[inv.ID] = *inv
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, invoiceID id.ID) (*SalesInvoice, error) {
	inv, ok := r.invoices[invoiceID]
	if !ok {
		return nil, apperror.NewNotFound("sales_invoice", invoiceID)
	}
	return &inv, nil
}

func (r *fakeRepo) Update(ctx context.Context, inv *SalesInvoice) error {
	r.invoices[inv.ID] = *inv
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, invoiceID id.ID) error {
	delete(r.invoices, invoiceID)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*SalesInvoice], error) {
	return domain.ListResult[*SalesInvoice]{}, nil
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, invoiceID id.ID) (*SalesInvoice, error) {
	return r.GetByID(ctx, invoiceID)
}

func (r *fakeRepo) MarkProcessed(ctx context.Context, invoiceID id.ID) error {
	inv, ok := r.invoices[invoiceID]
	if !ok {
		return apperror.NewNotFound("sales_invoice", invoiceID)
	}
	inv.Processed = true
	r.invoices[invoiceID] = inv
	return nil
}

type fakeFulfiller struct {
	applied bool
	err     error
	calls   int
}

func (f *fakeFulfiller) FulfillInvoice(ctx context.Context, invoiceID id.ID) (bool, error) {
	f.calls++
	return f.applied, f.err
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestCreate_FulfilledInvoiceIsProcessed(t *testing.T) {
	repo := newFakeRepo()
	fulfiller := &fakeFulfiller{applied: true}
	svc := NewService(repo, fulfiller, passthroughTx{})

	inv := New(id.New(), 4, time.Now())
	require.NoError(t, svc.Create(t.Context(), inv))

	assert.Equal(t, 1, fulfiller.calls)
	assert.True(t, inv.Processed)
	assert.Contains(t, repo.invoices, inv.ID)
}

func TestCreate_FulfillmentErrorKeepsInvoice(t *testing.T) {
	repo := newFakeRepo()
	fulfiller := &fakeFulfiller{
		err: apperror.NewInsufficientStock(id.New().String(), "Main Warehouse", 4, 1),
	}
	svc := NewService(repo, fulfiller, passthroughTx{})

	inv := New(id.New(), 4, time.Now())
	err := svc.Create(t.Context(), inv)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	assert.Contains(t, repo.invoices, inv.ID)
	assert.False(t, repo.invoices[inv.ID].Processed)
}

func TestRetry_DelegatesToFulfiller(t *testing.T) {
	repo := newFakeRepo()
	fulfiller := &fakeFulfiller{applied: true}
	svc := NewService(repo, fulfiller, passthroughTx{})

	inv := New(id.New(), 4, time.Now())
	repo.invoices[inv.ID] = *inv

	applied, err := svc.Retry(t.Context(), inv.ID)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, 1, fulfiller.calls)
}

func TestUpdate_RejectsProcessedInvoice(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeFulfiller{}, passthroughTx{})

	inv := New(id.New(), 4, time.Now())
	inv.Processed = true
	repo.invoices[inv.ID] = *inv

	edit := *inv
	edit.InvoiceDate = edit.InvoiceDate.AddDate(0, 0, 1)
	err := svc.Update(t.Context(), &edit)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBusinessRule, appErr.Code)
}

func TestDelete_RejectsProcessedInvoice(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeFulfiller{}, passthroughTx{})

	inv := New(id.New(), 4, time.Now())
	inv.Processed = true
	repo.invoices[inv.ID] = *inv

	require.Error(t, svc.Delete(t.Context(), inv.ID))
	assert.Contains(t, repo.invoices, inv.ID)
}
