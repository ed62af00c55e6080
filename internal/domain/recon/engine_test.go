package recon

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/domain"
	"stockd/internal/domain/documents/grn"
	"stockd/internal/domain/documents/invoice"
	"stockd/internal/domain/orders/purchase"
	"stockd/internal/domain/orders/sales"
	"stockd/internal/domain/registers/stock"
)

const testLocation = "Main Warehouse"

// memStore is shared in-memory state for the fake repositories.
type memStore struct {
	stocks    map[id.ID]stock.Stock
	purchases map[id.ID]purchase.PurchaseOrder
	sales     map[id.ID]sales.SalesOrder
	notes     map[id.ID]grn.GoodsReceivedNote
	invoices  map[id.ID]invoice.SalesInvoice
}

func newMemStore() *memStore {
	return &memStore{
		stocks:    make(map[id.ID]stock.Stock),
		purchases: make(map[id.ID]purchase.PurchaseOrder),
		sales:     make(map[id.ID]sales.SalesOrder),
		notes:     make(map[id.ID]grn.GoodsReceivedNote),
		invoices:  make(map[id.ID]invoice.SalesInvoice),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	for k, v := range s.purchases {
		c.purchases[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.notes {
		c.notes[k] = v
	}
	for k, v := range s.invoices {
		c.invoices[k] = v
	}
	return c
}

// memTxManager serializes transactions with a mutex and rolls the
// store back to a snapshot when the function fails, mimicking the
// atomicity the engine relies on.
type memTxManager struct {
	mu    sync.Mutex
	store *memStore
}

func (m *memTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.store.clone()
	if err := fn(ctx); err != nil {
		*m.store = *snap
		return err
	}
	return nil
}

type memStockRepo struct{ store *memStore }

func (r *memStockRepo) Create(ctx context.Context, st *stock.Stock) error {
	r.store.stocks[st.ID] = *st
	return nil
}

func (r *memStockRepo) GetByID(ctx context.Context, stockID id.ID) (*stock.Stock, error) {
	st, ok := r.store.stocks[stockID]
	if !ok {
		return nil, apperror.NewNotFound("stock", stockID.String())
	}
	return &st, nil
}

func (r *memStockRepo) GetByProductLocation(ctx context.Context, productID id.ID, location string) (*stock.Stock, error) {
	for _, st := range r.store.stocks {
		if st.ProductID == productID && st.Location == location {
			row := st
			return &row, nil
		}
	}
	return nil, apperror.NewNotFound("stock", productID.String()+"@"+location)
}

func (r *memStockRepo) Update(ctx context.Context, st *stock.Stock) error {
	r.store.stocks[st.ID] = *st
	return nil
}

func (r *memStockRepo) Delete(ctx context.Context, stockID id.ID) error {
	delete(r.store.stocks, stockID)
	return nil
}

func (r *memStockRepo) List(ctx context.Context, filter stock.ListFilter) (domain.ListResult[*stock.Stock], error) {
	return domain.ListResult[*stock.Stock]{}, nil
}

func (r *memStockRepo) GetForUpdate(ctx context.Context, productID id.ID, location string) (*stock.Stock, error) {
	return r.GetByProductLocation(ctx, productID, location)
}

func (r *memStockRepo) GetOrCreateForUpdate(ctx context.Context, productID id.ID, location string) (*stock.Stock, error) {
	st, err := r.GetByProductLocation(ctx, productID, location)
	if err == nil {
		return st, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}
	created := stock.New(productID, location)
	r.store.stocks[created.ID] = *created
	return created, nil
}

func (r *memStockRepo) AdjustQuantity(ctx context.Context, stockID id.ID, delta int64) error {
	st, ok := r.store.stocks[stockID]
	if !ok {
		return apperror.NewNotFound("stock", stockID.String())
	}
	st.Quantity += delta
	r.store.stocks[stockID] = st
	return nil
}

type memPurchaseRepo struct{ store *memStore }

func (r *memPurchaseRepo) Create(ctx context.Context, po *purchase.PurchaseOrder) error {
	r.store.purchases[po.ID] = *po
	return nil
}

func (r *memPurchaseRepo) GetByID(ctx context.Context, orderID id.ID) (*purchase.PurchaseOrder, error) {
	po, ok := r.store.purchases[orderID]
	if !ok {
		return nil, apperror.NewNotFound("purchase_order", orderID.String())
	}
	return &po, nil
}

func (r *memPurchaseRepo) Update(ctx context.Context, po *purchase.PurchaseOrder) error {
	r.store.purchases[po.ID] = *po
	return nil
}

func (r *memPurchaseRepo) Delete(ctx context.Context, orderID id.ID) error {
	delete(r.store.purchases, orderID)
	return nil
}

func (r *memPurchaseRepo) List(ctx context.Context, filter purchase.ListFilter) (domain.ListResult[*purchase.PurchaseOrder], error) {
	return domain.ListResult[*purchase.PurchaseOrder]{}, nil
}

func (r *memPurchaseRepo) GetForUpdate(ctx context.Context, orderID id.ID) (*purchase.PurchaseOrder, error) {
	return r.GetByID(ctx, orderID)
}

func (r *memPurchaseRepo) SetStatus(ctx context.Context, orderID id.ID, status purchase.Status) error {
	po, ok := r.store.purchases[orderID]
	if !ok {
		return apperror.NewNotFound("purchase_order", orderID.String())
	}
	po.Status = status
	r.store.purchases[orderID] = po
	return nil
}

type memSalesRepo struct{ store *memStore }

func (r *memSalesRepo) Create(ctx context.Context, so *sales.SalesOrder) error {
	r.store.sales[so.ID] = *so
	return nil
}

func (r *memSalesRepo) GetByID(ctx context.Context, orderID id.ID) (*sales.SalesOrder, error) {
	so, ok := r.store.sales[orderID]
	if !ok {
		return nil, apperror.NewNotFound("sales_order", orderID.String())
	}
	return &so, nil
}

func (r *memSalesRepo) Update(ctx context.Context, so *sales.SalesOrder) error {
	r.store.sales[so.ID] = *so
	return nil
}

func (r *memSalesRepo) Delete(ctx context.Context, orderID id.ID) error {
	delete(r.store.sales, orderID)
	return nil
}

func (r *memSalesRepo) List(ctx context.Context, filter sales.ListFilter) (domain.ListResult[*sales.SalesOrder], error) {
	return domain.ListResult[*sales.SalesOrder]{}, nil
}

func (r *memSalesRepo) GetForUpdate(ctx context.Context, orderID id.ID) (*sales.SalesOrder, error) {
	return r.GetByID(ctx, orderID)
}

func (r *memSalesRepo) SetStatus(ctx context.Context, orderID id.ID, status sales.Status) error {
	so, ok := r.store.sales[orderID]
	if !ok {
		return apperror.NewNotFound("sales_order", orderID.String())
	}
	so.Status = status
	r.store.sales[orderID] = so
	return nil
}

type memNoteRepo struct{ store *memStore }

func (r *memNoteRepo) Create(ctx context.Context, n *grn.GoodsReceivedNote) error {
	r.store.notes[n.ID] = *n
	return nil
}

func (r *memNoteRepo) GetByID(ctx context.Context, noteID id.ID) (*grn.GoodsReceivedNote, error) {
	n, ok := r.store.notes[noteID]
	if !ok {
		return nil, apperror.NewNotFound("goods_received_note", noteID.String())
	}
	return &n, nil
}

func (r *memNoteRepo) Update(ctx context.Context, n *grn.GoodsReceivedNote) error {
	r.store.notes[n.ID] = *n
	return nil
}

func (r *memNoteRepo) Delete(ctx context.Context, noteID id.ID) error {
	delete(r.store.notes, noteID)
	return nil
}

func (r *memNoteRepo) List(ctx context.Context, filter grn.ListFilter) (domain.ListResult[*grn.GoodsReceivedNote], error) {
	return domain.ListResult[*grn.GoodsReceivedNote]{}, nil
}

func (r *memNoteRepo) GetForUpdate(ctx context.Context, noteID id.ID) (*grn.GoodsReceivedNote, error) {
	return r.GetByID(ctx, noteID)
}

func (r *memNoteRepo) MarkProcessed(ctx context.Context, noteID id.ID) error {
	n, ok := r.store.notes[noteID]
	if !ok {
		return apperror.NewNotFound("goods_received_note", noteID.String())
	}
	n.Processed = true
	r.store.notes[noteID] = n
	return nil
}

type memInvoiceRepo struct{ store *memStore }

func (r *memInvoiceRepo) Create(ctx context.Context, inv *invoice.SalesInvoice) error {
	r.store.invoices[inv.ID] = *inv
	return nil
}

func (r *memInvoiceRepo) GetByID(ctx context.Context, invoiceID id.ID) (*invoice.SalesInvoice, error) {
	inv, ok := r.store.invoices[invoiceID]
	if !ok {
		return nil, apperror.NewNotFound("sales_invoice", invoiceID.String())
	}
	return &inv, nil
}

func (r *memInvoiceRepo) Update(ctx context.Context, inv *invoice.SalesInvoice) error {
	r.store.invoices[inv.ID] = *inv
	return nil
}

func (r *memInvoiceRepo) Delete(ctx context.Context, invoiceID id.ID) error {
	delete(r.store.invoices, invoiceID)
	return nil
}

func (r *memInvoiceRepo) List(ctx context.Context, filter invoice.ListFilter) (domain.ListResult[*invoice.SalesInvoice], error) {
	return domain.ListResult[*invoice.SalesInvoice]{}, nil
}

func (r *memInvoiceRepo) GetForUpdate(ctx context.Context, invoiceID id.ID) (*invoice.SalesInvoice, error) {
	return r.GetByID(ctx, invoiceID)
}

func (r *memInvoiceRepo) MarkProcessed(ctx context.Context, invoiceID id.ID) error {
	inv, ok := r.store.invoices[invoiceID]
	if !ok {
		return apperror.NewNotFound("sales_invoice", invoiceID.String())
	}
	inv.Processed = true
	r.store.invoices[invoiceID] = inv
	return nil
}

type engineEnv struct {
	store     *memStore
	stocks    *memStockRepo
	purchases *memPurchaseRepo
	sales     *memSalesRepo
	notes     *memNoteRepo
	invoices  *memInvoiceRepo
	engine    *Engine
}

func newEngineEnv(t *testing.T) *engineEnv {
	t.Helper()

	store := newMemStore()
	env := &engineEnv{
		store:     store,
		stocks:    &memStockRepo{store: store},
		purchases: &memPurchaseRepo{store: store},
		sales:     &memSalesRepo{store: store},
		notes:     &memNoteRepo{store: store},
		invoices:  &memInvoiceRepo{store: store},
	}
	env.engine = NewEngine(
		&memTxManager{store: store},
		env.stocks, env.purchases, env.sales, env.notes, env.invoices,
		testLocation,
	)
	return env
}

func (e *engineEnv) addPurchaseOrder(qty int64) *purchase.PurchaseOrder {
	po := purchase.New(id.New(), qty, "ACME Supplies", time.Now().AddDate(0, 0, 7))
	e.store.purchases[po.ID] = *po
	return po
}

func (e *engineEnv) addNote(poID id.ID, qty int64, matched bool) *grn.GoodsReceivedNote {
	n := grn.New(poID, qty, time.Now())
	n.Matched = matched
	e.store.notes[n.ID] = *n
	return n
}

func (e *engineEnv) addSalesOrder(productID id.ID, qty int64) *sales.SalesOrder {
	so := sales.New(productID, qty, "Globex Corp", time.Now())
	e.store.sales[so.ID] = *so
	return so
}

func (e *engineEnv) addInvoice(soID id.ID, qty int64) *invoice.SalesInvoice {
	inv := invoice.New(soID, qty, time.Now())
	e.store.invoices[inv.ID] = *inv
	return inv
}

func (e *engineEnv) addStock(productID id.ID, qty int64) *stock.Stock {
	st := stock.New(productID, testLocation)
	st.Quantity = qty
	e.store.stocks[st.ID] = *st
	return st
}

func (e *engineEnv) stockQuantity(t *testing.T, productID id.ID) int64 {
	t.Helper()
	for _, st := range e.store.stocks {
		if st.ProductID == productID && st.Location == testLocation {
			return st.Quantity
		}
	}
	return 0
}

func TestMatchReceipt_CreatesStockRow(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	po := env.addPurchaseOrder(20)
	note := env.addNote(po.ID, 20, true)

	applied, err := env.engine.MatchReceipt(ctx, note.ID)
	require.NoError(t, err)
	assert.True(t, applied)

	assert.Equal(t, int64(20), env.stockQuantity(t, po.ProductID))
	assert.Equal(t, purchase.StatusReceived, env.store.purchases[po.ID].Status)
	assert.True(t, env.store.notes[note.ID].Processed)
}

func TestMatchReceipt_AddsToExistingRow(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	po := env.addPurchaseOrder(15)
	env.addStock(po.ProductID, 5)
	note := env.addNote(po.ID, 15, true)

	applied, err := env.engine.MatchReceipt(ctx, note.ID)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, int64(20), env.stockQuantity(t, po.ProductID))
}

func TestMatchReceipt_Idempotent(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	po := env.addPurchaseOrder(20)
	note := env.addNote(po.ID, 20, true)

	applied, err := env.engine.MatchReceipt(ctx, note.ID)
	require.NoError(t, err)
	require.True(t, applied)

	applied, err = env.engine.MatchReceipt(ctx, note.ID)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, int64(20), env.stockQuantity(t, po.ProductID))
}

func TestMatchReceipt_SkipsUnmatchedNote(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	po := env.addPurchaseOrder(20)
	note := env.addNote(po.ID, 20, false)

	applied, err := env.engine.MatchReceipt(ctx, note.ID)
	require.NoError(t, err)
	assert.False(t, applied)

	assert.Equal(t, int64(0), env.stockQuantity(t, po.ProductID))
	assert.Equal(t, purchase.StatusPending, env.store.purchases[po.ID].Status)
	assert.False(t, env.store.notes[note.ID].Processed)
}

func TestMatchReceipt_SkipsReceivedOrder(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	po := env.addPurchaseOrder(20)
	po.Status = purchase.StatusReceived
	env.store.purchases[po.ID] = *po
	note := env.addNote(po.ID, 20, true)

	applied, err := env.engine.MatchReceipt(ctx, note.ID)
	require.NoError(t, err)
	assert.False(t, applied)

	assert.Equal(t, int64(0), env.stockQuantity(t, po.ProductID))
	assert.False(t, env.store.notes[note.ID].Processed)
}

func TestMatchReceipt_UnknownNote(t *testing.T) {
	env := newEngineEnv(t)

	_, err := env.engine.MatchReceipt(context.Background(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestFulfillInvoice_DeductsStock(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	productID := id.New()
	env.addStock(productID, 10)
	so := env.addSalesOrder(productID, 4)
	inv := env.addInvoice(so.ID, so.Quantity)

	applied, err := env.engine.FulfillInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, applied)

	assert.Equal(t, int64(6), env.stockQuantity(t, productID))
	assert.Equal(t, sales.StatusInvoiced, env.store.sales[so.ID].Status)
	assert.True(t, env.store.invoices[inv.ID].Processed)
}

func TestFulfillInvoice_InsufficientStock(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	productID := id.New()
	env.addStock(productID, 3)
	so := env.addSalesOrder(productID, 4)
	inv := env.addInvoice(so.ID, so.Quantity)

	applied, err := env.engine.FulfillInvoice(ctx, inv.ID)
	require.Error(t, err)
	assert.False(t, applied)
	assert.True(t, apperror.IsInsufficientStock(err))

	assert.Equal(t, int64(3), env.stockQuantity(t, productID))
	assert.Equal(t, sales.StatusPending, env.store.sales[so.ID].Status)
	assert.False(t, env.store.invoices[inv.ID].Processed)
}

func TestFulfillInvoice_MissingStockRow(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	so := env.addSalesOrder(id.New(), 4)
	inv := env.addInvoice(so.ID, so.Quantity)

	applied, err := env.engine.FulfillInvoice(ctx, inv.ID)
	require.Error(t, err)
	assert.False(t, applied)
	assert.True(t, apperror.IsNotFound(err))

	assert.Equal(t, sales.StatusPending, env.store.sales[so.ID].Status)
	assert.False(t, env.store.invoices[inv.ID].Processed)
}

func TestFulfillInvoice_Idempotent(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	productID := id.New()
	env.addStock(productID, 10)
	so := env.addSalesOrder(productID, 4)
	inv := env.addInvoice(so.ID, so.Quantity)

	applied, err := env.engine.FulfillInvoice(ctx, inv.ID)
	require.NoError(t, err)
	require.True(t, applied)

	applied, err = env.engine.FulfillInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, int64(6), env.stockQuantity(t, productID))
}

func TestFulfillInvoice_RetryAfterRestock(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	productID := id.New()
	st := env.addStock(productID, 2)
	so := env.addSalesOrder(productID, 4)
	inv := env.addInvoice(so.ID, so.Quantity)

	_, err := env.engine.FulfillInvoice(ctx, inv.ID)
	require.Error(t, err)

	row := env.store.stocks[st.ID]
	row.Quantity = 10
	env.store.stocks[st.ID] = row

	applied, err := env.engine.FulfillInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, int64(6), env.stockQuantity(t, productID))
}

func TestReceiptThenFulfillment(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	po := env.addPurchaseOrder(20)
	note := env.addNote(po.ID, 20, true)

	applied, err := env.engine.MatchReceipt(ctx, note.ID)
	require.NoError(t, err)
	require.True(t, applied)

	so := env.addSalesOrder(po.ProductID, 4)
	inv := env.addInvoice(so.ID, so.Quantity)

	applied, err = env.engine.FulfillInvoice(ctx, inv.ID)
	require.NoError(t, err)
	require.True(t, applied)
	assert.Equal(t, int64(16), env.stockQuantity(t, po.ProductID))
}

func TestConcurrentFulfillments_NoLostUpdate(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	productID := id.New()
	env.addStock(productID, 10)

	soA := env.addSalesOrder(productID, 4)
	soB := env.addSalesOrder(productID, 5)
	invA := env.addInvoice(soA.ID, soA.Quantity)
	invB := env.addInvoice(soB.ID, soB.Quantity)

	var wg sync.WaitGroup
	for _, invID := range []id.ID{invA.ID, invB.ID} {
		wg.Add(1)
		go func(invoiceID id.ID) {
			defer wg.Done()
			_, err := env.engine.FulfillInvoice(ctx, invoiceID)
			assert.NoError(t, err)
		}(invID)
	}
	wg.Wait()

	assert.Equal(t, int64(1), env.stockQuantity(t, productID))
	assert.Equal(t, sales.StatusInvoiced, env.store.sales[soA.ID].Status)
	assert.Equal(t, sales.StatusInvoiced, env.store.sales[soB.ID].Status)
}

func TestConcurrentReceipts_SameProduct(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	productID := id.New()
	poA := purchase.New(productID, 10, "ACME Supplies", time.Now().AddDate(0, 0, 7))
	poB := purchase.New(productID, 15, "ACME Supplies", time.Now().AddDate(0, 0, 7))
	env.store.purchases[poA.ID] = *poA
	env.store.purchases[poB.ID] = *poB

	noteA := env.addNote(poA.ID, 10, true)
	noteB := env.addNote(poB.ID, 15, true)

	var wg sync.WaitGroup
	for _, noteID := range []id.ID{noteA.ID, noteB.ID} {
		wg.Add(1)
		go func(nID id.ID) {
			defer wg.Done()
			_, err := env.engine.MatchReceipt(ctx, nID)
			assert.NoError(t, err)
		}(noteID)
	}
	wg.Wait()

	assert.Equal(t, int64(25), env.stockQuantity(t, productID))
}
