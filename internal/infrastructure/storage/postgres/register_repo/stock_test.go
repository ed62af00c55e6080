package register_repo

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockd/internal/core/id"
	"stockd/internal/domain/registers/stock"
	"stockd/internal/infrastructure/storage/postgres"
)

func buildStockListSQL(t *testing.T, filter stock.ListFilter) (string, []any) {
	t.Helper()

	q := postgres.Builder().
		Select(stockColumns...).
		From(stockTable)
	for _, c := range stockConds(filter) {
		q = q.Where(c)
	}

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	return sql, args
}

func TestStockConds_Empty(t *testing.T) {
	sql, args := buildStockListSQL(t, stock.ListFilter{})

	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestStockConds_ProductAndLocation(t *testing.T) {
	productID := id.New()
	sql, args := buildStockListSQL(t, stock.ListFilter{
		ProductID: &productID,
		Location:  "Main Warehouse",
	})

	assert.Contains(t, sql, "product_id = $1")
	assert.Contains(t, sql, "location = $2")
	assert.Equal(t, []any{productID, "Main Warehouse"}, args)
}

func TestStockConds_ExactQuantity(t *testing.T) {
	qty := int64(42)
	sql, args := buildStockListSQL(t, stock.ListFilter{Quantity: &qty})

	assert.Contains(t, sql, "quantity = $1")
	assert.Equal(t, []any{int64(42)}, args)
}

func TestStockConds_BelowReorder(t *testing.T) {
	sql, args := buildStockListSQL(t, stock.ListFilter{BelowReorder: true})

	assert.Contains(t, sql, "quantity <= reorder_level")
	assert.Empty(t, args)
}

func TestStockForUpdateSQL(t *testing.T) {
	productID := id.New()
	sql, args, err := postgres.Builder().
		Select(stockColumns...).
		From(stockTable).
		Where(squirrel.Eq{"product_id": productID, "location": "Main Warehouse"}).
		Suffix("FOR UPDATE").
		ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FOR UPDATE")
	assert.Len(t, args, 2)
}
