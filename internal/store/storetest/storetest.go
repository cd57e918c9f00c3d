// Package storetest holds the behaviour every store.Repository backend must share.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salestrack/backend/internal/domain"
	"salestrack/backend/internal/store"
)

// Run exercises repo against the repository contract. newRepo must return an
// empty repository on every call.
func Run(t *testing.T, newRepo func(t *testing.T) store.Repository) {
	t.Helper()

	t.Run("SaleRoundTrip", func(t *testing.T) { testSaleRoundTrip(t, newRepo(t)) })
	t.Run("ListSalesNewestFirst", func(t *testing.T) { testListSalesNewestFirst(t, newRepo(t)) })
	t.Run("SaleNotFound", func(t *testing.T) { testSaleNotFound(t, newRepo(t)) })
	t.Run("StockRoundTrip", func(t *testing.T) { testStockRoundTrip(t, newRepo(t)) })
	t.Run("ListStockByName", func(t *testing.T) { testListStockByName(t, newRepo(t)) })
	t.Run("FindStockByNameOldestFirst", func(t *testing.T) { testFindStockByName(t, newRepo(t)) })
	t.Run("SetStockQuantity", func(t *testing.T) { testSetStockQuantity(t, newRepo(t)) })
	t.Run("StockNotFound", func(t *testing.T) { testStockNotFound(t, newRepo(t)) })
}

var base = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// NewSale builds a valid sale created offset after a fixed base time.
func NewSale(name string, offset time.Duration) domain.Sale {
	return domain.Sale{
		ID:           uuid.NewString(),
		ItemName:     name,
		PurchaseCost: 5,
		RetailPrice:  15,
		Quantity:     1,
		Profit:       10,
		Revenue:      15,
		ProfitMargin: 200.0 / 3,
		DateSold:     "2026-03-14",
		CreatedAt:    base.Add(offset),
	}
}

// NewStockItem builds a valid stock item created offset after a fixed base time.
func NewStockItem(name string, qty int, offset time.Duration) domain.StockItem {
	created := base.Add(offset)
	return domain.StockItem{
		ID:              uuid.NewString(),
		ItemName:        name,
		PurchaseCost:    2.5,
		RetailPrice:     6,
		QuantityInStock: qty,
		ReorderLevel:    domain.DefaultReorderLevel,
		Supplier:        "Acme",
		Category:        "General",
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}

func testSaleRoundTrip(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	sale := NewSale("iPhone Case", 0)

	created, err := repo.CreateSale(ctx, sale)
	require.NoError(t, err)
	assertSaleEqual(t, sale, *created)

	got, err := repo.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assertSaleEqual(t, *created, *got)

	got.Quantity = 3
	got.Revenue = 45
	updated, err := repo.UpdateSale(ctx, *got)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)

	got, err = repo.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
	assert.Equal(t, 45.0, got.Revenue)

	require.NoError(t, repo.DeleteSale(ctx, sale.ID))
	_, err = repo.GetSale(ctx, sale.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testListSalesNewestFirst(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	oldest := NewSale("A", 0)
	middle := NewSale("B", time.Minute)
	newest := NewSale("C", 2*time.Minute)
	for _, sale := range []domain.Sale{middle, newest, oldest} {
		_, err := repo.CreateSale(ctx, sale)
		require.NoError(t, err)
	}

	all, err := repo.ListSales(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{newest.ID, middle.ID, oldest.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	limited, err := repo.ListSales(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, newest.ID, limited[0].ID)
}

func testSaleNotFound(t *testing.T, repo store.Repository) {
	ctx := context.Background()

	_, err := repo.GetSale(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = repo.UpdateSale(ctx, NewSale("ghost", 0))
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, repo.DeleteSale(ctx, "missing"), store.ErrNotFound)

	empty, err := repo.ListSales(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testStockRoundTrip(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	item := NewStockItem("Integration Test Item", 5, 0)

	created, err := repo.CreateStockItem(ctx, item)
	require.NoError(t, err)
	assertStockEqual(t, item, *created)

	got, err := repo.GetStockItem(ctx, item.ID)
	require.NoError(t, err)
	assertStockEqual(t, item, *got)

	got.Supplier = "Other Supplier"
	got.Category = ""
	_, err = repo.UpdateStockItem(ctx, *got)
	require.NoError(t, err)

	got, err = repo.GetStockItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Other Supplier", got.Supplier)
	assert.Equal(t, "", got.Category)

	require.NoError(t, repo.DeleteStockItem(ctx, item.ID))
	_, err = repo.GetStockItem(ctx, item.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testListStockByName(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	for i, name := range []string{"Widget", "Anvil", "Magnet"} {
		_, err := repo.CreateStockItem(ctx, NewStockItem(name, 1, time.Duration(i)*time.Second))
		require.NoError(t, err)
	}

	items, err := repo.ListStockItems(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"Anvil", "Magnet", "Widget"}, []string{items[0].ItemName, items[1].ItemName, items[2].ItemName})
}

func testFindStockByName(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	newer := NewStockItem("Cable", 9, time.Hour)
	older := NewStockItem("Cable", 4, 0)
	other := NewStockItem("cable", 1, -time.Hour)
	for _, item := range []domain.StockItem{newer, older, other} {
		_, err := repo.CreateStockItem(ctx, item)
		require.NoError(t, err)
	}

	found, err := repo.FindStockItemByName(ctx, "Cable")
	require.NoError(t, err)
	assert.Equal(t, older.ID, found.ID)

	_, err = repo.FindStockItemByName(ctx, "Cable ")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testSetStockQuantity(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	item := NewStockItem("Battery", 5, 0)
	_, err := repo.CreateStockItem(ctx, item)
	require.NoError(t, err)

	at := base.Add(24 * time.Hour)
	require.NoError(t, repo.SetStockQuantity(ctx, item.ID, 2, at))

	got, err := repo.GetStockItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.QuantityInStock)
	assert.True(t, got.UpdatedAt.Equal(at), "updated_at %s, want %s", got.UpdatedAt, at)
	assert.True(t, got.CreatedAt.Equal(item.CreatedAt))

	require.ErrorIs(t, repo.SetStockQuantity(ctx, item.ID, -1, at), store.ErrInvalidRecord)
	require.ErrorIs(t, repo.SetStockQuantity(ctx, "missing", 1, at), store.ErrNotFound)
}

func testStockNotFound(t *testing.T, repo store.Repository) {
	ctx := context.Background()

	_, err := repo.GetStockItem(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = repo.UpdateStockItem(ctx, NewStockItem("ghost", 1, 0))
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, repo.DeleteStockItem(ctx, "missing"), store.ErrNotFound)

	_, err = repo.FindStockItemByName(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func assertSaleEqual(t *testing.T, want domain.Sale, got domain.Sale) {
	t.Helper()
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at %s, want %s", got.CreatedAt, want.CreatedAt)
	want.CreatedAt = time.Time{}
	got.CreatedAt = time.Time{}
	assert.Equal(t, want, got)
}

func assertStockEqual(t *testing.T, want domain.StockItem, got domain.StockItem) {
	t.Helper()
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at %s, want %s", got.CreatedAt, want.CreatedAt)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "updated_at %s, want %s", got.UpdatedAt, want.UpdatedAt)
	want.CreatedAt, want.UpdatedAt = time.Time{}, time.Time{}
	got.CreatedAt, got.UpdatedAt = time.Time{}, time.Time{}
	assert.Equal(t, want, got)
}
