package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salestrack/backend/internal/domain"
	"salestrack/backend/internal/pricing"
)

func sale(name string, cost, price float64, qty int, date string) domain.Sale {
	s := domain.Sale{ItemName: name, PurchaseCost: cost, RetailPrice: price, Quantity: qty, DateSold: date}
	s.Apply(pricing.Calculate(cost, price, qty))
	return s
}

func TestDashboardEmpty(t *testing.T) {
	stats := NewEngine().Dashboard(nil)

	assert.Zero(t, stats.TotalRevenue)
	assert.Zero(t, stats.TotalProfit)
	assert.Zero(t, stats.TotalTransactions)
	assert.Zero(t, stats.AverageProfitMargin)
	assert.Nil(t, stats.BestSellingItem)
	require.NotNil(t, stats.DailySales)
	assert.Empty(t, stats.DailySales)
}

func TestDashboardTotalsAndDailySales(t *testing.T) {
	sales := []domain.Sale{
		sale("iPhone Case", 5, 15, 2, "2026-03-15"),
		sale("USB-C Cable", 2.5, 10, 1, "2026-03-14"),
		sale("iPhone Case", 5, 15, 1, "2026-03-14"),
	}

	stats := NewEngine().Dashboard(sales)

	assert.Equal(t, 3, stats.TotalTransactions)
	assert.InDelta(t, 55.0, stats.TotalRevenue, 1e-9)
	assert.InDelta(t, 37.5, stats.TotalProfit, 1e-9)
	require.NotNil(t, stats.BestSellingItem)
	assert.Equal(t, "iPhone Case", *stats.BestSellingItem)

	require.Len(t, stats.DailySales, 2)
	assert.Equal(t, domain.DailySales{Date: "2026-03-14", Revenue: 25, Profit: 17.5, Transactions: 2}, stats.DailySales[0])
	assert.Equal(t, domain.DailySales{Date: "2026-03-15", Revenue: 30, Profit: 20, Transactions: 1}, stats.DailySales[1])
}

func TestDashboardAverageMarginSkipsNonPositive(t *testing.T) {
	sales := []domain.Sale{
		sale("Gift", 0, 0, 1, "2026-03-14"),
		sale("Break Even", 10, 10, 1, "2026-03-14"),
		sale("Loss", 12, 10, 1, "2026-03-14"),
		sale("Half", 5, 10, 1, "2026-03-14"),
		sale("Quarter", 7.5, 10, 1, "2026-03-14"),
	}

	stats := NewEngine().Dashboard(sales)

	assert.InDelta(t, 37.5, stats.AverageProfitMargin, 1e-9)
}

func TestDashboardAverageMarginZeroWhenNoPositiveMargins(t *testing.T) {
	stats := NewEngine().Dashboard([]domain.Sale{sale("Break Even", 10, 10, 3, "2026-03-14")})

	assert.Zero(t, stats.AverageProfitMargin)
	require.NotNil(t, stats.BestSellingItem)
	assert.Equal(t, "Break Even", *stats.BestSellingItem)
}

func TestDashboardBestSellerTieGoesToSmallestName(t *testing.T) {
	sales := []domain.Sale{
		sale("Zebra Mug", 1, 2, 3, "2026-03-14"),
		sale("Alpha Mug", 1, 2, 2, "2026-03-14"),
		sale("Alpha Mug", 1, 2, 1, "2026-03-15"),
	}

	for i := 0; i < 20; i++ {
		stats := NewEngine().Dashboard(sales)
		require.NotNil(t, stats.BestSellingItem)
		assert.Equal(t, "Alpha Mug", *stats.BestSellingItem)
	}
}

func TestDashboardSumsWithoutFloatDrift(t *testing.T) {
	sales := make([]domain.Sale, 0, 10)
	for i := 0; i < 10; i++ {
		sales = append(sales, domain.Sale{ItemName: "Candy", Quantity: 1, Revenue: 0.1, Profit: 0.1, DateSold: "2026-03-14"})
	}

	stats := NewEngine().Dashboard(sales)

	assert.Equal(t, 1.0, stats.TotalRevenue)
	assert.Equal(t, 1.0, stats.DailySales[0].Profit)
}

func TestInventoryEmpty(t *testing.T) {
	stats := NewEngine().Inventory(nil)

	assert.Equal(t, domain.InventoryStats{Categories: []string{}}, stats)
}

func TestInventoryCounts(t *testing.T) {
	items := []domain.StockItem{
		{ItemName: "Widget", PurchaseCost: 2.5, QuantityInStock: 10, ReorderLevel: 5, Category: "Tools"},
		{ItemName: "Bolt", PurchaseCost: 0.1, QuantityInStock: 3, ReorderLevel: 5, Category: "Hardware"},
		{ItemName: "Nut", PurchaseCost: 0.2, QuantityInStock: 5, ReorderLevel: 5, Category: "Hardware"},
		{ItemName: "Glue", PurchaseCost: 4, QuantityInStock: 0, ReorderLevel: 5},
	}

	stats := NewEngine().Inventory(items)

	assert.Equal(t, 4, stats.TotalItems)
	assert.Equal(t, 26.3, stats.TotalStockValue)
	assert.Equal(t, 2, stats.LowStockItems)
	assert.Equal(t, 1, stats.OutOfStockItems)
	assert.Equal(t, []string{"Hardware", "Tools", domain.UncategorizedLabel}, stats.Categories)
}

func TestSalesChartEmpty(t *testing.T) {
	chart := NewEngine().SalesChart(nil)

	assert.Equal(t, domain.SalesChart{Labels: []string{}, RevenueData: []float64{}, ProfitData: []float64{}}, chart)
}

func TestSalesChartParallelSeries(t *testing.T) {
	sales := []domain.Sale{
		sale("A", 5, 15, 1, "2026-03-16"),
		sale("B", 5, 10, 5, "2026-03-14"),
		sale("C", 1, 2, 2, "2026-03-16"),
	}

	chart := NewEngine().SalesChart(sales)

	assert.Equal(t, []string{"2026-03-14", "2026-03-16"}, chart.Labels)
	assert.Equal(t, []float64{50, 19}, chart.RevenueData)
	assert.Equal(t, []float64{25, 12}, chart.ProfitData)
}
