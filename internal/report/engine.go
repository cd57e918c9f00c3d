// Package report computes summaries over full sets of sales and stock items.
// It performs no I/O; callers load the records and pass them in.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"salestrack/backend/internal/domain"
	"salestrack/backend/internal/pricing"
)

type Engine struct {
	uncategorized string
}

func NewEngine() *Engine {
	return &Engine{uncategorized: domain.UncategorizedLabel}
}

type dayTotals struct {
	revenue      decimal.Decimal
	profit       decimal.Decimal
	transactions int
}

func (e *Engine) Dashboard(sales []domain.Sale) domain.DashboardStats {
	stats := domain.DashboardStats{DailySales: []domain.DailySales{}}
	if len(sales) == 0 {
		return stats
	}

	totalRevenue := decimal.Zero
	totalProfit := decimal.Zero
	marginSum := decimal.Zero
	marginCount := 0
	quantities := make(map[string]int)
	days := make(map[string]*dayTotals)

	for _, sale := range sales {
		revenue := decimal.NewFromFloat(sale.Revenue)
		profit := decimal.NewFromFloat(sale.Profit)
		totalRevenue = totalRevenue.Add(revenue)
		totalProfit = totalProfit.Add(profit)

		if sale.ProfitMargin > 0 {
			marginSum = marginSum.Add(decimal.NewFromFloat(sale.ProfitMargin))
			marginCount++
		}

		quantities[sale.ItemName] += sale.Quantity

		day, ok := days[sale.DateSold]
		if !ok {
			day = &dayTotals{}
			days[sale.DateSold] = day
		}
		day.revenue = day.revenue.Add(revenue)
		day.profit = day.profit.Add(profit)
		day.transactions++
	}

	stats.TotalRevenue = totalRevenue.InexactFloat64()
	stats.TotalProfit = totalProfit.InexactFloat64()
	stats.TotalTransactions = len(sales)
	if marginCount > 0 {
		stats.AverageProfitMargin = marginSum.Div(decimal.NewFromInt(int64(marginCount))).InexactFloat64()
	}

	best := bestSeller(quantities)
	stats.BestSellingItem = &best

	for _, date := range sortedKeys(days) {
		day := days[date]
		stats.DailySales = append(stats.DailySales, domain.DailySales{
			Date:         date,
			Revenue:      day.revenue.InexactFloat64(),
			Profit:       day.profit.InexactFloat64(),
			Transactions: day.transactions,
		})
	}
	return stats
}

func (e *Engine) Inventory(items []domain.StockItem) domain.InventoryStats {
	stats := domain.InventoryStats{Categories: []string{}}

	value := decimal.Zero
	categories := make(map[string]struct{})
	for _, item := range items {
		value = value.Add(pricing.StockValue(item.PurchaseCost, item.QuantityInStock))

		switch {
		case item.QuantityInStock == 0:
			stats.OutOfStockItems++
		case item.QuantityInStock <= item.ReorderLevel:
			stats.LowStockItems++
		}

		category := item.Category
		if category == "" {
			category = e.uncategorized
		}
		categories[category] = struct{}{}
	}

	stats.TotalItems = len(items)
	stats.TotalStockValue = value.InexactFloat64()
	stats.Categories = append(stats.Categories, sortedKeys(categories)...)
	return stats
}

func (e *Engine) SalesChart(sales []domain.Sale) domain.SalesChart {
	chart := domain.SalesChart{
		Labels:      []string{},
		RevenueData: []float64{},
		ProfitData:  []float64{},
	}

	days := make(map[string]*dayTotals)
	for _, sale := range sales {
		day, ok := days[sale.DateSold]
		if !ok {
			day = &dayTotals{}
			days[sale.DateSold] = day
		}
		day.revenue = day.revenue.Add(decimal.NewFromFloat(sale.Revenue))
		day.profit = day.profit.Add(decimal.NewFromFloat(sale.Profit))
	}

	for _, date := range sortedKeys(days) {
		chart.Labels = append(chart.Labels, date)
		chart.RevenueData = append(chart.RevenueData, days[date].revenue.InexactFloat64())
		chart.ProfitData = append(chart.ProfitData, days[date].profit.InexactFloat64())
	}
	return chart
}

// bestSeller returns the name with the highest total quantity; ties go to the
// lexicographically smallest name.
func bestSeller(quantities map[string]int) string {
	best := ""
	bestQty := -1
	for _, name := range sortedKeys(quantities) {
		if quantities[name] > bestQty {
			best = name
			bestQty = quantities[name]
		}
	}
	return best
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
