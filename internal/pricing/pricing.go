// Package pricing derives the financial fields of a sale.
package pricing

import (
	"github.com/shopspring/decimal"

	"salestrack/backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Calculate returns profit, revenue and profit margin (percent) for a sale of
// quantity units bought at purchaseCost and sold at retailPrice. A zero retail
// price yields a zero margin.
func Calculate(purchaseCost float64, retailPrice float64, quantity int) domain.SaleMetrics {
	cost := decimal.NewFromFloat(purchaseCost)
	price := decimal.NewFromFloat(retailPrice)
	qty := decimal.NewFromInt(int64(quantity))

	unitProfit := price.Sub(cost)
	metrics := domain.SaleMetrics{
		Profit:  unitProfit.Mul(qty).InexactFloat64(),
		Revenue: price.Mul(qty).InexactFloat64(),
	}
	if price.IsPositive() {
		metrics.ProfitMargin = unitProfit.Div(price).Mul(hundred).InexactFloat64()
	}
	return metrics
}

// StockValue is the cost basis of quantity units held at purchaseCost.
func StockValue(purchaseCost float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(purchaseCost).Mul(decimal.NewFromInt(int64(quantity)))
}
