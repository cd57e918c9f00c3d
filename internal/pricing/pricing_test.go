package pricing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateKnownValues(t *testing.T) {
	tests := []struct {
		name    string
		cost    float64
		price   float64
		qty     int
		profit  float64
		revenue float64
		margin  float64
	}{
		{name: "phone case", cost: 5, price: 15, qty: 1, profit: 10, revenue: 15, margin: 66.6667},
		{name: "break even", cost: 10, price: 10, qty: 1, profit: 0, revenue: 10, margin: 0},
		{name: "multiple units", cost: 5, price: 10, qty: 5, profit: 25, revenue: 50, margin: 50},
		{name: "loss", cost: 12, price: 8, qty: 2, profit: -8, revenue: 16, margin: -50},
		{name: "free item", cost: 3, price: 0, qty: 4, profit: -12, revenue: 0, margin: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Calculate(tt.cost, tt.price, tt.qty)
			assert.Equal(t, tt.profit, m.Profit)
			assert.Equal(t, tt.revenue, m.Revenue)
			assert.InDelta(t, tt.margin, m.ProfitMargin, 0.001)
		})
	}
}

func TestCalculateAvoidsBinaryRounding(t *testing.T) {
	m := Calculate(0.1, 0.1, 3)
	assert.Equal(t, 0.3, m.Revenue)
	assert.Equal(t, 0.0, m.Profit)
}

func TestCalculateFormulasHoldForRandomInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		cost := float64(rng.Intn(100000)) / 100
		price := float64(rng.Intn(100000)) / 100
		qty := rng.Intn(50) + 1

		m := Calculate(cost, price, qty)

		require.InDelta(t, price*float64(qty), m.Revenue, 1e-6)
		require.InDelta(t, (price-cost)*float64(qty), m.Profit, 1e-6)
		if price == 0 {
			require.Zero(t, m.ProfitMargin)
			continue
		}
		require.InDelta(t, (price-cost)/price*100, m.ProfitMargin, 1e-6)
	}
}

func TestStockValue(t *testing.T) {
	assert.Equal(t, "37.5", StockValue(2.5, 15).String())
	assert.True(t, StockValue(9.99, 0).IsZero())
}
