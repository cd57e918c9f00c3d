package domain

import "time"

// DateLayout is the wire and storage format of Sale.DateSold.
const DateLayout = "2006-01-02"

// UncategorizedLabel stands in for an empty StockItem.Category in reports.
const UncategorizedLabel = "Uncategorized"

// DefaultReorderLevel applies when a stock item is created without one.
const DefaultReorderLevel = 5

type Sale struct {
	ID           string    `json:"id"`
	ItemName     string    `json:"item_name"`
	PurchaseCost float64   `json:"purchase_cost"`
	RetailPrice  float64   `json:"retail_price"`
	Quantity     int       `json:"quantity"`
	Profit       float64   `json:"profit"`
	Revenue      float64   `json:"revenue"`
	ProfitMargin float64   `json:"profit_margin"`
	DateSold     string    `json:"date_sold"`
	CreatedAt    time.Time `json:"created_at"`
}

// SaleMetrics are the fields derived from a sale's cost, price and quantity.
type SaleMetrics struct {
	Profit       float64 `json:"profit"`
	Revenue      float64 `json:"revenue"`
	ProfitMargin float64 `json:"profit_margin"`
}

// Apply copies the derived metrics onto the sale.
func (s *Sale) Apply(m SaleMetrics) {
	s.Profit = m.Profit
	s.Revenue = m.Revenue
	s.ProfitMargin = m.ProfitMargin
}

type SaleCreateRequest struct {
	ItemName     string  `json:"item_name"`
	PurchaseCost float64 `json:"purchase_cost"`
	RetailPrice  float64 `json:"retail_price"`
	Quantity     int     `json:"quantity"`
	DateSold     string  `json:"date_sold"`
}

type SaleUpdateRequest struct {
	ItemName     *string  `json:"item_name,omitempty"`
	PurchaseCost *float64 `json:"purchase_cost,omitempty"`
	RetailPrice  *float64 `json:"retail_price,omitempty"`
	Quantity     *int     `json:"quantity,omitempty"`
	DateSold     *string  `json:"date_sold,omitempty"`
}

type StockItem struct {
	ID              string    `json:"id"`
	ItemName        string    `json:"item_name"`
	PurchaseCost    float64   `json:"purchase_cost"`
	RetailPrice     float64   `json:"retail_price"`
	QuantityInStock int       `json:"quantity_in_stock"`
	ReorderLevel    int       `json:"reorder_level"`
	Supplier        string    `json:"supplier"`
	Category        string    `json:"category"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type StockItemCreateRequest struct {
	ItemName        string  `json:"item_name"`
	PurchaseCost    float64 `json:"purchase_cost"`
	RetailPrice     float64 `json:"retail_price"`
	QuantityInStock int     `json:"quantity_in_stock"`
	ReorderLevel    *int    `json:"reorder_level,omitempty"`
	Supplier        string  `json:"supplier"`
	Category        string  `json:"category"`
}

type StockItemUpdateRequest struct {
	ItemName        *string  `json:"item_name,omitempty"`
	PurchaseCost    *float64 `json:"purchase_cost,omitempty"`
	RetailPrice     *float64 `json:"retail_price,omitempty"`
	QuantityInStock *int     `json:"quantity_in_stock,omitempty"`
	ReorderLevel    *int     `json:"reorder_level,omitempty"`
	Supplier        *string  `json:"supplier,omitempty"`
	Category        *string  `json:"category,omitempty"`
}

type DailySales struct {
	Date         string  `json:"date"`
	Revenue      float64 `json:"revenue"`
	Profit       float64 `json:"profit"`
	Transactions int     `json:"transactions"`
}

type DashboardStats struct {
	TotalRevenue        float64      `json:"total_revenue"`
	TotalProfit         float64      `json:"total_profit"`
	TotalTransactions   int          `json:"total_transactions"`
	AverageProfitMargin float64      `json:"average_profit_margin"`
	BestSellingItem     *string      `json:"best_selling_item"`
	DailySales          []DailySales `json:"daily_sales"`
}

type InventoryStats struct {
	TotalItems      int      `json:"total_items"`
	TotalStockValue float64  `json:"total_stock_value"`
	LowStockItems   int      `json:"low_stock_items"`
	OutOfStockItems int      `json:"out_of_stock_items"`
	Categories      []string `json:"categories"`
}

type SalesChart struct {
	Labels      []string  `json:"labels"`
	RevenueData []float64 `json:"revenue_data"`
	ProfitData  []float64 `json:"profit_data"`
}
