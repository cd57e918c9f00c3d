package store

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"salestrack/backend/internal/domain"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidRecord = errors.New("invalid record")
)

// SaleRepository persists sale records. ListSales returns records ordered by
// CreatedAt descending; a limit below 1 returns every record.
type SaleRepository interface {
	CreateSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error)
	GetSale(ctx context.Context, id string) (*domain.Sale, error)
	ListSales(ctx context.Context, limit int) ([]domain.Sale, error)
	UpdateSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error)
	DeleteSale(ctx context.Context, id string) error
}

// InventoryRepository persists stock items. ListStockItems orders by item name.
// FindStockItemByName matches the name exactly and, when several items share
// it, returns the oldest one (CreatedAt, then ID).
type InventoryRepository interface {
	CreateStockItem(ctx context.Context, item domain.StockItem) (*domain.StockItem, error)
	GetStockItem(ctx context.Context, id string) (*domain.StockItem, error)
	FindStockItemByName(ctx context.Context, name string) (*domain.StockItem, error)
	ListStockItems(ctx context.Context, limit int) ([]domain.StockItem, error)
	UpdateStockItem(ctx context.Context, item domain.StockItem) (*domain.StockItem, error)
	SetStockQuantity(ctx context.Context, id string, qty int, at time.Time) error
	DeleteStockItem(ctx context.Context, id string) error
}

type Repository interface {
	SaleRepository
	InventoryRepository
	Ping(ctx context.Context) error
}

// ValidateSale guards the fields every backend relies on.
func ValidateSale(sale domain.Sale) error {
	if sale.ID == "" || sale.Quantity < 1 || sale.DateSold == "" {
		return ErrInvalidRecord
	}
	return nil
}

func ValidateStockItem(item domain.StockItem) error {
	if item.ID == "" || item.QuantityInStock < 0 || item.ReorderLevel < 0 {
		return ErrInvalidRecord
	}
	return nil
}

// FirstByAge reports whether a precedes b under the duplicate-name rule.
func FirstByAge(a domain.StockItem, b domain.StockItem) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID < b.ID
	}
	return a.CreatedAt.Before(b.CreatedAt)
}
