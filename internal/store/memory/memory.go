package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"salestrack/backend/internal/domain"
	"salestrack/backend/internal/store"
)

type Store struct {
	mu        sync.RWMutex
	sales     map[string]domain.Sale
	inventory map[string]domain.StockItem
}

func New() *Store {
	return &Store{
		sales:     make(map[string]domain.Sale),
		inventory: make(map[string]domain.StockItem),
	}
}

// NewSeeded returns a store holding a few demo stock items.
func NewSeeded() *Store {
	s := New()
	now := time.Now().UTC()
	items := []domain.StockItem{
		{ItemName: "iPhone Case", PurchaseCost: 5, RetailPrice: 15, QuantityInStock: 40, ReorderLevel: 10, Supplier: "CaseCo", Category: "Accessories"},
		{ItemName: "USB-C Cable", PurchaseCost: 2.5, RetailPrice: 9.99, QuantityInStock: 60, ReorderLevel: 15, Supplier: "CableWorks", Category: "Accessories"},
		{ItemName: "Screen Protector", PurchaseCost: 1.2, RetailPrice: 7.5, QuantityInStock: 4, ReorderLevel: 5, Supplier: "CaseCo", Category: "Accessories"},
		{ItemName: "Wireless Earbuds", PurchaseCost: 18, RetailPrice: 49, QuantityInStock: 12, ReorderLevel: 5, Supplier: "SoundHub", Category: "Audio"},
		{ItemName: "Power Bank 10000mAh", PurchaseCost: 11, RetailPrice: 29.9, QuantityInStock: 0, ReorderLevel: 3, Supplier: "VoltMart", Category: "Power"},
	}
	for i, item := range items {
		item.ID = uuid.NewString()
		item.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		item.UpdatedAt = item.CreatedAt
		s.inventory[item.ID] = item
	}
	return s
}

func (s *Store) Ping(_ context.Context) error {
	return nil
}

func (s *Store) CreateSale(_ context.Context, sale domain.Sale) (*domain.Sale, error) {
	if err := store.ValidateSale(sale); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sales[sale.ID]; exists {
		return nil, store.ErrInvalidRecord
	}
	s.sales[sale.ID] = sale
	created := sale
	return &created, nil
}

func (s *Store) GetSale(_ context.Context, id string) (*domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sale, exists := s.sales[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copySale := sale
	return &copySale, nil
}

func (s *Store) ListSales(_ context.Context, limit int) ([]domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sales := make([]domain.Sale, 0, len(s.sales))
	for _, sale := range s.sales {
		sales = append(sales, sale)
	}

	slices.SortFunc(sales, func(a, b domain.Sale) int {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return cmpString(b.ID, a.ID)
		}
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	})
	if limit > 0 && len(sales) > limit {
		sales = sales[:limit]
	}
	return sales, nil
}

func (s *Store) UpdateSale(_ context.Context, sale domain.Sale) (*domain.Sale, error) {
	if err := store.ValidateSale(sale); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sales[sale.ID]; !exists {
		return nil, store.ErrNotFound
	}
	s.sales[sale.ID] = sale
	updated := sale
	return &updated, nil
}

func (s *Store) DeleteSale(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sales[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.sales, id)
	return nil
}

func (s *Store) CreateStockItem(_ context.Context, item domain.StockItem) (*domain.StockItem, error) {
	if err := store.ValidateStockItem(item); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.inventory[item.ID]; exists {
		return nil, store.ErrInvalidRecord
	}
	s.inventory[item.ID] = item
	created := item
	return &created, nil
}

func (s *Store) GetStockItem(_ context.Context, id string) (*domain.StockItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.inventory[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyItem := item
	return &copyItem, nil
}

func (s *Store) FindStockItemByName(_ context.Context, name string) (*domain.StockItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *domain.StockItem
	for _, item := range s.inventory {
		if item.ItemName != name {
			continue
		}
		if found == nil || store.FirstByAge(item, *found) {
			candidate := item
			found = &candidate
		}
	}
	if found == nil {
		return nil, store.ErrNotFound
	}
	return found, nil
}

func (s *Store) ListStockItems(_ context.Context, limit int) ([]domain.StockItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.StockItem, 0, len(s.inventory))
	for _, item := range s.inventory {
		items = append(items, item)
	}

	slices.SortFunc(items, func(a, b domain.StockItem) int {
		if a.ItemName == b.ItemName {
			return cmpString(a.ID, b.ID)
		}
		return cmpString(a.ItemName, b.ItemName)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) UpdateStockItem(_ context.Context, item domain.StockItem) (*domain.StockItem, error) {
	if err := store.ValidateStockItem(item); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.inventory[item.ID]; !exists {
		return nil, store.ErrNotFound
	}
	s.inventory[item.ID] = item
	updated := item
	return &updated, nil
}

func (s *Store) SetStockQuantity(_ context.Context, id string, qty int, at time.Time) error {
	if qty < 0 {
		return store.ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.inventory[id]
	if !exists {
		return store.ErrNotFound
	}
	item.QuantityInStock = qty
	item.UpdatedAt = at
	s.inventory[id] = item
	return nil
}

func (s *Store) DeleteStockItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.inventory[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.inventory, id)
	return nil
}

func cmpString(a string, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
