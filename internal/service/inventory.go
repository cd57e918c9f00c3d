package service

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salestrack/backend/internal/domain"
)

func (s *Service) CreateStockItem(ctx context.Context, req domain.StockItemCreateRequest) (domain.StockItem, error) {
	now := s.now()

	reorderLevel := domain.DefaultReorderLevel
	if req.ReorderLevel != nil {
		reorderLevel = *req.ReorderLevel
	}

	item := domain.StockItem{
		ID:              uuid.NewString(),
		ItemName:        req.ItemName,
		PurchaseCost:    req.PurchaseCost,
		RetailPrice:     req.RetailPrice,
		QuantityInStock: req.QuantityInStock,
		ReorderLevel:    reorderLevel,
		Supplier:        req.Supplier,
		Category:        req.Category,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.CreateStockItem(ctx, item)
	if err != nil {
		return domain.StockItem{}, err
	}
	s.logger.Info("stock item created",
		zap.String("item_id", created.ID),
		zap.String("item_name", created.ItemName),
		zap.Int("quantity_in_stock", created.QuantityInStock),
	)
	return *created, nil
}

func (s *Service) ListStockItems(ctx context.Context) ([]domain.StockItem, error) {
	return s.repo.ListStockItems(ctx, s.listLimit)
}

// ListLowStock returns items at or below their reorder level, emptiest first.
func (s *Service) ListLowStock(ctx context.Context) ([]domain.StockItem, error) {
	items, err := s.repo.ListStockItems(ctx, 0)
	if err != nil {
		return nil, err
	}

	low := make([]domain.StockItem, 0, len(items))
	for _, item := range items {
		if item.QuantityInStock <= item.ReorderLevel {
			low = append(low, item)
		}
	}
	slices.SortStableFunc(low, func(a, b domain.StockItem) int {
		if a.QuantityInStock != b.QuantityInStock {
			return a.QuantityInStock - b.QuantityInStock
		}
		switch {
		case a.ItemName < b.ItemName:
			return -1
		case a.ItemName > b.ItemName:
			return 1
		default:
			return 0
		}
	})
	return low, nil
}

func (s *Service) GetStockItem(ctx context.Context, id string) (domain.StockItem, error) {
	item, err := s.repo.GetStockItem(ctx, id)
	if err != nil {
		return domain.StockItem{}, err
	}
	return *item, nil
}

func (s *Service) UpdateStockItem(ctx context.Context, id string, req domain.StockItemUpdateRequest) (domain.StockItem, error) {
	existing, err := s.repo.GetStockItem(ctx, id)
	if err != nil {
		return domain.StockItem{}, err
	}

	item := *existing
	if req.ItemName != nil {
		item.ItemName = *req.ItemName
	}
	if req.PurchaseCost != nil {
		item.PurchaseCost = *req.PurchaseCost
	}
	if req.RetailPrice != nil {
		item.RetailPrice = *req.RetailPrice
	}
	if req.QuantityInStock != nil {
		item.QuantityInStock = *req.QuantityInStock
	}
	if req.ReorderLevel != nil {
		item.ReorderLevel = *req.ReorderLevel
	}
	if req.Supplier != nil {
		item.Supplier = *req.Supplier
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	item.UpdatedAt = s.now()

	updated, err := s.repo.UpdateStockItem(ctx, item)
	if err != nil {
		return domain.StockItem{}, err
	}
	return *updated, nil
}

func (s *Service) DeleteStockItem(ctx context.Context, id string) error {
	if err := s.repo.DeleteStockItem(ctx, id); err != nil {
		return err
	}
	s.logger.Info("stock item deleted", zap.String("item_id", id))
	return nil
}
