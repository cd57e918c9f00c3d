package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"salestrack/backend/internal/domain"
	"salestrack/backend/internal/store"
)

// InventorySync keeps stock counts in step with recorded sales. Items are
// matched to sales by exact item name; the read-modify-write is not isolated.
type InventorySync struct {
	repo   store.InventoryRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewInventorySync(repo store.InventoryRepository, logger *zap.Logger) *InventorySync {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventorySync{repo: repo, logger: logger, now: utcNow}
}

// Apply decrements the stock of the item named after the sale, clamping at
// zero. It reports false with a nil error when no item matches.
func (s *InventorySync) Apply(ctx context.Context, sale domain.Sale) (bool, error) {
	item, err := s.repo.FindStockItemByName(ctx, sale.ItemName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Debug("no stock item for sale", zap.String("item_name", sale.ItemName))
			return false, nil
		}
		return false, err
	}

	remaining := max(0, item.QuantityInStock-sale.Quantity)
	if err := s.repo.SetStockQuantity(ctx, item.ID, remaining, s.now()); err != nil {
		return false, err
	}

	s.logger.Info("inventory adjusted",
		zap.String("item_id", item.ID),
		zap.String("item_name", item.ItemName),
		zap.Int("previous", item.QuantityInStock),
		zap.Int("remaining", remaining),
	)
	return true, nil
}
