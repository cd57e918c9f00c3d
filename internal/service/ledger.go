package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salestrack/backend/internal/domain"
	"salestrack/backend/internal/pricing"
	"salestrack/backend/internal/store"
)

// CreateSale records a sale and then decrements the matching stock item.
// A failed stock adjustment is logged and does not fail the sale.
func (s *Service) CreateSale(ctx context.Context, req domain.SaleCreateRequest) (domain.Sale, error) {
	now := s.now()

	if req.Quantity == 0 {
		req.Quantity = 1
	}
	dateSold, err := normalizeDate(req.DateSold, now)
	if err != nil {
		return domain.Sale{}, err
	}

	sale := domain.Sale{
		ID:           uuid.NewString(),
		ItemName:     req.ItemName,
		PurchaseCost: req.PurchaseCost,
		RetailPrice:  req.RetailPrice,
		Quantity:     req.Quantity,
		DateSold:     dateSold,
		CreatedAt:    now,
	}
	sale.Apply(pricing.Calculate(sale.PurchaseCost, sale.RetailPrice, sale.Quantity))

	created, err := s.repo.CreateSale(ctx, sale)
	if err != nil {
		return domain.Sale{}, err
	}
	s.logger.Info("sale created",
		zap.String("sale_id", created.ID),
		zap.String("item_name", created.ItemName),
		zap.Int("quantity", created.Quantity),
	)

	if _, err := s.sync.Apply(ctx, *created); err != nil {
		s.logger.Warn("inventory sync failed",
			zap.String("sale_id", created.ID),
			zap.String("item_name", created.ItemName),
			zap.Error(err),
		)
	}

	return *created, nil
}

func (s *Service) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.repo.ListSales(ctx, s.listLimit)
}

func (s *Service) GetSale(ctx context.Context, id string) (domain.Sale, error) {
	sale, err := s.repo.GetSale(ctx, id)
	if err != nil {
		return domain.Sale{}, err
	}
	return *sale, nil
}

// UpdateSale merges the supplied fields, recomputes the derived metrics and
// stamps CreatedAt with the update time. Stock is not adjusted.
func (s *Service) UpdateSale(ctx context.Context, id string, req domain.SaleUpdateRequest) (domain.Sale, error) {
	existing, err := s.repo.GetSale(ctx, id)
	if err != nil {
		return domain.Sale{}, err
	}

	sale := *existing
	if req.ItemName != nil {
		sale.ItemName = *req.ItemName
	}
	if req.PurchaseCost != nil {
		sale.PurchaseCost = *req.PurchaseCost
	}
	if req.RetailPrice != nil {
		sale.RetailPrice = *req.RetailPrice
	}
	if req.Quantity != nil {
		sale.Quantity = *req.Quantity
	}
	if req.DateSold != nil {
		dateSold, err := normalizeDate(*req.DateSold, sale.CreatedAt)
		if err != nil {
			return domain.Sale{}, err
		}
		sale.DateSold = dateSold
	}

	sale.Apply(pricing.Calculate(sale.PurchaseCost, sale.RetailPrice, sale.Quantity))
	sale.CreatedAt = s.now()

	updated, err := s.repo.UpdateSale(ctx, sale)
	if err != nil {
		return domain.Sale{}, err
	}
	return *updated, nil
}

func (s *Service) DeleteSale(ctx context.Context, id string) error {
	if err := s.repo.DeleteSale(ctx, id); err != nil {
		return err
	}
	s.logger.Info("sale deleted", zap.String("sale_id", id))
	return nil
}

// normalizeDate returns raw in DateLayout, or the UTC date of fallback when raw is empty.
func normalizeDate(raw string, fallback time.Time) (string, error) {
	if raw == "" {
		return fallback.UTC().Format(domain.DateLayout), nil
	}
	parsed, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return "", fmt.Errorf("%w: date_sold must be YYYY-MM-DD", store.ErrInvalidRecord)
	}
	return parsed.Format(domain.DateLayout), nil
}
