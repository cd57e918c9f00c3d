package service

import (
	"context"

	"salestrack/backend/internal/domain"
)

// Reports scan every record on each call; nothing is cached.

func (s *Service) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	sales, err := s.repo.ListSales(ctx, 0)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	return s.reports.Dashboard(sales), nil
}

func (s *Service) InventoryStats(ctx context.Context) (domain.InventoryStats, error) {
	items, err := s.repo.ListStockItems(ctx, 0)
	if err != nil {
		return domain.InventoryStats{}, err
	}
	return s.reports.Inventory(items), nil
}

func (s *Service) SalesChart(ctx context.Context) (domain.SalesChart, error) {
	sales, err := s.repo.ListSales(ctx, 0)
	if err != nil {
		return domain.SalesChart{}, err
	}
	return s.reports.SalesChart(sales), nil
}
