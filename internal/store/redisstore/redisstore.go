// Package redisstore keeps sales and stock items as JSON documents in Redis.
//
// Layout under the configured prefix:
//
//	<prefix>sales             hash   id -> sale JSON
//	<prefix>sales:by_created  zset   id scored by created_at (unix micros)
//	<prefix>inventory         hash   id -> stock item JSON
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"salestrack/backend/internal/domain"
	"salestrack/backend/internal/store"
)

type Store struct {
	client *redis.Client
	prefix string
}

func New(ctx context.Context, addr string, password string, db int, prefix string) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	s := NewFromClient(client, prefix)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return s, nil
}

func NewFromClient(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redisstore: ping: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) salesKey() string          { return s.prefix + "sales" }
func (s *Store) salesByCreatedKey() string { return s.prefix + "sales:by_created" }
func (s *Store) inventoryKey() string      { return s.prefix + "inventory" }

func (s *Store) CreateSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error) {
	if err := store.ValidateSale(sale); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(sale)
	if err != nil {
		return nil, err
	}

	added, err := s.client.HSetNX(ctx, s.salesKey(), sale.ID, payload).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: insert sale: %w", err)
	}
	if !added {
		return nil, store.ErrInvalidRecord
	}
	if err := s.indexSale(ctx, sale); err != nil {
		return nil, err
	}

	created := sale
	return &created, nil
}

func (s *Store) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	raw, err := s.client.HGet(ctx, s.salesKey(), id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redisstore: get sale: %w", err)
	}

	var sale domain.Sale
	if err := json.Unmarshal([]byte(raw), &sale); err != nil {
		return nil, fmt.Errorf("redisstore: decode sale %s: %w", id, err)
	}
	return &sale, nil
}

func (s *Store) ListSales(ctx context.Context, limit int) ([]domain.Sale, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	ids, err := s.client.ZRevRange(ctx, s.salesByCreatedKey(), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: list sales: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Sale{}, nil
	}

	docs, err := s.client.HMGet(ctx, s.salesKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: load sales: %w", err)
	}

	sales := make([]domain.Sale, 0, len(docs))
	for i, doc := range docs {
		raw, ok := doc.(string)
		if !ok {
			// index entry without a document; skip rather than fail the listing
			continue
		}
		var sale domain.Sale
		if err := json.Unmarshal([]byte(raw), &sale); err != nil {
			return nil, fmt.Errorf("redisstore: decode sale %s: %w", ids[i], err)
		}
		sales = append(sales, sale)
	}
	return sales, nil
}

func (s *Store) UpdateSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error) {
	if err := store.ValidateSale(sale); err != nil {
		return nil, err
	}
	exists, err := s.client.HExists(ctx, s.salesKey(), sale.ID).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: lookup sale: %w", err)
	}
	if !exists {
		return nil, store.ErrNotFound
	}

	payload, err := json.Marshal(sale)
	if err != nil {
		return nil, err
	}
	if err := s.client.HSet(ctx, s.salesKey(), sale.ID, payload).Err(); err != nil {
		return nil, fmt.Errorf("redisstore: update sale: %w", err)
	}
	if err := s.indexSale(ctx, sale); err != nil {
		return nil, err
	}

	updated := sale
	return &updated, nil
}

func (s *Store) DeleteSale(ctx context.Context, id string) error {
	removed, err := s.client.HDel(ctx, s.salesKey(), id).Result()
	if err != nil {
		return fmt.Errorf("redisstore: delete sale: %w", err)
	}
	if removed == 0 {
		return store.ErrNotFound
	}
	if err := s.client.ZRem(ctx, s.salesByCreatedKey(), id).Err(); err != nil {
		return fmt.Errorf("redisstore: unindex sale: %w", err)
	}
	return nil
}

func (s *Store) indexSale(ctx context.Context, sale domain.Sale) error {
	err := s.client.ZAdd(ctx, s.salesByCreatedKey(), redis.Z{
		Score:  float64(sale.CreatedAt.UnixMicro()),
		Member: sale.ID,
	}).Err()
	if err != nil {
		return fmt.Errorf("redisstore: index sale: %w", err)
	}
	return nil
}

func (s *Store) CreateStockItem(ctx context.Context, item domain.StockItem) (*domain.StockItem, error) {
	if err := store.ValidateStockItem(item); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}

	added, err := s.client.HSetNX(ctx, s.inventoryKey(), item.ID, payload).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: insert stock item: %w", err)
	}
	if !added {
		return nil, store.ErrInvalidRecord
	}

	created := item
	return &created, nil
}

func (s *Store) GetStockItem(ctx context.Context, id string) (*domain.StockItem, error) {
	raw, err := s.client.HGet(ctx, s.inventoryKey(), id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redisstore: get stock item: %w", err)
	}

	var item domain.StockItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return nil, fmt.Errorf("redisstore: decode stock item %s: %w", id, err)
	}
	return &item, nil
}

func (s *Store) FindStockItemByName(ctx context.Context, name string) (*domain.StockItem, error) {
	items, err := s.allStockItems(ctx)
	if err != nil {
		return nil, err
	}

	var found *domain.StockItem
	for i := range items {
		if items[i].ItemName != name {
			continue
		}
		if found == nil || store.FirstByAge(items[i], *found) {
			found = &items[i]
		}
	}
	if found == nil {
		return nil, store.ErrNotFound
	}
	return found, nil
}

func (s *Store) ListStockItems(ctx context.Context, limit int) ([]domain.StockItem, error) {
	items, err := s.allStockItems(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(items, func(a, b domain.StockItem) int {
		if a.ItemName == b.ItemName {
			return strings.Compare(a.ID, b.ID)
		}
		return strings.Compare(a.ItemName, b.ItemName)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) UpdateStockItem(ctx context.Context, item domain.StockItem) (*domain.StockItem, error) {
	if err := store.ValidateStockItem(item); err != nil {
		return nil, err
	}
	exists, err := s.client.HExists(ctx, s.inventoryKey(), item.ID).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: lookup stock item: %w", err)
	}
	if !exists {
		return nil, store.ErrNotFound
	}

	if err := s.putStockItem(ctx, item); err != nil {
		return nil, err
	}
	updated := item
	return &updated, nil
}

func (s *Store) SetStockQuantity(ctx context.Context, id string, qty int, at time.Time) error {
	if qty < 0 {
		return store.ErrInvalidRecord
	}
	item, err := s.GetStockItem(ctx, id)
	if err != nil {
		return err
	}
	item.QuantityInStock = qty
	item.UpdatedAt = at
	return s.putStockItem(ctx, *item)
}

func (s *Store) DeleteStockItem(ctx context.Context, id string) error {
	removed, err := s.client.HDel(ctx, s.inventoryKey(), id).Result()
	if err != nil {
		return fmt.Errorf("redisstore: delete stock item: %w", err)
	}
	if removed == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) putStockItem(ctx context.Context, item domain.StockItem) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return err
	}
	if err := s.client.HSet(ctx, s.inventoryKey(), item.ID, payload).Err(); err != nil {
		return fmt.Errorf("redisstore: write stock item: %w", err)
	}
	return nil
}

func (s *Store) allStockItems(ctx context.Context) ([]domain.StockItem, error) {
	docs, err := s.client.HGetAll(ctx, s.inventoryKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: list stock items: %w", err)
	}

	items := make([]domain.StockItem, 0, len(docs))
	for id, raw := range docs {
		var item domain.StockItem
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("redisstore: decode stock item %s: %w", id, err)
		}
		items = append(items, item)
	}
	return items, nil
}
