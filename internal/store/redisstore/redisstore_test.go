package redisstore

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"salestrack/backend/internal/store"
	"salestrack/backend/internal/store/storetest"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return NewFromClient(client, "test:"), mr
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Repository {
		s, _ := newTestStore(t)
		return s
	})
}

func TestKeysAreNamespaced(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	sale := storetest.NewSale("Mug", 0)
	_, err := s.CreateSale(ctx, sale)
	require.NoError(t, err)
	_, err = s.CreateStockItem(ctx, storetest.NewStockItem("Mug", 2, 0))
	require.NoError(t, err)

	require.ElementsMatch(t, []string{"test:sales", "test:sales:by_created", "test:inventory"}, mr.Keys())
	members, err := mr.ZMembers("test:sales:by_created")
	require.NoError(t, err)
	require.Equal(t, []string{sale.ID}, members)
}

func TestUpdateSaleMovesItToFrontOfListing(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first := storetest.NewSale("First", 0)
	second := storetest.NewSale("Second", time.Second)
	_, err := s.CreateSale(ctx, first)
	require.NoError(t, err)
	_, err = s.CreateSale(ctx, second)
	require.NoError(t, err)

	first.CreatedAt = second.CreatedAt.Add(time.Second)
	_, err = s.UpdateSale(ctx, first)
	require.NoError(t, err)

	sales, err := s.ListSales(ctx, 0)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	require.Equal(t, first.ID, sales[0].ID)
}

func TestDeleteSaleRemovesIndexEntry(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	sale := storetest.NewSale("Mug", 0)
	_, err := s.CreateSale(ctx, sale)
	require.NoError(t, err)
	require.NoError(t, s.DeleteSale(ctx, sale.ID))

	count, err := s.client.ZCard(ctx, s.salesByCreatedKey()).Result()
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestPingFailsWhenServerIsDown(t *testing.T) {
	s, mr := newTestStore(t)
	mr.Close()

	require.Error(t, s.Ping(context.Background()))
}
