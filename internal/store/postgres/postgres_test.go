package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"salestrack/backend/internal/store"
	"salestrack/backend/internal/store/storetest"
)

func TestListSalesQueryOrdersNewestFirst(t *testing.T) {
	query, args, err := listSalesQuery(25)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if !strings.Contains(query, "ORDER BY created_at DESC, id DESC") {
		t.Fatalf("expected newest-first ordering, got %q", query)
	}
	if !strings.Contains(query, "LIMIT 25") {
		t.Fatalf("expected limit clause, got %q", query)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}

	unbounded, _, err := listSalesQuery(0)
	if err != nil {
		t.Fatalf("build unbounded query: %v", err)
	}
	if strings.Contains(unbounded, "LIMIT") {
		t.Fatalf("limit 0 must not add LIMIT, got %q", unbounded)
	}
}

func TestFindStockByNameQueryPicksOldest(t *testing.T) {
	query, args, err := findStockByNameQuery("USB-C Cable")
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if !strings.Contains(query, "WHERE item_name = $1") {
		t.Fatalf("expected dollar placeholder on item_name, got %q", query)
	}
	if !strings.Contains(query, "ORDER BY created_at ASC, id ASC LIMIT 1") {
		t.Fatalf("expected oldest-first single row, got %q", query)
	}
	if len(args) != 1 || args[0] != "USB-C Cable" {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestSetStockQuantityQuery(t *testing.T) {
	at := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	query, args, err := setStockQuantityQuery("item-1", 3, at)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	want := "UPDATE stock_items SET quantity_in_stock = $1, updated_at = $2 WHERE id = $3"
	if query != want {
		t.Fatalf("query = %q, want %q", query, want)
	}
	if len(args) != 3 || args[0] != 3 || args[2] != "item-1" {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestSaleSelectFormatsDate(t *testing.T) {
	found := false
	for _, column := range saleColumns {
		if column == "to_char(date_sold, 'YYYY-MM-DD')" {
			found = true
		}
	}
	if !found {
		t.Fatalf("date_sold must be selected as YYYY-MM-DD text, columns %v", saleColumns)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})) {
		t.Fatalf("wrapped 23505 must be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23514"}) {
		t.Fatalf("check violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("boom")) {
		t.Fatalf("plain error is not a unique violation")
	}
}

func TestRepositoryContract(t *testing.T) {
	databaseURL := os.Getenv("SALESTRACK_TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("set SALESTRACK_TEST_DATABASE_URL to run postgres integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	storetest.Run(t, func(t *testing.T) store.Repository {
		if _, err := s.db.ExecContext(ctx, `TRUNCATE sales, stock_items`); err != nil {
			t.Fatalf("truncate: %v", err)
		}
		return s
	})
}
