package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"salestrack/backend/internal/domain"
	"salestrack/backend/internal/store"
)

//go:embed schema.sql
var schema string

const (
	salesTable = "sales"
	stockTable = "stock_items"
)

var (
	psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	saleColumns = []string{
		"id", "item_name", "purchase_cost", "retail_price", "quantity",
		"profit", "revenue", "profit_margin", "to_char(date_sold, 'YYYY-MM-DD')", "created_at",
	}
	stockColumns = []string{
		"id", "item_name", "purchase_cost", "retail_price", "quantity_in_stock",
		"reorder_level", "supplier", "category", "created_at", "updated_at",
	}
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Migrate creates the tables and indexes when they do not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreateSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error) {
	if err := store.ValidateSale(sale); err != nil {
		return nil, err
	}

	query, args, err := insertSaleQuery(sale)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidRecord
		}
		return nil, fmt.Errorf("postgres: insert sale: %w", err)
	}

	created := sale
	return &created, nil
}

func (s *Store) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	query, args, err := psql.Select(saleColumns...).From(salesTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	sale, err := scanSale(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("postgres: get sale: %w", err)
	}
	return sale, nil
}

func (s *Store) ListSales(ctx context.Context, limit int) ([]domain.Sale, error) {
	query, args, err := listSalesQuery(limit)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list sales: %w", err)
	}
	defer rows.Close()

	sales := make([]domain.Sale, 0, 64)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, *sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *Store) UpdateSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error) {
	if err := store.ValidateSale(sale); err != nil {
		return nil, err
	}

	query, args, err := psql.Update(salesTable).
		SetMap(map[string]any{
			"item_name":     sale.ItemName,
			"purchase_cost": sale.PurchaseCost,
			"retail_price":  sale.RetailPrice,
			"quantity":      sale.Quantity,
			"profit":        sale.Profit,
			"revenue":       sale.Revenue,
			"profit_margin": sale.ProfitMargin,
			"date_sold":     sale.DateSold,
			"created_at":    sale.CreatedAt,
		}).
		Where(squirrel.Eq{"id": sale.ID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := s.execAffectingOne(ctx, query, args); err != nil {
		return nil, err
	}

	updated := sale
	return &updated, nil
}

func (s *Store) DeleteSale(ctx context.Context, id string) error {
	query, args, err := psql.Delete(salesTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	return s.execAffectingOne(ctx, query, args)
}

func (s *Store) CreateStockItem(ctx context.Context, item domain.StockItem) (*domain.StockItem, error) {
	if err := store.ValidateStockItem(item); err != nil {
		return nil, err
	}

	query, args, err := psql.Insert(stockTable).
		Columns(stockColumns...).
		Values(item.ID, item.ItemName, item.PurchaseCost, item.RetailPrice, item.QuantityInStock,
			item.ReorderLevel, item.Supplier, item.Category, item.CreatedAt, item.UpdatedAt).
		ToSql()
	if err != nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidRecord
		}
		return nil, fmt.Errorf("postgres: insert stock item: %w", err)
	}

	created := item
	return &created, nil
}

func (s *Store) GetStockItem(ctx context.Context, id string) (*domain.StockItem, error) {
	query, args, err := psql.Select(stockColumns...).From(stockTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return s.queryOneStockItem(ctx, query, args)
}

func (s *Store) FindStockItemByName(ctx context.Context, name string) (*domain.StockItem, error) {
	query, args, err := findStockByNameQuery(name)
	if err != nil {
		return nil, err
	}
	return s.queryOneStockItem(ctx, query, args)
}

func (s *Store) ListStockItems(ctx context.Context, limit int) ([]domain.StockItem, error) {
	builder := psql.Select(stockColumns...).From(stockTable).OrderBy("item_name ASC", "id ASC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list stock items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.StockItem, 0, 64)
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpdateStockItem(ctx context.Context, item domain.StockItem) (*domain.StockItem, error) {
	if err := store.ValidateStockItem(item); err != nil {
		return nil, err
	}

	query, args, err := psql.Update(stockTable).
		SetMap(map[string]any{
			"item_name":         item.ItemName,
			"purchase_cost":     item.PurchaseCost,
			"retail_price":      item.RetailPrice,
			"quantity_in_stock": item.QuantityInStock,
			"reorder_level":     item.ReorderLevel,
			"supplier":          item.Supplier,
			"category":          item.Category,
			"updated_at":        item.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := s.execAffectingOne(ctx, query, args); err != nil {
		return nil, err
	}

	updated := item
	return &updated, nil
}

func (s *Store) SetStockQuantity(ctx context.Context, id string, qty int, at time.Time) error {
	if qty < 0 {
		return store.ErrInvalidRecord
	}

	query, args, err := setStockQuantityQuery(id, qty, at)
	if err != nil {
		return err
	}
	return s.execAffectingOne(ctx, query, args)
}

func (s *Store) DeleteStockItem(ctx context.Context, id string) error {
	query, args, err := psql.Delete(stockTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	return s.execAffectingOne(ctx, query, args)
}

func (s *Store) queryOneStockItem(ctx context.Context, query string, args []any) (*domain.StockItem, error) {
	item, err := scanStockItem(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("postgres: get stock item: %w", err)
	}
	return item, nil
}

func (s *Store) execAffectingOne(ctx context.Context, query string, args []any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("postgres: exec: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func insertSaleQuery(sale domain.Sale) (string, []any, error) {
	return psql.Insert(salesTable).
		Columns("id", "item_name", "purchase_cost", "retail_price", "quantity",
			"profit", "revenue", "profit_margin", "date_sold", "created_at").
		Values(sale.ID, sale.ItemName, sale.PurchaseCost, sale.RetailPrice, sale.Quantity,
			sale.Profit, sale.Revenue, sale.ProfitMargin, sale.DateSold, sale.CreatedAt).
		ToSql()
}

func listSalesQuery(limit int) (string, []any, error) {
	builder := psql.Select(saleColumns...).From(salesTable).OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	return builder.ToSql()
}

func findStockByNameQuery(name string) (string, []any, error) {
	return psql.Select(stockColumns...).
		From(stockTable).
		Where(squirrel.Eq{"item_name": name}).
		OrderBy("created_at ASC", "id ASC").
		Limit(1).
		ToSql()
}

func setStockQuantityQuery(id string, qty int, at time.Time) (string, []any, error) {
	return psql.Update(stockTable).
		Set("quantity_in_stock", qty).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSale(row rowScanner) (*domain.Sale, error) {
	var sale domain.Sale
	err := row.Scan(
		&sale.ID,
		&sale.ItemName,
		&sale.PurchaseCost,
		&sale.RetailPrice,
		&sale.Quantity,
		&sale.Profit,
		&sale.Revenue,
		&sale.ProfitMargin,
		&sale.DateSold,
		&sale.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	sale.CreatedAt = sale.CreatedAt.UTC()
	return &sale, nil
}

func scanStockItem(row rowScanner) (*domain.StockItem, error) {
	var item domain.StockItem
	err := row.Scan(
		&item.ID,
		&item.ItemName,
		&item.PurchaseCost,
		&item.RetailPrice,
		&item.QuantityInStock,
		&item.ReorderLevel,
		&item.Supplier,
		&item.Category,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.CreatedAt = item.CreatedAt.UTC()
	item.UpdatedAt = item.UpdatedAt.UTC()
	return &item, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
