package product

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/3rdhubtech/cosmoleen-storefront/internal/domain"
	"github.com/3rdhubtech/cosmoleen-storefront/internal/migrate"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("ping db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	const q = `TRUNCATE order_lines, orders, shipping_methods, locations, product_variants, products, categories RESTART IDENTITY CASCADE`
	if _, err := pool.Exec(ctx, q); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func insertProduct(ctx context.Context, t *testing.T, pool *pgxpool.Pool, categoryID int64, name string, price int64, quantity int) int64 {
	t.Helper()
	const q = `
INSERT INTO products (category_id, name, price, quantity)
VALUES (NULLIF($1, 0), $2, $3, $4)
RETURNING id`
	var id int64
	if err := pool.QueryRow(ctx, q, categoryID, name, price, quantity).Scan(&id); err != nil {
		t.Fatalf("insert product %s: %v", name, err)
	}
	return id
}

func TestPostgresList_Integration(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	var categoryID int64
	if err := pool.QueryRow(ctx, `INSERT INTO categories (name) VALUES ('mugs') RETURNING id`).Scan(&categoryID); err != nil {
		t.Fatalf("insert category: %v", err)
	}
	insertProduct(ctx, t, pool, categoryID, "blue mug", 300, 5)
	insertProduct(ctx, t, pool, categoryID, "red mug", 100, 5)
	insertProduct(ctx, t, pool, 0, "desk lamp", 200, 2)

	repo := NewPostgres(pool, nil)

	items, total, err := repo.List(ctx, ListParams{Page: 1, PerPage: 2, PriceOrder: domain.PriceOrderAsc})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(items) != 2 || items[0].Name != "red mug" || items[1].Name != "desk lamp" {
		t.Errorf("page 1 asc = %+v", items)
	}

	items, _, err = repo.List(ctx, ListParams{Page: 2, PerPage: 2, PriceOrder: domain.PriceOrderAsc})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(items) != 1 || items[0].Name != "blue mug" {
		t.Errorf("page 2 asc = %+v", items)
	}

	items, total, err = repo.List(ctx, ListParams{Page: 1, CategoryID: categoryID})
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("category filter: total = %d, items = %d", total, len(items))
	}

	items, total, err = repo.List(ctx, ListParams{Page: 1, NameQuery: "MUG"})
	if err != nil {
		t.Fatalf("list by name: %v", err)
	}
	if total != 2 {
		t.Errorf("name query total = %d, want 2", total)
	}
	for _, p := range items {
		if p.Name != "blue mug" && p.Name != "red mug" {
			t.Errorf("name query matched %q", p.Name)
		}
	}
}

func TestPostgresGetVariant_Integration(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	productID := insertProduct(ctx, t, pool, 0, "tee", 1900, 0)
	const q = `INSERT INTO product_variants (product_id, name, price, quantity) VALUES ($1, 'L', 2100, 6)`
	if _, err := pool.Exec(ctx, q, productID); err != nil {
		t.Fatalf("insert variant: %v", err)
	}

	repo := NewPostgres(pool, nil)

	v, err := repo.GetVariant(ctx, productID, "L")
	if err != nil {
		t.Fatalf("get variant: %v", err)
	}
	if v.Name != "L" || v.Price != 2100 || v.Quantity != 6 {
		t.Errorf("variant = %+v", v)
	}

	if _, err := repo.GetVariant(ctx, productID, "XL"); err != domain.ErrNotFound {
		t.Errorf("missing variant err = %v, want ErrNotFound", err)
	}
}
