package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/3rdhubtech/cosmoleen-storefront/internal/domain"
)

type productSeed struct {
	Category    string
	Name        string
	Description string
	Price       int64
	Quantity    int
	Groups      []domain.VariantGroup
	Variants    []variantSeed
}

type variantSeed struct {
	Name     string
	Price    int64
	Quantity int
}

type shippingSeed struct {
	Name  string
	Price int64
}

// Apply inserts basic seed data for manual testing. It is idempotent:
// re-running updates the same rows instead of duplicating them.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Category:    "Drinkware",
			Name:        "Ceramic Mug",
			Description: "Glazed ceramic mug, 350 ml",
			Price:       1200,
			Quantity:    40,
		},
		{
			Category:    "Drinkware",
			Name:        "Travel Tumbler",
			Description: "Insulated steel tumbler",
			Price:       2600,
			Quantity:    15,
		},
		{
			Category:    "Apparel",
			Name:        "Cotton T-Shirt",
			Description: "Plain cotton tee",
			Price:       1900,
			Quantity:    0,
			Groups: []domain.VariantGroup{
				{Name: "Size", Options: []string{"S", "M", "L"}},
			},
			Variants: []variantSeed{
				{Name: "S", Price: 1900, Quantity: 10},
				{Name: "M", Price: 1900, Quantity: 12},
				{Name: "L", Price: 2100, Quantity: 6},
			},
		},
	}

	for _, p := range products {
		if err := ensureProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
	}

	locations := map[string][]shippingSeed{
		"Tripoli":  {{Name: "Courier", Price: 500}, {Name: "Pickup", Price: 0}},
		"Benghazi": {{Name: "Courier", Price: 900}},
	}
	for name, methods := range locations {
		if err := ensureLocation(ctx, pool, name, methods); err != nil {
			return fmt.Errorf("seed location %s: %w", name, err)
		}
	}

	return nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, name string) (int64, error) {
	const q = `
INSERT INTO categories (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`
	var id int64
	if err := pool.QueryRow(ctx, q, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	categoryID, err := ensureCategory(ctx, pool, p.Category)
	if err != nil {
		return fmt.Errorf("ensure category: %w", err)
	}

	if p.Groups == nil {
		p.Groups = []domain.VariantGroup{}
	}
	groups, err := json.Marshal(p.Groups)
	if err != nil {
		return err
	}

	// Products carry no natural unique key, so look the row up by name first.
	var productID int64
	err = pool.QueryRow(ctx, `SELECT id FROM products WHERE name = $1`, p.Name).Scan(&productID)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		const insert = `
INSERT INTO products (category_id, name, description, price, quantity, has_variant, variant_groups)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`
		if err := pool.QueryRow(ctx, insert,
			categoryID, p.Name, p.Description, p.Price, p.Quantity, len(p.Variants) > 0, groups,
		).Scan(&productID); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		const update = `
UPDATE products
SET category_id = $2, description = $3, price = $4, quantity = $5, has_variant = $6, variant_groups = $7
WHERE id = $1
`
		if _, err := pool.Exec(ctx, update,
			productID, categoryID, p.Description, p.Price, p.Quantity, len(p.Variants) > 0, groups,
		); err != nil {
			return err
		}
	}

	for _, v := range p.Variants {
		const q = `
INSERT INTO product_variants (product_id, name, price, quantity)
VALUES ($1, $2, $3, $4)
ON CONFLICT (product_id, name) DO UPDATE
SET price = EXCLUDED.price, quantity = EXCLUDED.quantity
`
		if _, err := pool.Exec(ctx, q, productID, v.Name, v.Price, v.Quantity); err != nil {
			return fmt.Errorf("variant %s: %w", v.Name, err)
		}
	}
	return nil
}

func ensureLocation(ctx context.Context, pool *pgxpool.Pool, name string, methods []shippingSeed) error {
	const q = `
INSERT INTO locations (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`
	var locationID int64
	if err := pool.QueryRow(ctx, q, name).Scan(&locationID); err != nil {
		return err
	}

	for _, m := range methods {
		const q = `
INSERT INTO shipping_methods (location_id, name, price)
VALUES ($1, $2, $3)
ON CONFLICT (location_id, name) DO UPDATE SET price = EXCLUDED.price
`
		if _, err := pool.Exec(ctx, q, locationID, m.Name, m.Price); err != nil {
			return fmt.Errorf("shipping %s: %w", m.Name, err)
		}
	}
	return nil
}
