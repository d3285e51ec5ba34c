package order

import (
	"context"
	"io"
	"log"

	"github.com/3rdhubtech/cosmoleen-storefront/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	defer tx.Rollback(ctx)

	const insertOrder = `
		INSERT INTO orders (name, email, phone, address, notes, location_id, shipping_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err = tx.QueryRow(ctx, insertOrder,
		o.Name, o.Email, o.Phone, o.Address, o.Notes, o.LocationID, o.ShippingID,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return domain.Order{}, err
	}

	const insertLine = `
		INSERT INTO order_lines (order_id, product_id, variant_id, count)
		VALUES ($1, $2, $3, $4)`
	const takeProductStock = `
		UPDATE products SET quantity = quantity - $2
		WHERE id = $1 AND quantity >= $2`
	const takeVariantStock = `
		UPDATE product_variants SET quantity = quantity - $2
		WHERE id = $1 AND quantity >= $2`

	for _, line := range o.Lines {
		if _, err := tx.Exec(ctx, insertLine, o.ID, line.ProductID, line.VariantID, line.Count); err != nil {
			return domain.Order{}, err
		}

		stockQuery, stockID, kind := takeProductStock, line.ProductID, "product"
		if line.VariantID != nil {
			stockQuery, stockID, kind = takeVariantStock, *line.VariantID, "variant"
		}
		ct, err := tx.Exec(ctx, stockQuery, stockID, line.Count)
		if err != nil {
			return domain.Order{}, err
		}
		if ct.RowsAffected() == 0 {
			r.logger.Printf("order rejected: %s %d under stock", kind, stockID)
			return domain.Order{}, domain.ErrOutOfStock
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}
