package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/3rdhubtech/cosmoleen-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultPerPage = 20

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

const productColumns = `id, COALESCE(category_id, 0), name, COALESCE(description, ''), COALESCE(cover, ''), price, quantity, has_variant, variant_groups, custom_fields, created_at`

func (r *postgresRepo) List(ctx context.Context, params ListParams) ([]domain.Product, int, error) {
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PerPage <= 0 {
		params.PerPage = defaultPerPage
	}

	var conds []string
	var args []interface{}
	if params.CategoryID != 0 {
		args = append(args, params.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if q := strings.TrimSpace(params.NameQuery); q != "" {
		args = append(args, "%"+strings.ToLower(q)+"%")
		conds = append(conds, fmt.Sprintf("lower(name) LIKE $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM products"+where, args...).Scan(&total); err != nil {
		r.logger.Printf("product repo: count error=%v", err)
		return nil, 0, err
	}

	order := "created_at DESC, id DESC"
	switch params.PriceOrder {
	case domain.PriceOrderAsc:
		order = "price ASC, id ASC"
	case domain.PriceOrderDesc:
		order = "price DESC, id ASC"
	}

	args = append(args, params.PerPage, (params.Page-1)*params.PerPage)
	q := fmt.Sprintf("SELECT %s FROM products%s ORDER BY %s LIMIT $%d OFFSET $%d",
		productColumns, where, order, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list page=%d error=%v", params.Page, err)
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Cover, &p.Price, &p.Quantity, &p.HasVariant, &p.Variants, &p.CustomFields, &p.CreatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows page=%d error=%v", params.Page, err)
		return nil, 0, err
	}
	r.logger.Printf("product repo: list page=%d count=%d total=%d", params.Page, len(result), total)
	return result, total, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	q := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Cover, &p.Price, &p.Quantity, &p.HasVariant, &p.Variants, &p.CustomFields, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) GetVariant(ctx context.Context, productID int64, option string) (*domain.Variant, error) {
	const q = `
SELECT id, name, price, quantity
FROM product_variants
WHERE product_id = $1 AND name = $2
`
	var v domain.Variant
	err := r.pool.QueryRow(ctx, q, productID, option).Scan(&v.ID, &v.Name, &v.Price, &v.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: variant product_id=%d option=%s not found", productID, option)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: variant product_id=%d option=%s error=%v", productID, option, err)
		return nil, err
	}
	return &v, nil
}
