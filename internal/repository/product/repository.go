package product

import (
	"context"

	"github.com/3rdhubtech/cosmoleen-storefront/internal/domain"
)

// ListParams select and order one page of the catalog.
type ListParams struct {
	Page       int
	PerPage    int
	CategoryID int64
	PriceOrder domain.PriceOrder
	NameQuery  string
}

type Repository interface {
	// List returns one page of products plus the total match count.
	List(ctx context.Context, params ListParams) ([]domain.Product, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// GetVariant resolves a concrete variant by product id and option name.
	GetVariant(ctx context.Context, productID int64, option string) (*domain.Variant, error)
}
