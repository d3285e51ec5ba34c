package location

import (
	"context"

	"github.com/3rdhubtech/cosmoleen-storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Location, error)
	// ListShipping returns the delivery options for one location.
	ListShipping(ctx context.Context, locationID int64) ([]domain.ShippingMethod, error)
}
