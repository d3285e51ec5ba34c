package domain

import "time"

// OrderLine is one flattened cart entry in a checkout payload.
type OrderLine struct {
	ProductID int64  `json:"productId"`
	VariantID *int64 `json:"variantId,omitempty"`
	Count     int    `json:"count"`
}

// Order is the checkout submission payload: buyer fields plus the flattened
// cart lines.
type Order struct {
	ID         int64       `json:"id,omitempty"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Address    string      `json:"address"`
	Notes      string      `json:"notes,omitempty"`
	LocationID int64       `json:"locationId"`
	ShippingID int64       `json:"shippingId"`
	Lines      []OrderLine `json:"lines"`
	CreatedAt  time.Time   `json:"createdAt,omitempty"`
}
