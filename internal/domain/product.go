package domain

import "time"

// Product is a catalog entry as served by the storefront API. Price is in
// minor currency units.
type Product struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Price        int64             `json:"price"`
	Quantity     int               `json:"quantity"`
	HasVariant   bool              `json:"hasVariant"`
	Variants     []VariantGroup    `json:"variants,omitempty"`
	Cover        string            `json:"cover,omitempty"`
	Description  string            `json:"description,omitempty"`
	CustomFields map[string]string `json:"customFields,omitempty"`
	CategoryID   int64             `json:"categoryId,omitempty"`
	CreatedAt    time.Time         `json:"createdAt,omitempty"`
}

// VariantGroup is one axis of variation (e.g. "Size") with its option labels.
type VariantGroup struct {
	Name    string   `json:"variantName"`
	Options []string `json:"variantOptions"`
}

// Variant is a concrete variant resolved by the API from a product id and an
// option name. Quantity is the stock for that specific variant.
type Variant struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}
