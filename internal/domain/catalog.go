package domain

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Location struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ShippingMethod is a delivery option offered for a location.
type ShippingMethod struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price,omitempty"`
}
