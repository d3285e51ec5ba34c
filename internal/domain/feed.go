package domain

// PriceOrder sorts a product page by price.
type PriceOrder string

const (
	PriceOrderNone PriceOrder = ""
	PriceOrderAsc  PriceOrder = "asc"
	PriceOrderDesc PriceOrder = "desc"
)

// FeedFilter is the criteria tuple that identifies one page sequence.
// It is a comparable value: any field change is a new filter identity.
type FeedFilter struct {
	CategoryID int64      `json:"categoryId,omitempty"`
	PriceOrder PriceOrder `json:"priceOrder,omitempty"`
	NameQuery  string     `json:"nameQuery,omitempty"`
}

// FeedPage is one fetched page of the product feed.
type FeedPage struct {
	Items       []Product `json:"items"`
	CurrentPage int       `json:"currentPage"`
	LastPage    int       `json:"lastPage"`
}
