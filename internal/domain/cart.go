package domain

// VariantLine is one selected variant of a variant-bearing cart line.
type VariantLine struct {
	Variant Variant `json:"variant"`
	Count   int     `json:"count"`
}

// CartLine is one product's entry in the cart. A simple product carries
// Count; a variant-bearing product carries Variants and Count is unused.
// A product appears at most once in a cart, and a variant id at most once
// within its line.
type CartLine struct {
	Product  Product       `json:"product"`
	Count    int           `json:"count,omitempty"`
	Variants []VariantLine `json:"selectedVariants,omitempty"`
}

// LineTotal is the line's contribution to the cart total, using variant
// prices when present.
func (l CartLine) LineTotal() int64 {
	if len(l.Variants) > 0 {
		var sum int64
		for _, v := range l.Variants {
			sum += v.Variant.Price * int64(v.Count)
		}
		return sum
	}
	return l.Product.Price * int64(l.Count)
}

// CartState is the full cart contents. The total is derived, never stored.
type CartState struct {
	Lines []CartLine `json:"lines"`
}

// Total recomputes the cart total from scratch. An empty cart totals zero.
func (s CartState) Total() int64 {
	var sum int64
	for _, l := range s.Lines {
		sum += l.LineTotal()
	}
	return sum
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing internal slices to mutation.
func (s CartState) Clone() CartState {
	out := CartState{}
	if s.Lines == nil {
		return out
	}
	out.Lines = make([]CartLine, len(s.Lines))
	for i, l := range s.Lines {
		cp := l
		if l.Variants != nil {
			cp.Variants = make([]VariantLine, len(l.Variants))
			copy(cp.Variants, l.Variants)
		}
		if l.Product.Variants != nil {
			cp.Product.Variants = make([]VariantGroup, len(l.Product.Variants))
			copy(cp.Product.Variants, l.Product.Variants)
		}
		out.Lines[i] = cp
	}
	return out
}
