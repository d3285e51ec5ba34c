// Package cart implements the client-side cart store: all cart mutation goes
// through it, the running total is derived on demand, and every change is
// written back to durable storage.
package cart

import (
	"encoding/json"
	"io"
	"log"
	"sync"

	"github.com/3rdhubtech/cosmoleen-storefront/internal/domain"
	"github.com/3rdhubtech/cosmoleen-storefront/internal/kvstore"
)

// The storage key is owned exclusively by this store.
const cartKey = "cart"

// AddResult reports what an add operation did.
type AddResult int

const (
	// Added means a new line or variant entry was created.
	Added AddResult = iota
	// Incremented means an existing entry's count grew by one.
	Incremented
	// StockLimitReached means the add was capped or refused by available
	// stock. The cart may still have changed under the capping policy.
	StockLimitReached
)

func (r AddResult) String() string {
	switch r {
	case Added:
		return "added"
	case Incremented:
		return "incremented"
	case StockLimitReached:
		return "stock limit reached"
	}
	return "unknown"
}

// Policy selects between behaviors the snapshots disagree on.
type Policy struct {
	// KeepEmptyParent keeps a product line whose last variant entry was
	// removed. The default removes the parent line too.
	KeepEmptyParent bool
	// RejectOverStock refuses a new entry whose requested count exceeds
	// stock. The default caps the count at stock and reports
	// StockLimitReached so the UI can show a partial-addition notice.
	RejectOverStock bool
}

// Store is the single source of truth for cart contents. Mutations are
// atomic, trigger a synchronous persistence write, and notify subscribers.
type Store struct {
	storage kvstore.Store
	logger  *log.Logger
	policy  Policy

	mu    sync.Mutex
	state domain.CartState
	subs  []func(domain.CartState)
}

// New builds a Store, loading any previously persisted state. Absent or
// corrupt stored data yields an empty cart; construction never fails.
func New(storage kvstore.Store, logger *log.Logger, policy Policy) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Store{storage: storage, logger: logger, policy: policy}
	s.load()
	return s
}

func (s *Store) load() {
	raw, err := s.storage.Get(cartKey)
	if err != nil {
		return
	}
	var state domain.CartState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		s.logger.Printf("cart store: discarding corrupt persisted state: %v", err)
		return
	}
	s.state = state
}

// State returns a deep-copied snapshot of the cart.
func (s *Store) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Total recomputes the cart total from the current lines.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Total()
}

// Subscribe registers fn to receive a snapshot after every cart change.
func (s *Store) Subscribe(fn func(domain.CartState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Add puts a simple (variant-less) product into the cart. A new line starts
// at incrementBy (subject to stock policy); an existing line grows by one
// while below stock.
func (s *Store) Add(p domain.Product, incrementBy int) AddResult {
	s.mu.Lock()
	res, changed := s.addLocked(p, nil, incrementBy)
	s.finish(changed)
	return res
}

// AddVariant puts a specific variant of a product into the cart, with the
// same new-entry and increment semantics as Add applied to the variant's
// own stock.
func (s *Store) AddVariant(p domain.Product, v domain.Variant, incrementBy int) AddResult {
	s.mu.Lock()
	res, changed := s.addLocked(p, &v, incrementBy)
	s.finish(changed)
	return res
}

func (s *Store) addLocked(p domain.Product, v *domain.Variant, incrementBy int) (AddResult, bool) {
	if incrementBy < 1 {
		incrementBy = 1
	}
	idx := s.lineIndex(p.ID)

	if v == nil {
		if idx < 0 {
			count, res, ok := s.newEntryCount(incrementBy, p.Quantity)
			if !ok {
				return res, false
			}
			s.state.Lines = append(s.state.Lines, domain.CartLine{Product: p, Count: count})
			return res, true
		}
		line := &s.state.Lines[idx]
		if line.Count >= line.Product.Quantity {
			return StockLimitReached, false
		}
		line.Count++
		return Incremented, true
	}

	if idx < 0 {
		count, res, ok := s.newEntryCount(incrementBy, v.Quantity)
		if !ok {
			return res, false
		}
		s.state.Lines = append(s.state.Lines, domain.CartLine{
			Product:  p,
			Variants: []domain.VariantLine{{Variant: *v, Count: count}},
		})
		return res, true
	}

	line := &s.state.Lines[idx]
	for i := range line.Variants {
		entry := &line.Variants[i]
		if entry.Variant.ID != v.ID {
			continue
		}
		if entry.Count >= entry.Variant.Quantity {
			return StockLimitReached, false
		}
		entry.Count++
		return Incremented, true
	}
	count, res, ok := s.newEntryCount(incrementBy, v.Quantity)
	if !ok {
		return res, false
	}
	line.Variants = append(line.Variants, domain.VariantLine{Variant: *v, Count: count})
	return res, true
}

// newEntryCount clamps or rejects a fresh entry against stock. ok reports
// whether an entry should be created at all.
func (s *Store) newEntryCount(incrementBy, stock int) (count int, res AddResult, ok bool) {
	if stock <= 0 {
		return 0, StockLimitReached, false
	}
	if incrementBy <= stock {
		return incrementBy, Added, true
	}
	if s.policy.RejectOverStock {
		return 0, StockLimitReached, false
	}
	return stock, StockLimitReached, true
}

// Remove deletes a product's entire line from the cart.
func (s *Store) Remove(productID int64) {
	s.mu.Lock()
	changed := s.removeLineLocked(productID)
	s.finish(changed)
}

// RemoveVariant deletes one variant entry from a product's line. Whether an
// emptied parent line survives is governed by Policy.KeepEmptyParent.
func (s *Store) RemoveVariant(productID, variantID int64) {
	s.mu.Lock()
	changed := s.removeVariantLocked(productID, variantID)
	s.finish(changed)
}

func (s *Store) removeLineLocked(productID int64) bool {
	idx := s.lineIndex(productID)
	if idx < 0 {
		return false
	}
	s.state.Lines = append(s.state.Lines[:idx], s.state.Lines[idx+1:]...)
	return true
}

func (s *Store) removeVariantLocked(productID, variantID int64) bool {
	idx := s.lineIndex(productID)
	if idx < 0 {
		return false
	}
	line := &s.state.Lines[idx]
	for i := range line.Variants {
		if line.Variants[i].Variant.ID != variantID {
			continue
		}
		line.Variants = append(line.Variants[:i], line.Variants[i+1:]...)
		if len(line.Variants) == 0 && !s.policy.KeepEmptyParent {
			s.state.Lines = append(s.state.Lines[:idx], s.state.Lines[idx+1:]...)
		}
		return true
	}
	return false
}

// Decrement lowers a simple line's count by one, removing the line when the
// count would drop below one.
func (s *Store) Decrement(productID int64) {
	s.mu.Lock()
	changed := false
	if idx := s.lineIndex(productID); idx >= 0 {
		line := &s.state.Lines[idx]
		if line.Count > 1 {
			line.Count--
		} else {
			s.state.Lines = append(s.state.Lines[:idx], s.state.Lines[idx+1:]...)
		}
		changed = true
	}
	s.finish(changed)
}

// DecrementVariant lowers a variant entry's count by one, removing the entry
// (and, by policy, an emptied parent line) at count one.
func (s *Store) DecrementVariant(productID, variantID int64) {
	s.mu.Lock()
	changed := false
	if idx := s.lineIndex(productID); idx >= 0 {
		line := &s.state.Lines[idx]
		for i := range line.Variants {
			if line.Variants[i].Variant.ID != variantID {
				continue
			}
			if line.Variants[i].Count > 1 {
				line.Variants[i].Count--
			} else {
				line.Variants = append(line.Variants[:i], line.Variants[i+1:]...)
				if len(line.Variants) == 0 && !s.policy.KeepEmptyParent {
					s.state.Lines = append(s.state.Lines[:idx], s.state.Lines[idx+1:]...)
				}
			}
			changed = true
			break
		}
	}
	s.finish(changed)
}

// Reset clears the cart, typically after a successful checkout.
func (s *Store) Reset() {
	s.mu.Lock()
	changed := len(s.state.Lines) > 0
	s.state.Lines = nil
	s.finish(changed)
}

func (s *Store) lineIndex(productID int64) int {
	for i := range s.state.Lines {
		if s.state.Lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// finish persists and releases the lock, then notifies subscribers with a
// snapshot. Callers hold the lock on entry.
func (s *Store) finish(changed bool) {
	if !changed {
		s.mu.Unlock()
		return
	}
	s.persistLocked()
	snap := s.state.Clone()
	subs := make([]func(domain.CartState), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store) persistLocked() {
	raw, err := json.Marshal(s.state)
	if err != nil {
		s.logger.Printf("cart store: marshal state: %v", err)
		return
	}
	if err := s.storage.Set(cartKey, string(raw)); err != nil {
		s.logger.Printf("cart store: persist state: %v", err)
	}
}
