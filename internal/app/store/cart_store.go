// Package store holds the session-scoped cart and wishlist state. Stores are
// explicitly constructed with an injected persistence backend — never package
// globals — so tests build isolated instances and the server scopes one pair
// per session.
package store

import (
	"errors"
	"fmt"

	"github.com/kishorkishor/storefront-backend/internal/app/model"
	"github.com/kishorkishor/storefront-backend/internal/persist"
	"github.com/kishorkishor/storefront-backend/pkg/logger"
)

type cartSnapshot struct {
	Items []model.CartItem `json:"items"`
}

// CartCandidate is the caller-supplied shape for Add. The ID of the
// resulting line item is generated by the store.
type CartCandidate struct {
	ProductID string
	Title     string
	Price     float64
	Quantity  int
	Image     string
}

// CartStore maintains the line items of one session's cart. Every mutation
// builds a candidate item list, writes the full snapshot through to
// persistence, and only then adopts the candidate, so a failed backend write
// leaves the in-memory state matching what a snapshot replay would produce.
// Committed mutations notify subscribers with the new item count. Mutations
// on unknown product IDs are silent no-ops, never errors.
//
// A mutex guards the item list so one session may be touched by concurrent
// requests; cross-store ordering is whatever order the callers arrive in.
type CartStore struct {
	base
	items []model.CartItem
}

// NewCartStore loads the persisted snapshot, if any. A missing snapshot
// starts the cart empty; a corrupt one is an error.
func NewCartStore(p persist.Store) (*CartStore, error) {
	s := &CartStore{base: newBase(p)}

	var snap cartSnapshot
	if err := p.Load(&snap); err != nil {
		if !errors.Is(err, persist.ErrNotFound) {
			return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
		}
	}
	s.items = snap.Items
	return s, nil
}

// Add merges the candidate into the cart. If a line item for the same
// product exists its quantity is incremented by the candidate's quantity and
// every other field — the price snapshot included — is left untouched.
// Otherwise a new line item is appended.
func (s *CartStore) Add(c CartCandidate) error {
	s.mu.Lock()
	next := make([]model.CartItem, len(s.items), len(s.items)+1)
	copy(next, s.items)

	merged := false
	for i := range next {
		if next[i].ProductID == c.ProductID {
			next[i].Quantity += c.Quantity
			merged = true
			break
		}
	}
	if !merged {
		next = append(next, model.CartItem{
			ID:        fmt.Sprintf("%s-%d", c.ProductID, s.now().UnixMilli()),
			ProductID: c.ProductID,
			Title:     c.Title,
			Price:     c.Price,
			Quantity:  c.Quantity,
			Image:     c.Image,
		})
	}

	err := s.commit(next)
	count := s.countLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	logger.Debug("Cart item added", map[string]interface{}{
		"product_id": c.ProductID,
		"quantity":   c.Quantity,
		"merged":     merged,
	})
	s.notify(count)
	return nil
}

// Remove deletes the line item for productID. Removing a product that is not
// in the cart is a no-op.
func (s *CartStore) Remove(productID string) error {
	s.mu.Lock()
	kept := make([]model.CartItem, 0, len(s.items))
	for _, item := range s.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(s.items) {
		s.mu.Unlock()
		return nil
	}

	err := s.commit(kept)
	count := s.countLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify(count)
	return nil
}

// Update sets the quantity of the matching line item. A quantity of zero or
// less behaves exactly like Remove; an unknown product ID is a no-op.
func (s *CartStore) Update(productID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(productID)
	}

	s.mu.Lock()
	found := -1
	for i := range s.items {
		if s.items[i].ProductID == productID {
			found = i
			break
		}
	}
	if found < 0 {
		s.mu.Unlock()
		return nil
	}

	next := make([]model.CartItem, len(s.items))
	copy(next, s.items)
	next[found].Quantity = quantity

	err := s.commit(next)
	count := s.countLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify(count)
	return nil
}

// Clear empties the cart.
func (s *CartStore) Clear() error {
	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return nil
	}

	err := s.commit(nil)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify(0)
	return nil
}

// Total sums price × quantity over all line items.
func (s *CartStore) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// Count sums quantities over all line items (item count, not row count).
func (s *CartStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked()
}

// Items returns a copy of the line items in insertion order.
func (s *CartStore) Items() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *CartStore) countLocked() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// commit persists the candidate snapshot and adopts it only when the write
// succeeds. Must be called with the lock held.
func (s *CartStore) commit(next []model.CartItem) error {
	if next == nil {
		next = []model.CartItem{}
	}
	if err := s.persist.Save(cartSnapshot{Items: next}); err != nil {
		return fmt.Errorf("failed to persist cart snapshot: %w", err)
	}
	s.items = next
	return nil
}
