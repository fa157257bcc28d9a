package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kishorkishor/storefront-backend/internal/app/model"
	"github.com/kishorkishor/storefront-backend/internal/app/query"
	"github.com/kishorkishor/storefront-backend/internal/persist"
	"github.com/kishorkishor/storefront-backend/pkg/logger"
)

type wishlistSnapshot struct {
	Items []model.WishlistItem `json:"items"`
}

// WishlistCandidate is the caller-supplied shape for Add.
type WishlistCandidate struct {
	ProductID        string
	Title            string
	Price            float64
	SalePrice        *float64
	Image            string
	ShortDescription string
	Category         model.Category
	Rating           float64
}

// WishlistStore maintains one session's saved products. Same construction,
// commit and notification model as CartStore; at most one entry per
// product ID.
type WishlistStore struct {
	base
	items []model.WishlistItem
}

// NewWishlistStore loads the persisted snapshot, if any. Typed unmarshalling
// restores added_at to time.Time, so date sorts stay correct across a
// restart.
func NewWishlistStore(p persist.Store) (*WishlistStore, error) {
	s := &WishlistStore{base: newBase(p)}

	var snap wishlistSnapshot
	if err := p.Load(&snap); err != nil {
		if !errors.Is(err, persist.ErrNotFound) {
			return nil, fmt.Errorf("failed to load wishlist snapshot: %w", err)
		}
	}
	s.items = snap.Items
	return s, nil
}

// Add saves the candidate. Re-adding a product replaces its display fields
// but keeps the original entry ID and AddedAt timestamp.
func (s *WishlistStore) Add(c WishlistCandidate) error {
	s.mu.Lock()
	next := make([]model.WishlistItem, len(s.items), len(s.items)+1)
	copy(next, s.items)

	replaced := false
	for i := range next {
		if next[i].ProductID == c.ProductID {
			item := buildWishlistItem(c)
			item.ID = next[i].ID
			item.AddedAt = next[i].AddedAt
			next[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		item := buildWishlistItem(c)
		item.ID = "wishlist-" + c.ProductID
		item.AddedAt = s.now()
		next = append(next, item)
	}

	err := s.commit(next)
	count := len(s.items)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	logger.Debug("Wishlist item saved", map[string]interface{}{
		"product_id": c.ProductID,
		"replaced":   replaced,
	})
	s.notify(count)
	return nil
}

// Remove deletes the entry for productID; unknown IDs are a no-op.
func (s *WishlistStore) Remove(productID string) error {
	s.mu.Lock()
	kept := make([]model.WishlistItem, 0, len(s.items))
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
	count := len(s.items)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify(count)
	return nil
}

// Clear empties the wishlist.
func (s *WishlistStore) Clear() error {
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

// IsInWishlist reports whether productID has an entry.
func (s *WishlistStore) IsInWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Count returns the number of distinct entries.
func (s *WishlistStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Items returns a copy of the entries in insertion order.
func (s *WishlistStore) Items() []model.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.WishlistItem, len(s.items))
	copy(items, s.items)
	return items
}

// Query filters and sorts the wishlist with the product list semantics:
// case-insensitive substring search over title and description, category
// match by ID or slug, stable sort by added/price/name/rating with the
// effective price preferring the sale price. The created sort key orders by
// AddedAt.
func (s *WishlistStore) Query(params query.Params) []model.WishlistItem {
	items := s.Items()

	filtered := items[:0]
	for _, item := range items {
		if params.Search != "" && !wishlistMatchesSearch(item, params.Search) {
			continue
		}
		if params.Category != "" &&
			item.Category.ID != params.Category && item.Category.Slug != params.Category {
			continue
		}
		filtered = append(filtered, item)
	}

	cmp := wishlistComparator(params.SortBy)
	sort.SliceStable(filtered, func(i, j int) bool {
		c := cmp(filtered[i], filtered[j])
		if params.SortOrder == query.OrderDesc {
			return c > 0
		}
		return c < 0
	})
	return filtered
}

func wishlistMatchesSearch(item model.WishlistItem, term string) bool {
	q := strings.ToLower(term)
	return strings.Contains(strings.ToLower(item.Title), q) ||
		strings.Contains(strings.ToLower(item.ShortDescription), q)
}

func wishlistComparator(key query.SortKey) func(a, b model.WishlistItem) int {
	switch key {
	case query.SortPrice:
		return func(a, b model.WishlistItem) int {
			return compareFloat(a.EffectivePrice(), b.EffectivePrice())
		}
	case query.SortRating:
		return func(a, b model.WishlistItem) int {
			return compareFloat(a.Rating, b.Rating)
		}
	case query.SortCreated:
		return func(a, b model.WishlistItem) int {
			if a.AddedAt.Equal(b.AddedAt) {
				return 0
			}
			if a.AddedAt.Before(b.AddedAt) {
				return -1
			}
			return 1
		}
	default:
		return func(a, b model.WishlistItem) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func buildWishlistItem(c WishlistCandidate) model.WishlistItem {
	return model.WishlistItem{
		ProductID:        c.ProductID,
		Title:            c.Title,
		Price:            c.Price,
		SalePrice:        c.SalePrice,
		Image:            c.Image,
		ShortDescription: c.ShortDescription,
		Category:         c.Category,
		Rating:           c.Rating,
	}
}

// commit persists the candidate snapshot and adopts it only when the write
// succeeds. Must be called with the lock held.
func (s *WishlistStore) commit(next []model.WishlistItem) error {
	if next == nil {
		next = []model.WishlistItem{}
	}
	if err := s.persist.Save(wishlistSnapshot{Items: next}); err != nil {
		return fmt.Errorf("failed to persist wishlist snapshot: %w", err)
	}
	s.items = next
	return nil
}
