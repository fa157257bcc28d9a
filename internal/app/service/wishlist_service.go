package service

import (
	"github.com/kishorkishor/storefront-backend/internal/app/model"
	"github.com/kishorkishor/storefront-backend/internal/app/query"
	"github.com/kishorkishor/storefront-backend/internal/app/store"
	"github.com/kishorkishor/storefront-backend/internal/session"
)

// WishlistView is the response shape for wishlist reads.
type WishlistView struct {
	Items []model.WishlistItem `json:"items"`
	Count int                  `json:"count"`
}

type WishlistService interface {
	List(sessionID string, params query.Params) (*WishlistView, error)
	Add(sessionID, productID string) (*WishlistView, error)
	Remove(sessionID, productID string) (*WishlistView, error)
	Toggle(sessionID, productID string) (*WishlistView, bool, error)
	Clear(sessionID string) (*WishlistView, error)
	Contains(sessionID, productID string) (bool, error)
	Count(sessionID string) (int, error)
}

type wishlistService struct {
	catalog  CatalogService
	sessions *session.Manager
}

func NewWishlistService(catalog CatalogService, sessions *session.Manager) WishlistService {
	return &wishlistService{catalog: catalog, sessions: sessions}
}

// List returns the session's wishlist filtered and sorted by the usual
// product list parameters. Pagination does not apply; wishlists are small.
func (s *wishlistService) List(sessionID string, params query.Params) (*WishlistView, error) {
	stores, err := s.sessions.Stores(sessionID)
	if err != nil {
		return nil, err
	}
	items := stores.Wishlist.Query(params)
	return &WishlistView{Items: items, Count: stores.Wishlist.Count()}, nil
}

// Add saves the product. Re-adding refreshes the display fields but keeps
// the original saved-at timestamp.
func (s *wishlistService) Add(sessionID, productID string) (*WishlistView, error) {
	product, err := s.catalog.Get(productID)
	if err != nil {
		return nil, err
	}

	stores, err := s.sessions.Stores(sessionID)
	if err != nil {
		return nil, err
	}

	if err := stores.Wishlist.Add(wishlistCandidate(product)); err != nil {
		return nil, err
	}
	return wishlistView(stores.Wishlist), nil
}

func (s *wishlistService) Remove(sessionID, productID string) (*WishlistView, error) {
	stores, err := s.sessions.Stores(sessionID)
	if err != nil {
		return nil, err
	}
	if err := stores.Wishlist.Remove(productID); err != nil {
		return nil, err
	}
	return wishlistView(stores.Wishlist), nil
}

// Toggle adds the product when absent and removes it when present. The
// returned bool reports whether the product is saved after the call.
func (s *wishlistService) Toggle(sessionID, productID string) (*WishlistView, bool, error) {
	stores, err := s.sessions.Stores(sessionID)
	if err != nil {
		return nil, false, err
	}

	if stores.Wishlist.IsInWishlist(productID) {
		view, err := s.Remove(sessionID, productID)
		return view, false, err
	}

	view, err := s.Add(sessionID, productID)
	if err != nil {
		return nil, false, err
	}
	return view, true, nil
}

func (s *wishlistService) Clear(sessionID string) (*WishlistView, error) {
	stores, err := s.sessions.Stores(sessionID)
	if err != nil {
		return nil, err
	}
	if err := stores.Wishlist.Clear(); err != nil {
		return nil, err
	}
	return wishlistView(stores.Wishlist), nil
}

func (s *wishlistService) Contains(sessionID, productID string) (bool, error) {
	stores, err := s.sessions.Stores(sessionID)
	if err != nil {
		return false, err
	}
	return stores.Wishlist.IsInWishlist(productID), nil
}

func (s *wishlistService) Count(sessionID string) (int, error) {
	stores, err := s.sessions.Stores(sessionID)
	if err != nil {
		return 0, err
	}
	return stores.Wishlist.Count(), nil
}

func wishlistCandidate(p *model.Product) store.WishlistCandidate {
	return store.WishlistCandidate{
		ProductID:        p.ID,
		Title:            p.Title,
		Price:            p.Price,
		SalePrice:        p.SalePrice,
		Image:            p.MainImage(),
		ShortDescription: p.ShortDescription,
		Category:         p.Category,
		Rating:           p.AverageRating,
	}
}

func wishlistView(w *store.WishlistStore) *WishlistView {
	return &WishlistView{Items: w.Items(), Count: w.Count()}
}
