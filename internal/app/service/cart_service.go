package service

import (
	"errors"

	"github.com/kishorkishor/storefront-backend/internal/app/model"
	"github.com/kishorkishor/storefront-backend/internal/app/store"
	"github.com/kishorkishor/storefront-backend/internal/session"
	"github.com/kishorkishor/storefront-backend/pkg/logger"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// CartView is the response shape for cart reads.
type CartView struct {
	Items []model.CartItem `json:"items"`
	Total float64          `json:"total"`
	Count int              `json:"count"`
}

type CartService interface {
	Get(sessionID string) (*CartView, error)
	Add(sessionID, productID string, quantity int) (*CartView, error)
	UpdateQuantity(sessionID, productID string, quantity int) (*CartView, error)
	Remove(sessionID, productID string) (*CartView, error)
	Clear(sessionID string) (*CartView, error)
	Count(sessionID string) (int, error)
	Total(sessionID string) (float64, error)
}

// Badge pushes are not the service's concern: the session manager
// subscribes the websocket hub to every store pair it builds, so committed
// mutations publish on their own.
type cartService struct {
	catalog  CatalogService
	sessions *session.Manager
}

func NewCartService(catalog CatalogService, sessions *session.Manager) CartService {
	return &cartService{catalog: catalog, sessions: sessions}
}

func (s *cartService) Get(sessionID string) (*CartView, error) {
	stores, err := s.sessions.Stores(sessionID)
	if err != nil {
		return nil, err
	}
	return cartView(stores.Cart), nil
}

// Add resolves the product, snapshots its effective price and merges it
// into the session's cart. The price recorded at add time is never
// refreshed on merge.
func (s *cartService) Add(sessionID, productID string, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.catalog.Get(productID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"session_id": sessionID,
				"product_id": productID,
			})
		}
		return nil, err
	}

	stores, err := s.sessions.Stores(sessionID)
	if err != nil {
		return nil, err
	}

	if err := stores.Cart.Add(store.CartCandidate{
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.EffectivePrice(),
		Quantity:  quantity,
		Image:     product.MainImage(),
	}); err != nil {
		return nil, err
	}
	return cartView(stores.Cart), nil
}

// UpdateQuantity sets the line item quantity; zero or less removes the item.
func (s *cartService) UpdateQuantity(sessionID, productID string, quantity int) (*CartView, error) {
	stores, err := s.sessions.Stores(sessionID)
	if err != nil {
		return nil, err
	}
	if err := stores.Cart.Update(productID, quantity); err != nil {
		return nil, err
	}
	return cartView(stores.Cart), nil
}

func (s *cartService) Remove(sessionID, productID string) (*CartView, error) {
	stores, err := s.sessions.Stores(sessionID)
	if err != nil {
		return nil, err
	}
	if err := stores.Cart.Remove(productID); err != nil {
		return nil, err
	}
	return cartView(stores.Cart), nil
}

func (s *cartService) Clear(sessionID string) (*CartView, error) {
	stores, err := s.sessions.Stores(sessionID)
	if err != nil {
		return nil, err
	}
	if err := stores.Cart.Clear(); err != nil {
		return nil, err
	}
	return cartView(stores.Cart), nil
}

func (s *cartService) Count(sessionID string) (int, error) {
	stores, err := s.sessions.Stores(sessionID)
	if err != nil {
		return 0, err
	}
	return stores.Cart.Count(), nil
}

func (s *cartService) Total(sessionID string) (float64, error) {
	stores, err := s.sessions.Stores(sessionID)
	if err != nil {
		return 0, err
	}
	return stores.Cart.Total(), nil
}

func cartView(cart *store.CartStore) *CartView {
	return &CartView{
		Items: cart.Items(),
		Total: cart.Total(),
		Count: cart.Count(),
	}
}
