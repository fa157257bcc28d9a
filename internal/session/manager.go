package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kishorkishor/storefront-backend/internal/app/store"
	"github.com/kishorkishor/storefront-backend/internal/persist"
	"github.com/kishorkishor/storefront-backend/pkg/logger"
)

// Snapshot namespaces. The session ID is appended so every session gets its
// own slot in the shared backend.
const (
	cartNamespace     = "cart-storage"
	wishlistNamespace = "wishlist-storage"
)

// Stores is the per-session store pair.
type Stores struct {
	Cart     *store.CartStore
	Wishlist *store.WishlistStore
}

// BadgePublisher receives both counts of a session after one of its stores
// commits a mutation. The websocket hub implements it.
type BadgePublisher interface {
	PublishBadges(sessionID string, cartCount, wishlistCount int)
}

type sessionEntry struct {
	stores   *Stores
	lastSeen time.Time
}

// Manager hands out the store pair for a session ID, constructing and
// caching it on first use. Construction replays the persisted snapshots, so
// a returning session sees its previous cart, and subscribes the badge
// publisher to both stores. A nil publisher disables pushes.
type Manager struct {
	factory persist.Factory
	badges  BadgePublisher
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

func NewManager(factory persist.Factory, badges BadgePublisher) *Manager {
	return &Manager{
		factory:  factory,
		badges:   badges,
		now:      time.Now,
		sessions: make(map[string]*sessionEntry),
	}
}

// NewSessionID mints a fresh session identifier.
func (m *Manager) NewSessionID() string {
	return uuid.NewString()
}

// Stores returns the store pair for sessionID.
func (m *Manager) Stores(sessionID string) (*Stores, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.sessions[sessionID]; ok {
		e.lastSeen = m.now()
		return e.stores, nil
	}

	cart, err := store.NewCartStore(m.factory(namespaced(cartNamespace, sessionID)))
	if err != nil {
		return nil, fmt.Errorf("failed to open cart store: %w", err)
	}
	wishlist, err := store.NewWishlistStore(m.factory(namespaced(wishlistNamespace, sessionID)))
	if err != nil {
		return nil, fmt.Errorf("failed to open wishlist store: %w", err)
	}

	if m.badges != nil {
		cart.Subscribe(func(count int) {
			m.badges.PublishBadges(sessionID, count, wishlist.Count())
		})
		wishlist.Subscribe(func(count int) {
			m.badges.PublishBadges(sessionID, cart.Count(), count)
		})
	}

	s := &Stores{Cart: cart, Wishlist: wishlist}
	m.sessions[sessionID] = &sessionEntry{stores: s, lastSeen: m.now()}

	logger.Debug("Session stores created", map[string]interface{}{
		"session_id": sessionID,
	})
	return s, nil
}

// Evict drops the cached store pair for sessionID. The persisted snapshots
// stay; the next Stores call replays them.
func (m *Manager) Evict(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

// SweepIdle evicts every store pair not touched for at least maxIdle and
// reports how many were dropped. Snapshots persist, so a swept session that
// comes back replays its state.
func (m *Manager) SweepIdle(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxIdle)
	evicted := 0
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		logger.Debug("Idle sessions evicted", map[string]interface{}{
			"count":     evicted,
			"remaining": len(m.sessions),
		})
	}
	return evicted
}

func namespaced(base, sessionID string) string {
	return base + ":" + sessionID
}
