// Package websocket pushes live badge counts (cart quantity, wishlist size)
// to a session's open tabs so the header stays in sync without polling.
package websocket

import (
	"encoding/json"
	"sync"

	"github.com/kishorkishor/storefront-backend/pkg/logger"
)

// BadgeUpdate is the message pushed after every cart or wishlist mutation.
type BadgeUpdate struct {
	Type          string `json:"type"`
	CartCount     int    `json:"cart_count"`
	WishlistCount int    `json:"wishlist_count"`
}

// Client is one connected tab.
type Client struct {
	Hub       *Hub
	Conn      *Conn
	SessionID string
	Send      chan []byte
}

// Hub tracks clients per session. A session may have several tabs open;
// every tab gets every update.
type Hub struct {
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *sessionMessage

	mu sync.RWMutex
}

type sessionMessage struct {
	sessionID string
	payload   []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan *sessionMessage, 256),
	}
}

// Run processes registrations and broadcasts. Call it once in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			logger.Debug("Badge client registered", map[string]interface{}{
				"session_id": client.SessionID,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if list, ok := h.clients[client.SessionID]; ok {
				kept := make([]*Client, 0, len(list))
				for _, c := range list {
					if c != client {
						kept = append(kept, c)
					}
				}
				if len(kept) == 0 {
					delete(h.clients, client.SessionID)
				} else {
					h.clients[client.SessionID] = kept
				}
				close(client.Send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients[msg.sessionID] {
				select {
				case client.Send <- msg.payload:
				default:
					// Slow consumer; drop the update rather than block
					// the hub.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// PublishBadges implements session.BadgePublisher.
func (h *Hub) PublishBadges(sessionID string, cartCount, wishlistCount int) {
	payload, err := json.Marshal(BadgeUpdate{
		Type:          "badge_update",
		CartCount:     cartCount,
		WishlistCount: wishlistCount,
	})
	if err != nil {
		logger.Error("Failed to encode badge update", err, nil)
		return
	}

	select {
	case h.broadcast <- &sessionMessage{sessionID: sessionID, payload: payload}:
	default:
		logger.Warn("Badge broadcast queue full, dropping update", map[string]interface{}{
			"session_id": sessionID,
		})
	}
}
