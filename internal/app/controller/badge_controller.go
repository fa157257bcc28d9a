package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/kishorkishor/storefront-backend/internal/middleware"
	"github.com/kishorkishor/storefront-backend/internal/websocket"
)

// BadgeController upgrades badge connections and hands them to the hub.
type BadgeController struct {
	hub      *websocket.Hub
	upgrader gorillaws.Upgrader
}

func NewBadgeController(hub *websocket.Hub, allowedOrigins []string) *BadgeController {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return &BadgeController{
		hub: hub,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins[origin]
			},
		},
	}
}

// Connect upgrades the request to a websocket and streams badge updates
// for the caller's session.
// GET /ws/badges
func (ctrl *BadgeController) Connect(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("Badge connection upgrade failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	client := &websocket.Client{
		Hub:       ctrl.hub,
		Conn:      &websocket.Conn{Conn: conn},
		SessionID: sessionID,
		Send:      make(chan []byte, 16),
	}
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
