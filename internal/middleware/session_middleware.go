package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kishorkishor/storefront-backend/internal/errors"
	"github.com/kishorkishor/storefront-backend/internal/session"
)

// SessionIDKey is the gin context key holding the resolved session ID.
const SessionIDKey = "session_id"

// SessionMiddleware resolves the caller's session from a signed cookie,
// minting a new session when the cookie is missing, expired or tampered
// with. Every request leaves with a valid session cookie.
type SessionMiddleware struct {
	manager    *session.Manager
	secret     string
	cookieName string
	ttl        time.Duration
}

func NewSessionMiddleware(manager *session.Manager, secret, cookieName string, ttl time.Duration) *SessionMiddleware {
	return &SessionMiddleware{
		manager:    manager,
		secret:     secret,
		cookieName: cookieName,
		ttl:        ttl,
	}
}

// Resolve attaches the session ID to the request context.
func (m *SessionMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		sessionID := ""
		if cookie, err := c.Cookie(m.cookieName); err == nil {
			// A bad or expired cookie falls through to a fresh session
			// rather than failing the request.
			if id, parseErr := session.ParseToken(cookie, m.secret); parseErr == nil {
				sessionID = id
			}
		}

		if sessionID == "" {
			sessionID = m.manager.NewSessionID()
			token, err := session.SignToken(sessionID, m.secret, m.ttl)
			if err != nil {
				log.Error("Failed to sign session token", err, nil)
				apperrors.InternalError(c, "")
				c.Abort()
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(m.cookieName, token, int(m.ttl.Seconds()), "/", "", false, true)
			log.Debug("New session issued", map[string]interface{}{
				"session_id": sessionID,
			})
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session ID set by Resolve.
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
