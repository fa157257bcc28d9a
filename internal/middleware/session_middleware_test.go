package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kishorkishor/storefront-backend/internal/persist"
	"github.com/kishorkishor/storefront-backend/internal/session"
)

const (
	testSecret     = "test-session-secret"
	testCookieName = "storefront_session"
)

func setupSessionTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := session.NewManager(persist.MemoryFactory(), nil)
	m := NewSessionMiddleware(manager, testSecret, testCookieName, time.Hour)

	router := gin.New()
	router.GET("/whoami", m.Resolve(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"session_id": GetSessionID(c)})
	})
	return router
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == testCookieName {
			return cookie
		}
	}
	return nil
}

func TestSessionMiddleware_IssuesCookieOnFirstRequest(t *testing.T) {
	router := setupSessionTest(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestSessionMiddleware_ReusesValidCookie(t *testing.T) {
	router := setupSessionTest(t)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	cookie := sessionCookie(t, first)
	require.NotNil(t, cookie)

	// The cookie carries the session ID; a second request with it resolves
	// to the same session.
	sessionID, err := session.ParseToken(cookie.Value, testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookie)
	second := httptest.NewRecorder()
	router.ServeHTTP(second, req)

	require.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), sessionID)
	// No replacement cookie needed.
	assert.Nil(t, sessionCookie(t, second))
}

func TestSessionMiddleware_TamperedCookieGetsFreshSession(t *testing.T) {
	router := setupSessionTest(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "garbage-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// The bad cookie is replaced with a valid one.
	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	_, err := session.ParseToken(cookie.Value, testSecret)
	assert.NoError(t, err)
}
