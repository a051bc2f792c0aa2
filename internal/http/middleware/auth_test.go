package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func adminRouter(s []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.POST("/admin", RequireAdmin(s), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func callAdmin(r http.Handler, token string) int {
	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRequireAdmin(t *testing.T) {
	r := adminRouter(secret)

	valid, err := IssueAdminToken(secret, time.Minute, time.Now())
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, callAdmin(r, valid))

	expired, err := IssueAdminToken(secret, time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, callAdmin(r, expired))

	otherKey, err := IssueAdminToken([]byte("other"), time.Minute, time.Now())
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, callAdmin(r, otherKey))

	noRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "guest",
		"exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString(secret)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, callAdmin(r, noRole))

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin"}).SignedString(secret)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, callAdmin(r, noExp))

	assert.Equal(t, http.StatusUnauthorized, callAdmin(r, ""))
}

func TestRequireAdminDisabled(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, callAdmin(adminRouter(nil), "anything"))

	_, err := IssueAdminToken(nil, time.Minute, time.Now())
	assert.Error(t, err)
}

func TestRequestIDKeepsIncomingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))
}
