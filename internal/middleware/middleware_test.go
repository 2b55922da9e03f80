package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"datenight/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-key-for-testing-only"

func newRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware(secret, nil)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		subject, _ := c.Get(auth.ContextSubject)
		c.JSON(http.StatusOK, gin.H{"subject": subject})
	})
	router.GET("/test", handlers...)
	return router
}

func do(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := auth.GenerateToken(secret, "ops@datenight.la", role, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware_MissingAuthHeader(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, do(newRouter(), "").Code)
}

func TestAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, do(newRouter(), "InvalidFormat").Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, do(newRouter(), "Bearer invalid_token_xyz").Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	w := do(newRouter(), "Bearer "+token(t, auth.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"subject":"ops@datenight.la"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	router := newRouter(auth.RoleAdmin)

	assert.Equal(t, http.StatusOK, do(router, "Bearer "+token(t, auth.RoleAdmin)).Code)
	assert.Equal(t, http.StatusForbidden, do(router, "Bearer "+token(t, auth.RoleEditor)).Code)
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test", RequireRole(auth.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
