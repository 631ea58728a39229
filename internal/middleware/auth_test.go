package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/campusconnect-api/internal/models"
	"github.com/campusconnect/campusconnect-api/pkg/jwt"
	"github.com/campusconnect/campusconnect-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.InitializeForTest()
}

func testTokenManager() *jwt.TokenManager {
	return jwt.NewTokenManager("middleware-test-secret", 1)
}

func issueToken(t *testing.T, tm *jwt.TokenManager, role string) string {
	t.Helper()
	token, err := tm.GenerateToken(42, "student@campus.edu", role)
	require.NoError(t, err)
	return token
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tm := testTokenManager()
	router := gin.New()

	var captured *models.Session
	router.Use(RequireAuth(tm))
	router.GET("/test", func(c *gin.Context) {
		session, err := GetSession(c)
		require.NoError(t, err)
		captured = session
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tm, "student"))

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured)
	assert.Equal(t, int64(42), captured.UserID)
	assert.Equal(t, "student@campus.edu", captured.Email)
	assert.Equal(t, models.UserRoleStudent, captured.Role)
}

func TestRequireAuth_CaseInsensitiveScheme(t *testing.T) {
	tm := testTokenManager()
	router := gin.New()
	router.Use(RequireAuth(tm))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "bearer "+issueToken(t, tm, "student"))

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	router := gin.New()

	handlerCalled := false
	router.Use(RequireAuth(testTokenManager()))
	router.GET("/test", func(c *gin.Context) {
		handlerCalled = true
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)

	router.ServeHTTP(w, req)

	assert.False(t, handlerCalled, "Handler should not be called without a token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ExpiredAndInvalidLookAlike(t *testing.T) {
	tm := testTokenManager()

	expired, err := tm.GenerateTokenWithExpiry(42, "student@campus.edu", "student", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	tokens := map[string]string{
		"expired":   expired,
		"garbage":   "not.a.token",
		"bad_sig":   issueToken(t, jwt.NewTokenManager("other-secret", 1), "student"),
		"no_scheme": "raw-token-without-bearer",
	}

	for name, token := range tokens {
		t.Run(name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequireAuth(tm))
			router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/test", nil)
			if name == "no_scheme" {
				req.Header.Set("Authorization", token)
			} else {
				req.Header.Set("Authorization", "Bearer "+token)
			}

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
		})
	}
}

func TestCurrentIdentity_AnonymousPassesThrough(t *testing.T) {
	router := gin.New()

	handlerCalled := false
	router.Use(CurrentIdentity(testTokenManager()))
	router.GET("/test", func(c *gin.Context) {
		handlerCalled = true
		_, err := GetSession(c)
		assert.ErrorIs(t, err, ErrSessionNotFound)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)

	router.ServeHTTP(w, req)

	assert.True(t, handlerCalled, "Handler should run for anonymous requests")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCurrentIdentity_ValidTokenSetsSession(t *testing.T) {
	tm := testTokenManager()
	router := gin.New()

	var captured *models.Session
	router.Use(CurrentIdentity(tm))
	router.GET("/test", func(c *gin.Context) {
		session, err := GetSession(c)
		require.NoError(t, err)
		captured = session
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tm, "student"))

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured)
	assert.Equal(t, int64(42), captured.UserID)
}

func TestCurrentIdentity_UnusableTokenServedAnonymously(t *testing.T) {
	tm := testTokenManager()

	expired, err := tm.GenerateTokenWithExpiry(42, "student@campus.edu", "student", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	tokens := map[string]string{
		"garbage": "bogus",
		"expired": expired,
		"bad_sig": issueToken(t, jwt.NewTokenManager("other-secret", 1), "student"),
	}

	for name, token := range tokens {
		t.Run(name, func(t *testing.T) {
			router := gin.New()

			handlerCalled := false
			router.Use(CurrentIdentity(tm))
			router.GET("/test", func(c *gin.Context) {
				handlerCalled = true
				_, err := GetSession(c)
				assert.ErrorIs(t, err, ErrSessionNotFound)
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			router.ServeHTTP(w, req)

			assert.True(t, handlerCalled, "Handler should run without an identity")
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestRequireAdmin_StudentForbidden(t *testing.T) {
	tm := testTokenManager()
	router := gin.New()

	handlerCalled := false
	router.Use(RequireAuth(tm), RequireAdmin())
	router.GET("/admin", func(c *gin.Context) {
		handlerCalled = true
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tm, "student"))

	router.ServeHTTP(w, req)

	assert.False(t, handlerCalled, "Handler should not be called for non-admin sessions")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin_AdminAllowed(t *testing.T) {
	tm := testTokenManager()
	router := gin.New()
	router.Use(RequireAuth(tm), RequireAdmin())
	router.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tm, "admin"))

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
