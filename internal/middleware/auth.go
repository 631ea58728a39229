package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campusconnect/campusconnect-api/internal/models"
	"github.com/campusconnect/campusconnect-api/pkg/jwt"
	"github.com/campusconnect/campusconnect-api/pkg/logger"
	"github.com/campusconnect/campusconnect-api/pkg/metrics"
)

const (
	// SessionContextKey is the key used to store the session in context
	SessionContextKey = "campus_session"
)

var (
	ErrSessionNotFound = errors.New("session not found in context")
	ErrInvalidSession  = errors.New("invalid session type")
)

// sessionFromRequest extracts and validates the bearer token from the
// Authorization header. A missing header is not an error and yields a nil
// session; a present-but-invalid token returns an error.
func sessionFromRequest(c *gin.Context, tokenManager *jwt.TokenManager) (*models.Session, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, nil
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, jwt.ErrInvalidToken
	}

	claims, err := tokenManager.ValidateToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   models.UserRole(claims.Role),
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return session, nil
}

// CurrentIdentity resolves the request identity when a valid bearer token
// is present and stores it in context. A missing, malformed, or expired
// token yields no identity rather than a rejection; handlers that need a
// session use RequireAuth instead.
func CurrentIdentity(tokenManager *jwt.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessionFromRequest(c, tokenManager)
		if err != nil {
			outcome := "invalid"
			if errors.Is(err, jwt.ErrExpiredToken) {
				outcome = "expired"
			}
			metrics.AuthAttempts.WithLabelValues("token", outcome).Inc()
			logger.Debug("Ignoring unusable bearer token on optional-auth route",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			c.Next()
			return
		}
		if session != nil {
			c.Set(SessionContextKey, session)
		}
		c.Next()
	}
}

// RequireAuth rejects requests that do not carry a valid bearer token
func RequireAuth(tokenManager *jwt.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessionFromRequest(c, tokenManager)
		if err != nil {
			rejectUnauthorized(c, err)
			return
		}
		if session == nil {
			metrics.AuthAttempts.WithLabelValues("token", "missing").Inc()
			logger.Warn("Missing bearer token",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(SessionContextKey, session)
		c.Next()
	}
}

// RequireAdmin rejects requests whose session does not carry the admin
// role. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := GetSession(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !session.IsAdmin() {
			logger.Warn("Admin access denied",
				zap.Int64("user_id", session.UserID),
				zap.String("path", c.Request.URL.Path),
			)
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetSession extracts the session from context
func GetSession(c *gin.Context) (*models.Session, error) {
	val, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, ErrSessionNotFound
	}

	session, ok := val.(*models.Session)
	if !ok {
		return nil, ErrInvalidSession
	}

	return session, nil
}

// rejectUnauthorized answers a failed token validation. Expired and invalid
// tokens get the same response body so callers cannot probe token state.
func rejectUnauthorized(c *gin.Context, err error) {
	_ = c.Error(fmt.Errorf("invalid bearer token: %w", err)) //nolint:errcheck

	outcome := "invalid"
	if errors.Is(err, jwt.ErrExpiredToken) {
		outcome = "expired"
	}
	metrics.AuthAttempts.WithLabelValues("token", outcome).Inc()

	c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	c.Abort()
}
