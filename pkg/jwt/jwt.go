package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claims")
)

// SessionClaims represents the JWT claims for an authenticated user session.
//
// The wire payload is exactly {"user_id", "email", "role", "exp"} so tokens
// round-trip with previously issued credentials. Field order matters for
// byte-identical re-encoding; RegisteredClaims contributes only "exp" because
// no other registered claim is ever set.
type SessionClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager handles JWT token generation and validation
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a new TokenManager. The secret is process-wide
// configuration injected here so tests can use distinct secrets.
func NewTokenManager(secret string, ttlHours int) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    time.Duration(ttlHours) * time.Hour,
	}
}

// GenerateToken creates a signed session token for a user
func (tm *TokenManager) GenerateToken(userID int64, email, role string) (string, error) {
	return tm.GenerateTokenWithExpiry(userID, email, role, time.Now().Add(tm.ttl))
}

// GenerateTokenWithExpiry creates a signed session token with an explicit
// expiry. Deterministic given identical inputs and secret.
func (tm *TokenManager) GenerateTokenWithExpiry(userID int64, email, role string, expiresAt time.Time) (string, error) {
	claims := SessionClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateToken validates a session token and returns its claims.
//
// Fails with ErrExpiredToken when "exp" is not strictly in the future, and
// ErrInvalidToken on any structural problem: wrong segment count, bad
// base64/JSON, signature mismatch (constant-time compare inside the HMAC
// verifier), unexpected signing method, or type-mismatched claim fields.
// An absent "exp" claim is accepted; every token this service issues carries
// one, but historical verifier behavior is preserved for interoperability.
func (tm *TokenManager) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaim
	}

	if claims.UserID <= 0 || claims.Email == "" || claims.Role == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// GetExpirationTime returns the token expiration duration
func (tm *TokenManager) GetExpirationTime() time.Duration {
	return tm.ttl
}
