package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusconnect/campusconnect-api/internal/models"
	apperrors "github.com/campusconnect/campusconnect-api/pkg/errors"
	"github.com/campusconnect/campusconnect-api/pkg/jwt"
	"github.com/campusconnect/campusconnect-api/pkg/logger"
	"github.com/campusconnect/campusconnect-api/pkg/metrics"
)

// AuthService handles registration and credential login. Sessions are
// stateless bearer tokens; logout happens client-side by discarding the
// token.
type AuthService struct {
	userRepo     UserStore
	profileRepo  ProfileStore
	tokenManager *jwt.TokenManager
}

func NewAuthService(userRepo UserStore, profileRepo ProfileStore, tokenManager *jwt.TokenManager) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		tokenManager: tokenManager,
	}
}

// Register creates a student account and issues its first session token.
// Accounts always start with the student role; admins are promoted out of
// band.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	start := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", zap.Error(err))
		return nil, apperrors.InternalError("failed to process credentials")
	}

	user, err := s.userRepo.Create(ctx, req.Email, string(hash), req.Campus, models.UserRoleStudent)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			metrics.AuthAttempts.WithLabelValues("register", "duplicate").Inc()
			return nil, apperrors.ConflictError("email already registered")
		}
		logger.Error("Failed to create user", zap.Error(err))
		metrics.AuthAttempts.WithLabelValues("register", "error").Inc()
		return nil, err
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		logger.Error("Failed to generate token", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, apperrors.InternalError("failed to create session")
	}

	metrics.AuthAttempts.WithLabelValues("register", "success").Inc()
	logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("campus", user.Campus),
		zap.Duration("duration", time.Since(start)))

	return &models.AuthResponse{
		Message: "Registration successful",
		Token:   token,
		User:    user.ToInfo(),
	}, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password return the same error so the endpoint cannot be used to
// probe for accounts.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	start := time.Now()

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Burn a bcrypt comparison so unknown emails take as long as
			// wrong passwords.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password)) //nolint:errcheck
			metrics.AuthAttempts.WithLabelValues("login", "unknown_email").Inc()
			return nil, apperrors.ErrUnauthorized
		}
		logger.Error("Failed to look up user", zap.Error(err))
		metrics.AuthAttempts.WithLabelValues("login", "error").Inc()
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		metrics.AuthAttempts.WithLabelValues("login", "wrong_password").Inc()
		logger.Warn("Failed login attempt", zap.Int64("user_id", user.ID))
		return nil, apperrors.ErrUnauthorized
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		logger.Error("Failed to generate token", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, apperrors.InternalError("failed to create session")
	}

	metrics.AuthAttempts.WithLabelValues("login", "success").Inc()
	logger.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.Duration("duration", time.Since(start)))

	return &models.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.ToInfo(),
	}, nil
}

// Me returns the account behind a session together with its profile.
// Profile is nil until the user fills one in.
func (s *AuthService) Me(ctx context.Context, userID int64) (*models.MeResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &models.MeResponse{User: user.ToInfo()}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return resp, nil
		}
		return nil, err
	}
	resp.Profile = profile

	return resp, nil
}

// dummyHash is a bcrypt hash of a throwaway value, used to equalize login
// timing for unknown emails.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
