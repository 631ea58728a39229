package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/campusconnect/campusconnect-api/internal/models"
	apperrors "github.com/campusconnect/campusconnect-api/pkg/errors"
	"github.com/campusconnect/campusconnect-api/pkg/logger"
)

// ProfileService handles profile reads, partial updates, and picture
// uploads.
type ProfileService struct {
	profileRepo   ProfileStore
	userRepo      UserStore
	profileCache  ProfileCacheUpdater
	storageClient ImageStore
}

func NewProfileService(profileRepo ProfileStore, userRepo UserStore, profileCache ProfileCacheUpdater, storageClient ImageStore) *ProfileService {
	return &ProfileService{
		profileRepo:   profileRepo,
		userRepo:      userRepo,
		profileCache:  profileCache,
		storageClient: storageClient,
	}
}

// GetProfile returns the account together with its profile. A user who has
// not filled anything in yet gets a nil profile, not an error.
func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*models.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &models.ProfileResponse{
		Email:  user.Email,
		Campus: user.Campus,
		Role:   user.Role,
	}

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

// UpdateProfile applies the provided fields and refreshes the candidate
// cache so match results pick the edit up immediately.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, req *models.UpdateProfileRequest) (*models.Profile, error) {
	if !req.HasUpdates() {
		return nil, apperrors.InvalidInputError("body", "no profile fields provided")
	}

	profile, err := s.profileRepo.Upsert(ctx, userID, req)
	if err != nil {
		logger.Error("Failed to update profile", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	if cacheErr := s.profileCache.UpdateProfile(ctx, userID); cacheErr != nil {
		// Stale until the next scheduled refresh; the write itself succeeded.
		logger.Warn("Failed to refresh profile cache entry",
			zap.Int64("user_id", userID),
			zap.Error(cacheErr))
	}

	logger.Info("Profile updated", zap.Int64("user_id", userID))
	return profile, nil
}

// UploadPicture validates, stores the image in object storage, and records
// the resulting URL on the profile.
func (s *ProfileService) UploadPicture(ctx context.Context, userID int64, req *models.UploadPictureRequest) (string, error) {
	if s.storageClient == nil {
		logger.Warn("Picture upload rejected, object storage is not configured",
			zap.Int64("user_id", userID))
		return "", apperrors.InternalError("image storage is not configured")
	}

	start := time.Now()

	if err := s.storageClient.ValidateImageType(req.ContentType); err != nil {
		return "", apperrors.InvalidInputError("content_type", err.Error())
	}
	if err := s.storageClient.ValidateImageSize(req.ImageData); err != nil {
		return "", apperrors.InvalidInputError("image_data", err.Error())
	}

	key := fmt.Sprintf("profiles/%d/%d", userID, time.Now().Unix())
	url, err := s.storageClient.UploadImage(ctx, req.ImageData, key, req.ContentType)
	if err != nil {
		logger.Error("Failed to upload profile picture",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return "", apperrors.InternalError("failed to store image")
	}

	if err := s.profileRepo.SetPicture(ctx, userID, url); err != nil {
		logger.Error("Failed to save picture URL", zap.Int64("user_id", userID), zap.Error(err))
		return "", err
	}

	if cacheErr := s.profileCache.UpdateProfile(ctx, userID); cacheErr != nil {
		logger.Warn("Failed to refresh profile cache entry",
			zap.Int64("user_id", userID),
			zap.Error(cacheErr))
	}

	logger.Info("Profile picture uploaded",
		zap.Int64("user_id", userID),
		zap.Duration("duration", time.Since(start)))

	return url, nil
}
