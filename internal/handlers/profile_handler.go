package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campusconnect/campusconnect-api/internal/middleware"
	"github.com/campusconnect/campusconnect-api/internal/models"
	"github.com/campusconnect/campusconnect-api/internal/services"
	"github.com/campusconnect/campusconnect-api/pkg/logger"
)

// ProfileHandler handles the authenticated user's profile endpoints
type ProfileHandler struct {
	profileService services.ProfileServiceInterface
}

func NewProfileHandler(profileService services.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	resp, err := h.profileService.GetProfile(c.Request.Context(), session.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateProfile handles POST /api/v1/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.UpdateProfileRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", bindJSONError(bindErr), bindErr)
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), session.UserID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "profile": profile})
}

// UploadPicture handles POST /api/v1/profile/picture
func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.UploadPictureRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", bindJSONError(bindErr), bindErr)
		return
	}

	imageURL, err := h.profileService.UploadPicture(c.Request.Context(), session.UserID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Profile picture uploaded",
		zap.Int64("user_id", session.UserID),
		zap.String("image_url", imageURL))

	c.JSON(http.StatusOK, gin.H{
		"message":   "Profile picture uploaded successfully",
		"image_url": imageURL,
	})
}
