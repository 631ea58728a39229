package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusconnect/campusconnect-api/internal/middleware"
	"github.com/campusconnect/campusconnect-api/internal/models"
	"github.com/campusconnect/campusconnect-api/internal/services"
)

// AdminHandler handles moderation and reporting endpoints. Routes are
// mounted behind RequireAdmin.
type AdminHandler struct {
	adminService services.AdminServiceInterface
}

func NewAdminHandler(adminService services.AdminServiceInterface) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GetStats handles GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListPendingConfessions handles GET /api/v1/admin/confessions/pending.
// Optional query parameters: limit, offset.
func (h *AdminHandler) ListPendingConfessions(c *gin.Context) {
	limit, offset := 0, 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, convErr := strconv.Atoi(limitStr); convErr == nil {
			limit = parsed
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsed, convErr := strconv.Atoi(offsetStr); convErr == nil {
			offset = parsed
		}
	}

	pending, err := h.adminService.ListPendingConfessions(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if pending == nil {
		pending = []*models.PendingConfession{}
	}
	c.JSON(http.StatusOK, gin.H{"confessions": pending})
}

// ApproveConfession handles POST /api/v1/admin/confessions/:id/approve
func (h *AdminHandler) ApproveConfession(c *gin.Context) {
	confessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.ApproveConfession(c.Request.Context(), confessionID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Confession approved"})
}

// DeleteConfession handles DELETE /api/v1/admin/confessions/:id
func (h *AdminHandler) DeleteConfession(c *gin.Context) {
	confessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteConfession(c.Request.Context(), confessionID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Confession deleted"})
}

// CreateAnnouncement handles POST /api/v1/admin/announcements
func (h *AdminHandler) CreateAnnouncement(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.AnnouncementRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", bindJSONError(bindErr), bindErr)
		return
	}

	announcement, err := h.adminService.CreateAnnouncement(c.Request.Context(), session.UserID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Announcement published",
		"announcement": announcement,
	})
}

// ListAnnouncements handles GET /api/v1/admin/announcements
func (h *AdminHandler) ListAnnouncements(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, convErr := strconv.Atoi(limitStr); convErr == nil {
			limit = parsed
		}
	}

	announcements, err := h.adminService.ListAnnouncements(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if announcements == nil {
		announcements = []*models.Announcement{}
	}
	c.JSON(http.StatusOK, gin.H{"announcements": announcements})
}
