package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusconnect/campusconnect-api/internal/middleware"
	"github.com/campusconnect/campusconnect-api/internal/models"
	"github.com/campusconnect/campusconnect-api/internal/services"
)

// ConfessionHandler handles the anonymous confession feed endpoints
type ConfessionHandler struct {
	confessionService services.ConfessionServiceInterface
}

func NewConfessionHandler(confessionService services.ConfessionServiceInterface) *ConfessionHandler {
	return &ConfessionHandler{confessionService: confessionService}
}

// List handles GET /api/v1/confessions. Optional query parameters: mood,
// tag, campus, limit, offset. The feed is readable without a session;
// my_vote is only populated for authenticated readers.
func (h *ConfessionHandler) List(c *gin.Context) {
	var viewerID int64
	if session, err := middleware.GetSession(c); err == nil {
		viewerID = session.UserID
	}

	filters := models.ConfessionFilters{
		Mood:   c.Query("mood"),
		Tag:    c.Query("tag"),
		Campus: c.Query("campus"),
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, convErr := strconv.Atoi(limitStr); convErr == nil {
			filters.Limit = parsed
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsed, convErr := strconv.Atoi(offsetStr); convErr == nil {
			filters.Offset = parsed
		}
	}

	confessions, err := h.confessionService.List(c.Request.Context(), viewerID, filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if confessions == nil {
		confessions = []*models.Confession{}
	}
	c.JSON(http.StatusOK, gin.H{"confessions": confessions})
}

// Create handles POST /api/v1/confessions
func (h *ConfessionHandler) Create(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.CreateConfessionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", bindJSONError(bindErr), bindErr)
		return
	}

	confession, err := h.confessionService.Create(c.Request.Context(), session.UserID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Confession submitted for review",
		"confession": confession,
	})
}

// Upvote handles POST /api/v1/confessions/:id/upvote
func (h *ConfessionHandler) Upvote(c *gin.Context) {
	h.vote(c, models.VoteUp)
}

// Downvote handles POST /api/v1/confessions/:id/downvote
func (h *ConfessionHandler) Downvote(c *gin.Context) {
	h.vote(c, models.VoteDown)
}

func (h *ConfessionHandler) vote(c *gin.Context, vote models.VoteType) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	confessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	confession, err := h.confessionService.Vote(c.Request.Context(), session.UserID, confessionID, vote)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"confession": confession})
}

// Report handles POST /api/v1/confessions/:id/report
func (h *ConfessionHandler) Report(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	confessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.ReportRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", bindJSONError(bindErr), bindErr)
		return
	}

	if err := h.confessionService.Report(c.Request.Context(), session.UserID, confessionID, req.Reason); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report submitted"})
}
