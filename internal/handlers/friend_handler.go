package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusconnect/campusconnect-api/internal/middleware"
	"github.com/campusconnect/campusconnect-api/internal/models"
	"github.com/campusconnect/campusconnect-api/internal/services"
)

// FriendHandler handles the connection lifecycle endpoints
type FriendHandler struct {
	friendService services.FriendServiceInterface
}

func NewFriendHandler(friendService services.FriendServiceInterface) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

// ListFriends handles GET /api/v1/friends
func (h *FriendHandler) ListFriends(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	friends, err := h.friendService.ListFriends(c.Request.Context(), session.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if friends == nil {
		friends = []*models.Friend{}
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// ListPendingRequests handles GET /api/v1/friends/requests
func (h *FriendHandler) ListPendingRequests(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	requests, err := h.friendService.ListPendingRequests(c.Request.Context(), session.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if requests == nil {
		requests = []*models.FriendRequest{}
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// SendRequest handles POST /api/v1/friends/request/:userId
func (h *FriendHandler) SendRequest(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	receiverID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	request, err := h.friendService.SendRequest(c.Request.Context(), session.UserID, receiverID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Friend request sent", "request": request})
}

// AcceptRequest handles POST /api/v1/friends/accept/:requestId
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	requestID, ok := pathID(c, "requestId")
	if !ok {
		return
	}

	request, err := h.friendService.AcceptRequest(c.Request.Context(), session.UserID, requestID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted", "request": request})
}

// RemoveFriend handles DELETE /api/v1/friends/:userId
func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	friendID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.friendService.RemoveFriend(c.Request.Context(), session.UserID, friendID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
}

// pathID parses a positive integer path parameter, responding with 400 on
// anything else.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		respondError(c, http.StatusBadRequest, name+" must be a positive integer", err)
		return 0, false
	}
	return id, true
}
