package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusconnect/campusconnect-api/internal/middleware"
	"github.com/campusconnect/campusconnect-api/internal/models"
	"github.com/campusconnect/campusconnect-api/internal/services"
)

// MatchHandler handles candidate discovery
type MatchHandler struct {
	matchService services.MatchServiceInterface
}

func NewMatchHandler(matchService services.MatchServiceInterface) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// FindMatches handles GET /api/v1/match. Optional query parameters: goal,
// department, year (exact-match filters) and limit.
func (h *MatchHandler) FindMatches(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	filters := models.MatchFilters{
		Goal:       c.Query("goal"),
		Department: c.Query("department"),
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, convErr := strconv.Atoi(yearStr)
		if convErr != nil || year < 1 {
			respondError(c, http.StatusBadRequest, "year must be a positive integer", convErr)
			return
		}
		filters.Year = year
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, convErr := strconv.Atoi(limitStr)
		if convErr != nil || parsed < 1 {
			respondError(c, http.StatusBadRequest, "limit must be a positive integer", convErr)
			return
		}
		limit = parsed
	}

	matches, err := h.matchService.FindMatches(c.Request.Context(), session.UserID, filters, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
		"count":   len(matches),
	})
}
