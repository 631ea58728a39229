package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/campusconnect/campusconnect-api/pkg/errors"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin
// context so the observability middleware can include the reason in the
// request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// respondServiceError maps application error sentinels to HTTP responses.
// Conflict and invalid-input messages carry their reason to the client;
// everything else gets a fixed message per status.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound, "Not found", err)
	case errors.Is(err, apperrors.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "Invalid email or password", err)
	case errors.Is(err, apperrors.ErrForbidden):
		respondError(c, http.StatusForbidden, "Forbidden", err)
	case errors.Is(err, apperrors.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, trimSentinel(err, apperrors.ErrInvalidInput), err)
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, trimSentinel(err, apperrors.ErrConflict), err)
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// trimSentinel strips the wrapped sentinel suffix (": conflict" etc.) from an
// error message, leaving the human-readable reason.
func trimSentinel(err, sentinel error) string {
	msg := err.Error()
	suffix := ": " + sentinel.Error()
	if len(msg) > len(suffix) && msg[len(msg)-len(suffix):] == suffix {
		return msg[:len(msg)-len(suffix)]
	}
	return msg
}
