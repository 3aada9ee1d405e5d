package handlers

import (
	"net/http"
	"strconv"

	"core/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Unknown errors never
// leak their message.
func respondError(c *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.KindValidation, apperrors.KindInvalidState:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// pathID parses a uint path parameter, writing a 400 on failure.
func pathID(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return uint(value), true
}

// contextPlayerID reads the authenticated player's id placed in the context
// by the JWT middleware.
func contextPlayerID(c *gin.Context) (uint, bool) {
	raw, exists := c.Get("player_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return 0, false
	}
	id, ok := raw.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return 0, false
	}
	return id, true
}
