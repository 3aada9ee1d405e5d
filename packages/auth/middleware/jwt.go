package middleware

import (
	"net/http"
	"strings"

	"auth/models"
	"auth/utils"

	"github.com/gin-gonic/gin"
)

// JWTMiddleware validates the Authorization header and stores the subject
// id and role in the context.
func JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}
		subjectID, role, err := utils.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		c.Set("player_id", subjectID)
		c.Set("role", role)
	}
}

// RequireRole aborts unless the token carries the given role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, exists := c.Get("role")
		if !exists || got != role {
			c.JSON(http.StatusForbidden, gin.H{
				"error":         "Insufficient permissions",
				"required_role": role,
			})
			c.Abort()
			return
		}
	}
}

// RequirePlayer chains JWT validation with the player role. Admins pass as
// well, so read endpoints stay usable from the admin dashboard.
func RequirePlayer() gin.HandlerFunc {
	jwtCheck := JWTMiddleware()
	return func(c *gin.Context) {
		jwtCheck(c)
		if c.IsAborted() {
			return
		}
		role, _ := c.Get("role")
		if role != models.RolePlayer && role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
		}
	}
}

// RequireAdmin chains JWT validation with the admin role.
func RequireAdmin() gin.HandlerFunc {
	jwtCheck := JWTMiddleware()
	adminCheck := RequireRole(models.RoleAdmin)
	return func(c *gin.Context) {
		jwtCheck(c)
		if c.IsAborted() {
			return
		}
		adminCheck(c)
	}
}

// GetPlayerID reads the authenticated subject id from the context.
func GetPlayerID(c *gin.Context) (uint, bool) {
	raw, exists := c.Get("player_id")
	if !exists {
		return 0, false
	}
	id, ok := raw.(uint)
	return id, ok
}
