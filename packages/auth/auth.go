package auth

import (
	"auth/handlers"
	"auth/middleware"

	"github.com/gin-gonic/gin"
)

// CredentialStore and PlayerAccount are re-exported so callers wire the
// membership package in without importing handlers directly.
type (
	CredentialStore = handlers.CredentialStore
	PlayerAccount   = handlers.PlayerAccount
)

type Module struct {
	Handler *handlers.AuthHandler
}

func NewModule(store CredentialStore) *Module {
	return &Module{
		Handler: handlers.NewAuthHandler(store),
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", m.Handler.Login)
		auth.POST("/admin/login", m.Handler.AdminLogin)
	}
}

func JWTMiddleware() gin.HandlerFunc {
	return middleware.JWTMiddleware()
}

func RequirePlayer() gin.HandlerFunc {
	return middleware.RequirePlayer()
}

func RequireAdmin() gin.HandlerFunc {
	return middleware.RequireAdmin()
}

func GetPlayerID(c *gin.Context) (uint, bool) {
	return middleware.GetPlayerID(c)
}
