package handlers

import (
	"net/http"
	"os"

	"auth/models"
	"auth/utils"

	"github.com/gin-gonic/gin"
)

// PlayerAccount is the credential record the membership package exposes for
// login.
type PlayerAccount struct {
	ID           uint
	BallerName   string
	PasswordHash string
	Suspended    bool
}

// CredentialStore looks up approved member accounts by baller name.
type CredentialStore interface {
	FindApprovedPlayer(ballerName string) (*PlayerAccount, error)
}

type AuthHandler struct {
	store CredentialStore
}

func NewAuthHandler(store CredentialStore) *AuthHandler {
	return &AuthHandler{store: store}
}

// Login authenticates a member
// @Summary Member login
// @Description Login with baller name and password to get a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Member credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.store.FindApprovedPlayer(req.BallerName)
	if err != nil || account == nil || !utils.CheckPassword(req.Password, account.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if account.Suspended {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account suspended"})
		return
	}

	token, err := utils.GenerateToken(account.ID, models.RolePlayer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"player_id":    account.ID,
		"baller_name":  account.BallerName,
	})
}

// AdminLogin authenticates the administrator
// @Summary Admin login
// @Description Login with the admin credentials from the environment
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.AdminLoginRequest true "Admin credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	if req.Username != username || req.Password != password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(0, models.RoleAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
	})
}
