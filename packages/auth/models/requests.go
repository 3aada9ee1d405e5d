package models

type LoginRequest struct {
	BallerName string `json:"baller_name" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Roles carried in the JWT role claim.
const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)
