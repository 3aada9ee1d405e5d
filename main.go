package main

import (
	"log"
	"os"

	"auth"
	"core"
	"membership"

	"eko-football-api/config"
	"eko-football-api/directory"
	_ "eko-football-api/docs" // Swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Eko Football API
// @version         1.0
// @description     Matchday management for the Eko football club: registration, dues, voting, squads, fixtures and ratings.

// @contact.name   API Support

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.ConnectDatabase()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	membershipModule := membership.NewModule(config.DB)

	// PlayerService is the credential store; login checks the same rows the
	// admin approves.
	authModule := auth.NewModule(membershipModule.PlayerService)
	authModule.SetupRoutes(r)

	dir := directory.New(membershipModule.PlayerService, membershipModule.DuesService)
	coreModule := core.NewModule(config.DB, dir, nil)

	requirePlayer := auth.RequirePlayer()
	requireAdmin := auth.RequireAdmin()
	membershipModule.SetupRoutes(r, requirePlayer, requireAdmin)
	coreModule.SetupRoutes(r, requirePlayer, requireAdmin)

	if err := membershipModule.StartScheduler(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer membershipModule.StopScheduler()

	// Swagger endpoint
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", healthHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func corsOrigins() []string {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		return []string{origins}
	}
	return []string{"http://localhost:3000"}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Message  string `json:"message" example:"Server is running"`
	Database string `json:"database" example:"connected"`
}

// @Summary Health Check
// @Description Check if the server is running and database is connected
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func healthHandler(c *gin.Context) {
	c.JSON(200, HealthResponse{
		Message:  "Server is running",
		Database: "connected",
	})
}
