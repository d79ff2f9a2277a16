package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/minhngvn/finshare-server/internal/api"
	"github.com/minhngvn/finshare-server/internal/config"
	"github.com/minhngvn/finshare-server/internal/mail"
	"github.com/minhngvn/finshare-server/internal/repository"
	"github.com/minhngvn/finshare-server/internal/scheduler"
	"github.com/minhngvn/finshare-server/internal/service"
	"github.com/minhngvn/finshare-server/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly
	godotenv.Load()

	utils.InitLogger()

	// Load configuration
	cfg := config.LoadConfig()

	// Set up database connection
	db, err := config.SetupDatabase(cfg)
	if err != nil {
		utils.Logger.WithError(err).Fatal("failed to set up database")
	}
	defer db.Close()

	// Create repository
	repo := repository.NewPostgresRepository(db)

	// Create service
	mailer := mail.NewMailer(cfg.SMTP)
	svc := service.NewDefaultService(repo, mailer, cfg.Auth.JWTSecret)

	// Create API handler
	handler := api.NewHandler(svc)

	// Set up Gin router
	router := gin.Default()
	router.Use(api.CORSMiddleware())

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	// Start background jobs
	cronJobs := scheduler.Start(svc)
	defer cronJobs.Stop()

	// Start server
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	utils.Logger.Infof("starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		utils.Logger.WithError(err).Fatal("failed to start server")
	}
}
