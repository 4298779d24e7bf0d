package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/crewzy/workforce-api/internal/auth"
	"github.com/crewzy/workforce-api/internal/config"
	"github.com/crewzy/workforce-api/internal/database"
	"github.com/crewzy/workforce-api/internal/geocode"
	"github.com/crewzy/workforce-api/internal/handlers"
	"github.com/crewzy/workforce-api/internal/middleware"
	"github.com/crewzy/workforce-api/internal/models"
	"github.com/crewzy/workforce-api/internal/repository"
	"github.com/crewzy/workforce-api/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using environment variables")
	}

	cfg := config.Load()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := auth.NewManager(cfg.JWTSecret, auth.TokenTTL)

	authService := services.NewAuthService(userRepo, tokens)
	companyService := services.NewCompanyService(companyRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)

	var suggestionService *services.TaskSuggestionService
	if cfg.OpenAIAPIKey != "" {
		suggestionService = services.NewTaskSuggestionService(cfg.OpenAIAPIKey)
	}

	geocoder := geocode.NewClient(geocode.Config{
		ClientID:     cfg.MapplsClientID,
		ClientSecret: cfg.MapplsClientSecret,
		APIKey:       cfg.MapplsAPIKey,
	})

	authHandler := handlers.NewAuthHandler(authService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	taskHandler := handlers.NewTaskHandler(taskService, suggestionService)
	locationHandler := handlers.NewLocationHandler(geocoder)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "x-access-token"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authenticated := middleware.Authenticate(tokens, userRepo)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	api := r.Group("/api/v1")
	{
		api.GET("", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "Workforce API is running"})
		})

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/login", authHandler.Login)
		}

		api.POST("/company/register", companyHandler.Register)

		tasks := api.Group("/task")
		tasks.Use(authenticated)
		{
			tasks.POST("/assign", adminOnly, taskHandler.Create)
			tasks.GET("", taskHandler.List)
			tasks.GET("/:id", taskHandler.Get)
			tasks.PUT("/:id/status", taskHandler.UpdateStatus)
			tasks.PUT("/:id/assignee", adminOnly, taskHandler.Assign)
			tasks.DELETE("/:id", adminOnly, taskHandler.Delete)
			tasks.POST("/generate", adminOnly, taskHandler.Generate)
		}

		// Behind auth so the metered provider is not exposed as an open proxy
		api.GET("/location/reverse-geocode", authenticated, locationHandler.ReverseGeocode)
	}

	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
