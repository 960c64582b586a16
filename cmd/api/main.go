package main

import (
	"log"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/avismic/wrkbl/internal/config"
	"github.com/avismic/wrkbl/internal/database"
	"github.com/avismic/wrkbl/internal/handlers"
	"github.com/avismic/wrkbl/internal/moderation"
	"github.com/avismic/wrkbl/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
	cfg := config.Load()

	store, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer store.Close()

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		slog.Info("listing cache enabled", "addr", cfg.RedisAddr)
	}

	llm, err := services.NewLLMService(cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal("Failed to create classifier client: ", err)
	}

	jobService := services.NewJobService(store, cache)
	consultationService := services.NewConsultationService(store)
	orchestrator := moderation.NewOrchestrator(store, llm, cfg.ClassifierTimeout, slog.Default())

	jobHandler := handlers.NewJobHandler(jobService)
	requestHandler := handlers.NewRequestHandler(jobService)
	trashHandler := handlers.NewTrashHandler(jobService)
	reviewHandler := handlers.NewReviewHandler(orchestrator, jobService)
	consultationHandler := handlers.NewConsultationHandler(consultationService)

	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		api.GET("/jobs", jobHandler.ListJobs)
		api.POST("/jobs", jobHandler.CreateJobs)
		api.DELETE("/jobs/:id", jobHandler.DeleteJob)

		api.GET("/requests", requestHandler.ListRequests)
		api.POST("/requests", requestHandler.CreateRequests)
		api.PUT("/requests/:id", requestHandler.UpdateRequest)
		api.DELETE("/requests/:id", requestHandler.DeleteRequest)
		api.POST("/requests/:id/post", requestHandler.PublishRequest)

		api.GET("/trash", trashHandler.ListTrash)
		api.PUT("/trash/:id", trashHandler.UpdateTrash)
		api.DELETE("/trash/:id", trashHandler.DeleteTrash)
		api.POST("/trash/:id/post", trashHandler.RestoreTrash)

		api.POST("/review/requests", reviewHandler.ReviewRequests)
		api.POST("/review/trash", reviewHandler.ReviewTrash)
		api.POST("/review/jobs", reviewHandler.ReviewJobs)

		api.GET("/consultations", consultationHandler.ListConsultations)
		api.POST("/consultations", consultationHandler.CreateConsultation)
	}

	log.Println("Server starting on port " + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start: ", err)
	}
}
