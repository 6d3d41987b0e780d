package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"redlight/internal/config"
	"redlight/internal/ratelimit"
	"redlight/internal/repository"
	"redlight/internal/service"
	"redlight/internal/transport/rest"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	ctx := context.Background()
	cfg := config.Load()

	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Model:   %s", aiConfig.Model)
	if aiConfig.IsEnabled() {
		log.Println("  API Key: configured")
	} else {
		log.Println("  API Key: NOT SET (using keyword heuristic)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis is optional; it only backs the submission rate limiter.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Printf("Warning: Redis unavailable, rate limiting in memory only: %v", err)
			rdb.Close()
			rdb = nil
		} else {
			log.Println("Connected to Redis")
			defer rdb.Close()
		}
	}

	// Initialize repositories
	feedbackRepo := repository.NewFeedbackRepo(db)

	// Initialize services
	authSvc, err := service.NewAuthService(cfg)
	if err != nil {
		log.Fatal("Failed to initialize auth:", err)
	}
	analyzer := service.NewAnalyzerService(aiConfig)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, analyzer)
	analyticsSvc := service.NewAnalyticsService(feedbackRepo)

	limiter := ratelimit.New(rdb, cfg.SubmitLimitPerMin, time.Minute)

	// Create router with container
	container := &rest.Container{
		AuthService:      authSvc,
		FeedbackService:  feedbackSvc,
		AnalyticsService: analyticsSvc,
		FeedbackRepo:     feedbackRepo,
		Limiter:          limiter,
		AIEnabled:        aiConfig.IsEnabled(),
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("RedLight API starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /api/feedback")
		log.Println("  GET  /api/analytics/overview")
		log.Println("  POST /api/admin/login")
		log.Println("  GET  /api/admin/institution/{name}/summary")
		log.Println("  GET  /api/admin/institutions")
		log.Println("  GET  /health")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
