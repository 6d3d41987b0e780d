package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"redlight/internal/ratelimit"
	"redlight/internal/repository"
	"redlight/internal/service"
	"redlight/internal/transport/rest/handler"
	"redlight/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	FeedbackService  *service.FeedbackService
	AnalyticsService *service.AnalyticsService
	FeedbackRepo     repository.FeedbackRepo
	Limiter          *ratelimit.Limiter
	AIEnabled        bool
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	feedbackHandler := handler.NewFeedbackHandler(c.FeedbackService)
	analyticsHandler := handler.NewAnalyticsHandler(c.AnalyticsService)
	adminHandler := handler.NewAdminHandler(c.AnalyticsService)
	healthHandler := handler.NewHealthHandler(c.FeedbackRepo, c.AIEnabled)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)
	limitMW := middleware.RateLimit(c.Limiter)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.Handle("/feedback", limitMW(http.HandlerFunc(feedbackHandler.Submit))).Methods("POST", "OPTIONS")
	api.HandleFunc("/analytics/overview", analyticsHandler.Overview).Methods("GET", "OPTIONS")
	api.HandleFunc("/admin/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")

	// Admin routes (require bearer token)
	adminRoutes := api.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/institution/{name}/summary", adminHandler.InstitutionSummary).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/institutions", adminHandler.Institutions).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
