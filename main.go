package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nutriTrackAPI/handlers"
	"nutriTrackAPI/internal/db"
	"nutriTrackAPI/middleware"
	"nutriTrackAPI/services"
)

var (
	dbPool             *pgxpool.Pool
	authService        *services.AuthService
	userService        *services.UserService
	streakService      *services.StreakService
	achievementService *services.AchievementService
	foodService        *services.FoodService
	analyticsService   *services.AnalyticsService
	visionService      *services.VisionService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	openAIKey := os.Getenv("OPENAI_API_KEY")
	if openAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set, food analysis will return fallback values")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to Postgres")

	sqlDB := stdlib.OpenDBFromPool(dbPool)
	if err := db.RunMigrations(sqlDB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	authService = services.NewAuthService(dbPool, jwtSecret)
	userService = services.NewUserService(dbPool)
	streakService = services.NewStreakService(dbPool)
	achievementService = services.NewAchievementService(dbPool)
	foodService = services.NewFoodService(dbPool, userService, streakService, achievementService)
	analyticsService = services.NewAnalyticsService(dbPool, streakService)
	visionService = services.NewVisionService(openAIKey)

	if err := achievementService.SeedCatalog(ctx); err != nil {
		log.Fatal("Failed to seed achievement catalog:", err)
	}
	log.Println("Achievement catalog seeded")

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	foodHandler := handlers.NewFoodHandler(foodService, visionService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, streakService, achievementService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "nutriTrack-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)

	protected.HandleFunc("/auth/me", authHandler.Me).Methods("GET")

	protected.HandleFunc("/users/{userID}", userHandler.GetUser).Methods("GET")
	protected.HandleFunc("/users/{userID}", userHandler.UpdateUser).Methods("PUT")
	protected.HandleFunc("/users/{userID}/targets", userHandler.GetTargets).Methods("GET")

	protected.HandleFunc("/analyze-food", foodHandler.AnalyzeFood).Methods("POST")
	protected.HandleFunc("/food-entries", foodHandler.LogFood).Methods("POST")
	protected.HandleFunc("/users/{userID}/food-entries", foodHandler.GetFoodEntries).Methods("GET")
	protected.HandleFunc("/users/{userID}/daily-stats", foodHandler.GetDailyStats).Methods("GET")

	protected.HandleFunc("/users/{userID}/streaks", analyticsHandler.GetStreaks).Methods("GET")
	protected.HandleFunc("/achievements", analyticsHandler.GetAchievementsCatalog).Methods("GET")
	protected.HandleFunc("/users/{userID}/achievements", analyticsHandler.GetUserAchievements).Methods("GET")

	protected.HandleFunc("/users/{userID}/analytics/weekly", analyticsHandler.GetWeekly).Methods("GET")
	protected.HandleFunc("/users/{userID}/analytics/monthly", analyticsHandler.GetMonthly).Methods("GET")
	protected.HandleFunc("/users/{userID}/analytics/summary", analyticsHandler.GetSummary).Methods("GET")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
