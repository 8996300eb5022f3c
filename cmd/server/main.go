package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/luiizaferreirafonseca/rental-engine/internal/config"
	"github.com/luiizaferreirafonseca/rental-engine/internal/handler"
	"github.com/luiizaferreirafonseca/rental-engine/internal/repository"
	"github.com/luiizaferreirafonseca/rental-engine/internal/service"
	"github.com/luiizaferreirafonseca/rental-engine/pkg/response"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	rentalRepo := repository.NewRentalRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	accessoryRepo := repository.NewAccessoryRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	// One locker shared by every service so operations on the same
	// contract serialize regardless of which service runs them.
	locks := service.NewContractLocker()

	rentalService := service.NewRentalService(rentalRepo, vehicleRepo, locks, redisClient, cfg)
	accessoryService := service.NewAccessoryService(rentalRepo, accessoryRepo, locks, redisClient)
	paymentService := service.NewPaymentService(rentalRepo, locks, redisClient, cfg)
	ratingService := service.NewRatingService(rentalRepo, ratingRepo, locks)

	rentalHandler := handler.NewRentalHandler(rentalService, accessoryService, paymentService, ratingService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg)

	// Setup routes
	router := setupRoutes(rentalHandler, healthHandler)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(rentalHandler *handler.RentalHandler, healthHandler *handler.HealthHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware)
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/rentals", rentalHandler.CreateRental).Methods("POST")
	api.HandleFunc("/rentals/{rentalId}/cancel", rentalHandler.CancelRental).Methods("POST")
	api.HandleFunc("/rentals/{rentalId}/extend", rentalHandler.ExtendRental).Methods("POST")
	api.HandleFunc("/rentals/{rentalId}/return", rentalHandler.ReturnRental).Methods("POST")
	api.HandleFunc("/rentals/{rentalId}/accessories", rentalHandler.AttachAccessory).Methods("POST")
	api.HandleFunc("/rentals/{rentalId}/accessories/{accessoryId}", rentalHandler.DetachAccessory).Methods("DELETE")
	api.HandleFunc("/rentals/{rentalId}/payments", rentalHandler.RegisterPayment).Methods("POST")
	api.HandleFunc("/rentals/{rentalId}/summary", rentalHandler.GetSummary).Methods("GET")
	api.HandleFunc("/rentals/{rentalId}/rating", rentalHandler.RateRental).Methods("POST")

	return router
}
