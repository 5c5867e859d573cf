package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/adapter/handler"
	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/adapter/repository/postgres"
	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/services"
	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/platform/database"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using OS environment variables.")
	}

	dbConfig := database.Config{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "postgres"),
		Password: getenv("DB_PASSWORD", ""),
		DBName:   getenv("DB_NAME", "gestionale"),
	}

	db, err := database.NewPostgresDB(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to db after retries: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	defer db.Close()

	redisAddr := fmt.Sprintf("%s:%s", getenv("REDIS_HOST", "localhost"), getenv("REDIS_PORT", "6379"))
	log.Printf("Connecting to Redis at %s...", redisAddr)

	redisClient := redis.NewClient(&redis.Options{
		Addr: redisAddr,
		DB:   0,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Redis connected successfully!")

	// The operator's own agency, used as fallback for agency-less admins.
	adminAgencyName := getenv("ADMIN_AGENCY_NAME", "Corfumania")

	bookingRepo := postgres.NewBookingRepository(db)
	refRepo := postgres.NewReferenceRepository(db)

	bookingService := services.NewBookingService(bookingRepo, refRepo, redisClient, adminAgencyName)
	reportService := services.NewReportService(bookingRepo, refRepo, redisClient, adminAgencyName)

	bookingHandler := handler.NewBookingHandler(bookingService)
	reportHandler := handler.NewReportHandler(reportService)

	go func() {
		bookingService.RunExpirationSweep(context.Background())
	}()

	mux := http.NewServeMux()

	mux.HandleFunc("/reports", reportHandler.GenerateReport)
	mux.HandleFunc("/bookings/settle", bookingHandler.Settle)
	mux.HandleFunc("/bookings/option", bookingHandler.ToggleOption)
	mux.HandleFunc("/bookings/payment", bookingHandler.SetPaymentType)
	mux.HandleFunc("/bookings/refund", bookingHandler.Refund)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{
		Addr:         ":" + getenv("PORT", "8080"),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
