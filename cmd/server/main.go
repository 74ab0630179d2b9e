package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	profileHTTP "github.com/polybites/polybites-backend/internal/profile/delivery/http"
	profileRepo "github.com/polybites/polybites-backend/internal/profile/repository"
	restaurantHTTP "github.com/polybites/polybites-backend/internal/restaurant/delivery/http"
	restaurantRepo "github.com/polybites/polybites-backend/internal/restaurant/repository"
	"github.com/polybites/polybites-backend/internal/review"
	reviewRepo "github.com/polybites/polybites-backend/internal/review/repository"
	"github.com/polybites/polybites-backend/kafka"
	"github.com/polybites/polybites-backend/pkg/database"
	"github.com/polybites/polybites-backend/pkg/logger"
	"github.com/polybites/polybites-backend/pkg/tracing"
)

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "polybites-backend")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "polybites"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Restaurants and foods migrate first; the review tables reference them.
	restRepository := restaurantRepo.NewGormRestaurantRepository(db)
	if err := restRepository.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run restaurant migrations")
	}
	profRepository := profileRepo.NewGormProfileRepository(db)
	if err := profRepository.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run profile migrations")
	}
	revRepository := reviewRepo.NewGormReviewRepository(db)
	if err := revRepository.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run review migrations")
	}

	// Kafka is optional; without brokers the commands simply skip publishing
	var publisher *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to create Kafka publisher, events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	reviewHandler := review.InitializeHandler(db, publisher)
	restaurantHandler := restaurantHTTP.NewRestaurantHandler(restRepository)
	profileHandler := profileHTTP.NewProfileHandler(profRepository)

	router := mux.NewRouter()
	reviewHandler.RegisterRoutes(router)
	restaurantHandler.RegisterRoutes(router)
	profileHandler.RegisterRoutes(router)
	reviewHandler.RegisterHealthCheck(router, sqlDB)

	router.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := otelhttp.NewHandler(c.Handler(router), "polybites-backend")

	port := getEnv("HTTP_PORT", "5000")
	server := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	go func() {
		logger.Logger.Info().
			Str("port", port).
			Msg("PolyBites backend listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
