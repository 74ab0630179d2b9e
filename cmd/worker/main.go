package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/polybites/polybites-backend/kafka"
	"github.com/polybites/polybites-backend/pkg/logger"
	"github.com/polybites/polybites-backend/pkg/tracing"
)

// The worker keeps live per-food activity counters in Redis so dashboards
// can read them without touching Postgres.
const (
	keyReviewsTotal = "polybites:stats:reviews:total"
	keyLikesTotal   = "polybites:stats:likes:total"
)

var eventsProcessed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "review_worker_events_total",
		Help: "Total number of review events processed by the worker",
	},
	[]string{"event_type", "status"},
)

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "review-worker")
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

	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Logger.Fatal().
			Err(err).
			Str("redis_addr", redisAddr).
			Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	groupID := getEnv("KAFKA_GROUP_ID", "review-worker")
	topics := []string{
		kafka.TopicReviewCreated,
		kafka.TopicReviewDeleted,
		kafka.TopicReviewLiked,
	}

	consumer, err := kafka.NewConsumer(brokers, groupID, topics)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	worker := &statsWorker{redis: redisClient}
	consumer.RegisterHandler(kafka.EventTypeReviewCreated, worker.handleReviewCreated)
	consumer.RegisterHandler(kafka.EventTypeReviewDeleted, worker.handleReviewDeleted)
	consumer.RegisterHandler(kafka.EventTypeReviewLiked, worker.handleReviewLiked)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
	}

	prometheus.MustRegister(eventsProcessed)
	metricsPort := getEnv("METRICS_PORT", "9091")
	metricsServer := &http.Server{
		Addr:    ":" + metricsPort,
		Handler: promhttp.Handler(),
	}
	go func() {
		logger.Logger.Info().
			Str("port", metricsPort).
			Msg("Worker metrics listening")
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Error().Err(err).Msg("Metrics server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down worker...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Metrics server forced shutdown")
	}
}

// statsWorker folds review events into Redis counters
type statsWorker struct {
	redis *redis.Client
}

func foodReviewsKey(foodID uint) string {
	return fmt.Sprintf("polybites:stats:food:%d:reviews", foodID)
}

func foodLikesKey(foodID uint) string {
	return fmt.Sprintf("polybites:stats:food:%d:likes", foodID)
}

func (w *statsWorker) handleReviewCreated(ctx context.Context, event kafka.ReviewEvent) error {
	pipe := w.redis.Pipeline()
	pipe.Incr(ctx, foodReviewsKey(event.FoodID))
	pipe.Incr(ctx, keyReviewsTotal)
	if _, err := pipe.Exec(ctx); err != nil {
		eventsProcessed.WithLabelValues(event.EventType, "error").Inc()
		return fmt.Errorf("failed to update review counters: %w", err)
	}

	eventsProcessed.WithLabelValues(event.EventType, "ok").Inc()
	logger.Info(ctx).
		Uint("review_id", event.ReviewID).
		Uint("food_id", event.FoodID).
		Int("rating", event.Rating).
		Msg("Review counters updated")
	return nil
}

func (w *statsWorker) handleReviewDeleted(ctx context.Context, event kafka.ReviewEvent) error {
	pipe := w.redis.Pipeline()
	pipe.Decr(ctx, foodReviewsKey(event.FoodID))
	pipe.Decr(ctx, keyReviewsTotal)
	if _, err := pipe.Exec(ctx); err != nil {
		eventsProcessed.WithLabelValues(event.EventType, "error").Inc()
		return fmt.Errorf("failed to update review counters: %w", err)
	}

	eventsProcessed.WithLabelValues(event.EventType, "ok").Inc()
	logger.Info(ctx).
		Uint("review_id", event.ReviewID).
		Uint("food_id", event.FoodID).
		Msg("Review counters updated after delete")
	return nil
}

func (w *statsWorker) handleReviewLiked(ctx context.Context, event kafka.ReviewEvent) error {
	pipe := w.redis.Pipeline()
	if event.Liked {
		pipe.Incr(ctx, foodLikesKey(event.FoodID))
		pipe.Incr(ctx, keyLikesTotal)
	} else {
		pipe.Decr(ctx, foodLikesKey(event.FoodID))
		pipe.Decr(ctx, keyLikesTotal)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		eventsProcessed.WithLabelValues(event.EventType, "error").Inc()
		return fmt.Errorf("failed to update like counters: %w", err)
	}

	eventsProcessed.WithLabelValues(event.EventType, "ok").Inc()
	logger.Info(ctx).
		Uint("review_id", event.ReviewID).
		Uint("food_id", event.FoodID).
		Bool("liked", event.Liked).
		Msg("Like counters updated")
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
