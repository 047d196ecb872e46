package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mahir/lifelessons/internal/trending"
	"github.com/mahir/lifelessons/kafka"
	"github.com/mahir/lifelessons/pkg/logger"
	"github.com/mahir/lifelessons/pkg/tracing"
)

// The trending worker consumes engagement events and folds them into the
// Redis ranking. It holds no database connection: the ranking is derived
// state fed entirely by the event stream.
func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "trending-worker")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Msg("Starting trending worker")

	// Initialize tracer
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

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})
	defer redisClient.Close()

	ranker := trending.NewRanker(redisClient)

	// Create Kafka consumer
	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	groupID := getEnv("KAFKA_GROUP_ID", "trending-worker")
	consumer, err := kafka.NewConsumer(brokers, groupID, []string{kafka.TopicLessonEngaged})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventTypeLessonEngaged, func(ctx context.Context, event kafka.LessonEngagedEvent) error {
		delta := trending.Weight(event.Kind, event.Active)
		if err := ranker.Bump(ctx, event.LessonID, delta); err != nil {
			return err
		}
		logger.Info(ctx).
			Uint("lesson_id", event.LessonID).
			Str("kind", event.Kind).
			Bool("active", event.Active).
			Float64("delta", delta).
			Msg("Trending score updated")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down trending worker...")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
