package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/mahir/lifelessons/internal/lesson"
	lessondomain "github.com/mahir/lifelessons/internal/lesson/domain"
	lessonhttp "github.com/mahir/lifelessons/internal/lesson/delivery/http"
	"github.com/mahir/lifelessons/internal/payment"
	paymentdomain "github.com/mahir/lifelessons/internal/payment/domain"
	"github.com/mahir/lifelessons/internal/payment/gateway"
	"github.com/mahir/lifelessons/internal/payment/handler"
	"github.com/mahir/lifelessons/internal/user"
	userdomain "github.com/mahir/lifelessons/internal/user/domain"
	userhttp "github.com/mahir/lifelessons/internal/user/delivery/http"
	"github.com/mahir/lifelessons/kafka"
	"github.com/mahir/lifelessons/pkg/database"
	"github.com/mahir/lifelessons/pkg/logger"
	"github.com/mahir/lifelessons/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "lifelessons-api")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting lifelessons API")

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

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "lifelessons"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations. The unique indexes on users.subject_id,
	// favorites(subject_id, lesson_id) and payments.transaction_id are what
	// the toggle and reconciliation guarantees stand on.
	if err := db.AutoMigrate(
		&userdomain.User{},
		&lessondomain.Lesson{},
		&lessondomain.Favorite{},
		&paymentdomain.Payment{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Connect to Redis for the trending ranking
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})
	defer redisClient.Close()

	// Kafka publisher for engagement and activation events. The API stays up
	// without it; events are simply not emitted.
	var publisher *kafka.Publisher
	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	publisher, err = kafka.NewPublisher(brokers)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize Kafka publisher, events disabled")
		publisher = nil
	} else {
		defer publisher.Close()
	}

	// Checkout provider configuration
	gatewayCfg := gateway.Config{
		BaseURL:     getEnv("CHECKOUT_BASE_URL", "https://api.stripe.com"),
		APIKey:      getEnv("CHECKOUT_API_KEY", ""),
		ProductName: getEnv("CHECKOUT_PRODUCT_NAME", "Premium"),
		UnitAmount:  10000,
		Currency:    getEnv("CHECKOUT_CURRENCY", "usd"),
	}
	checkoutURLs := payment.CheckoutURLs{
		SuccessURL: getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/payment/success"),
		CancelURL:  getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/payment/cancel"),
	}

	// Initialize handlers with Wire DI
	userHandler, err := user.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize user handler")
	}

	lessonHandler, err := lesson.InitializeHTTPHandler(db, redisClient, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize lesson handler")
	}

	paymentHandler, err := payment.InitializeHandler(db, gatewayCfg, checkoutURLs, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize payment handler")
	}

	logger.Logger.Info().Msg("Handlers initialized")

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8080")
	startHTTPServer(userHandler, lessonHandler, paymentHandler, sqlDB, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func startHTTPServer(userHandler *userhttp.UserHandler, lessonHandler *lessonhttp.LessonHandler, paymentHandler *handler.PaymentHandler, db *sql.DB, port string) {
	// Setup router
	router := mux.NewRouter()

	// Register all middlewares using middleware registration system
	handler.RegisterMiddlewares(router, handler.DefaultMiddlewareConfig())

	// Register routes
	userHandler.RegisterRoutes(router)
	lessonHandler.RegisterRoutes(router)
	paymentHandler.RegisterRoutes(router)

	// Health check endpoint
	paymentHandler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	go func() {
		if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
