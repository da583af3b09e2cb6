package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
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

	"github.com/mundiclass/backend/internal/category"
	categorydomain "github.com/mundiclass/backend/internal/category/domain"
	categoryrepo "github.com/mundiclass/backend/internal/category/repository"
	"github.com/mundiclass/backend/internal/client"
	clientdomain "github.com/mundiclass/backend/internal/client/domain"
	clientrepo "github.com/mundiclass/backend/internal/client/repository"
	historyhttp "github.com/mundiclass/backend/internal/history/delivery/http"
	historyrepo "github.com/mundiclass/backend/internal/history/repository"
	historycommand "github.com/mundiclass/backend/internal/history/usecase/command"
	historyquery "github.com/mundiclass/backend/internal/history/usecase/query"
	"github.com/mundiclass/backend/internal/product"
	productdomain "github.com/mundiclass/backend/internal/product/domain"
	productrepo "github.com/mundiclass/backend/internal/product/repository"
	"github.com/mundiclass/backend/internal/purchase"
	purchasedomain "github.com/mundiclass/backend/internal/purchase/domain"
	"github.com/mundiclass/backend/internal/user"
	userdomain "github.com/mundiclass/backend/internal/user/domain"
	"github.com/mundiclass/backend/kafka"
	"github.com/mundiclass/backend/pkg/database"
	"github.com/mundiclass/backend/pkg/logger"
	"github.com/mundiclass/backend/pkg/middleware"
	"github.com/mundiclass/backend/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "mundiclass-backend")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting backend")

	// Initialize tracing
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Tracing disabled")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shut down tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "mundiclass"),
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

	// The deletion log runs on database/sql directly; give it its own pool
	rawDB, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open raw database connection")
	}
	defer rawDB.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&categorydomain.Category{},
		&productdomain.Product{},
		&clientdomain.Client{},
		&userdomain.User{},
		&purchasedomain.Purchase{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	historyRepo := historyrepo.NewPostgresHistoryRepository(rawDB)
	if err := historyRepo.Migrate(context.Background()); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to migrate deletion history")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Deletion history is shared infrastructure: every domain's delete
	// command appends to it
	recorder := historycommand.NewRecordDeletionHandler(historyRepo)
	historyHandler := historyhttp.NewHistoryHandler(
		historyquery.NewListDeletedHandler(historyRepo),
		historyRepo,
	)

	// Cross-domain read ports
	catChecker := &categoryChecker{repo: categoryrepo.NewGormCategoryRepository(db)}
	cliChecker := &clientChecker{repo: clientrepo.NewGormClientRepository(db)}
	stkReader := &stockReader{repo: productrepo.NewGormProductRepository(db)}

	// Initialize handlers with Wire DI
	categoryHandler, err := category.InitializeHTTPHandler(db, recorder)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize category handler")
	}
	productHandler, err := product.InitializeHTTPHandler(db, catChecker, recorder)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize product handler")
	}
	clientHandler, err := client.InitializeHTTPHandler(db, recorder)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize client handler")
	}
	userHandler, err := user.InitializeHTTPHandler(db, recorder)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize user handler")
	}
	purchaseHandler, err := purchase.InitializeHTTPHandler(db, cliChecker, stkReader, recorder)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize purchase handler")
	}

	// Optional Kafka publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka publisher disabled")
		} else {
			defer publisher.Close()
			categoryHandler.SetKafkaPublisher(publisher)
			productHandler.SetKafkaPublisher(publisher)
			clientHandler.SetKafkaPublisher(publisher)
			userHandler.SetKafkaPublisher(publisher)
			purchaseHandler.SetKafkaPublisher(publisher)
		}
	}

	// Optional Redis cache and rate limiter
	var rateLimiter *middleware.RateLimiter
	if redisAddr := getEnv("REDIS_ADDR", ""); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: getEnv("REDIS_PASSWORD", ""),
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Redis unavailable, cache and rate limiting disabled")
		} else {
			cache := middleware.NewResponseCache(redisClient, 30*time.Second)
			categoryHandler.SetResponseCache(cache)
			productHandler.SetResponseCache(cache)
			clientHandler.SetResponseCache(cache)
			rateLimiter = middleware.NewRateLimiter(redisClient, 100, time.Minute)
			logger.Logger.Info().Str("addr", redisAddr).Msg("Redis connected")
		}
	}

	// Setup router
	router := mux.NewRouter()

	categoryHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router)
	clientHandler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router)
	purchaseHandler.RegisterRoutes(router)
	historyHandler.RegisterRoutes(router)

	registerHealthCheck(router, rawDB)
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	var handler http.Handler = router
	handler = middleware.RequestLogging(handler)
	if rateLimiter != nil {
		handler = rateLimiter.Middleware(handler)
	}
	handler = c.Handler(handler)

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + httpPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
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

func registerHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := "healthy"
		code := http.StatusOK
		if err := db.PingContext(r.Context()); err != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	}).Methods("GET")
}

// categoryChecker adapts the category repository to the product module's
// CategoryChecker port
type categoryChecker struct {
	repo categorydomain.CategoryRepository
}

func (c *categoryChecker) CategoryExists(id uint) (bool, error) {
	_, err := c.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, categorydomain.ErrCategoryNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// clientChecker adapts the client repository to the purchase module's
// ClientChecker port
type clientChecker struct {
	repo clientdomain.ClientRepository
}

func (c *clientChecker) ClientExists(id uint) (bool, error) {
	_, err := c.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, clientdomain.ErrClientNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// stockReader adapts the product repository to the purchase module's
// StockReader port
type stockReader struct {
	repo productdomain.ProductRepository
}

func (s *stockReader) ProductStock(id uint) (int, error) {
	p, err := s.repo.FindByID(id)
	if err != nil {
		return 0, err
	}
	return p.Stock, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
