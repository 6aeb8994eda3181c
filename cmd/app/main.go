package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"pressing/cmd"
	httpadapter "pressing/internal/adapters/in/http"
	"pressing/internal/adapters/out/postgres"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := kernel.ConfigureIDNode(configs.SnowflakeNode); err != nil {
		log.Fatalf("Invalid SNOWFLAKE_NODE: %v", err)
	}

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate the database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager, publisher, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("Failed to set up background jobs: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startWebServer(ctx, app, configs.HTTPPort, logger)

	jobManager.StopAll()
	if publisher != nil {
		if err = publisher.Close(); err != nil {
			logger.Error("Failed to close the Kafka producer", "error", err)
		}
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:               envOrDefault("HTTP_PORT", "8080"),
		DBDriver:               envOrDefault("DB_DRIVER", cmd.DBDriverPostgres),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 envOrDefault("DB_PORT", "5432"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              envOrDefault("DB_SSLMODE", "disable"),
		SQLitePath:             envOrDefault("SQLITE_PATH", "pressing.db"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		JWTIssuer:              envOrDefault("JWT_ISSUER", "pressing"),
		JWTAudience:            envOrDefault("JWT_AUDIENCE", "pressing-api"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: envOrDefault("KAFKA_ORDER_CHANGED_TOPIC", "order.changed"),
		OutboxRelaySchedule:    envOrDefault("OUTBOX_RELAY_SCHEDULE", jobs.DefaultOutboxRelaySchedule),
		OutboxBatchSize:        intEnv("OUTBOX_BATCH_SIZE", 100),
		OutboxMaxAttempts:      intEnv("OUTBOX_MAX_ATTEMPTS", 10),
		SnowflakeNode:          int64(intEnv("SNOWFLAKE_NODE", 1)),
	}
	return config
}

func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("%s must be an integer, got %q", key, raw)
	}
	return v
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{TranslateError: true}

	switch configs.DBDriver {
	case cmd.DBDriverPostgres:
		return gorm.Open(gormpostgres.Open(configs.PostgresDSN()), gormConfig)
	case cmd.DBDriverSQLite:
		db, err := gorm.Open(sqlite.Open(configs.SQLitePath), gormConfig)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", configs.DBDriver)
	}
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string, logger *slog.Logger) {
	auth, err := app.CreateAuthMiddleware()
	if err != nil {
		log.Fatalf("Failed to set up authentication: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(httpadapter.NewRequestLogger(logger))
	app.CreateHTTPServer().RegisterRoutes(e, auth)

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			e.Logger.Fatal(startErr)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
