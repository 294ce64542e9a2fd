package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/ltalk/backend/docs"
	"github.com/ltalk/backend/internal/auth"
	"github.com/ltalk/backend/internal/cache"
	"github.com/ltalk/backend/internal/config"
	"github.com/ltalk/backend/internal/genai"
	"github.com/ltalk/backend/internal/handlers"
	"github.com/ltalk/backend/internal/logger"
	"github.com/ltalk/backend/internal/middlewares"
	"github.com/ltalk/backend/internal/repositories"
	"github.com/ltalk/backend/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title LTalk API
// @version 1.0
// @description API for vocabulary word sets, generated exercises and learning progress

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting LTalk API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	wordRepo := repositories.NewWordRepository(db)
	wordSetRepo := repositories.NewWordSetRepository(db)
	masteryRepo := repositories.NewMasteryRepository(db)
	exerciseRepo := repositories.NewExerciseRepository(db)
	submissionRepo := repositories.NewSubmissionRepository(db)
	txRunner := repositories.NewTxRunner(db)

	var templateRepo services.SentenceTemplateRepository = repositories.NewSentenceTemplateRepository(db)

	// Connect to Redis when configured
	if cfg.Redis.Host != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		templateRepo = cache.NewTemplateCache(templateRepo, rdb, cfg.Redis.TemplateTTL, logger.Logger)
	} else {
		logger.Logger.Info("Redis is not configured, sentence templates are read from the database")
	}

	// Initialize the model client and its call limiter
	model := genai.NewClient(genai.Config{
		APIKey:     cfg.GenAI.APIKey,
		BaseURL:    cfg.GenAI.BaseURL,
		Model:      cfg.GenAI.Model,
		Timeout:    cfg.GenAI.Timeout,
		MaxRetries: cfg.GenAI.MaxRetries,
	}, logger.Logger)
	limiter := services.NewGenerationLimiter(services.GenerationLimiterConfig{
		SafeLimit: cfg.Generation.SafeLimit,
		HardLimit: cfg.Generation.HardLimit,
		Window:    cfg.Generation.Window,
	}, logger.Logger)

	// Initialize services
	language := cfg.Exercise.TargetLanguage
	masteryService := services.NewMasteryService(masteryRepo, txRunner, logger.Logger)
	sentenceGenerator := services.NewSentenceGenerator(model, templateRepo, limiter, language, logger.Logger)
	exerciseService := services.NewExerciseService(
		wordSetRepo,
		wordRepo,
		exerciseRepo,
		masteryService,
		sentenceGenerator,
		model,
		limiter,
		services.ExerciseServiceConfig{MaxWords: cfg.Exercise.MaxWords, Language: language},
		logger.Logger,
	)
	submissionService := services.NewSubmissionService(
		exerciseRepo,
		wordRepo,
		submissionRepo,
		masteryService,
		services.NewAnswerChecker(),
		txRunner,
		model,
		limiter,
		language,
		logger.Logger,
	)
	wordSetService := services.NewWordSetService(wordSetRepo, wordRepo, txRunner, model, limiter, language, logger.Logger)

	// Initialize handlers
	wordSetHandler := handlers.NewWordSetHandler(wordSetService, logger.Logger)
	exerciseHandler := handlers.NewExerciseHandler(exerciseService, submissionService, logger.Logger)
	progressHandler := handlers.NewProgressHandler(masteryService, logger.Logger)

	// Initialize auth middleware
	authMiddleware := auth.Middleware(auth.NewTokenValidator(cfg.JWT.Secret))

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(middlewares.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(middlewares.DefaultMaxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		wordSetHandler.RegisterRoutes(r, authMiddleware)
		exerciseHandler.RegisterRoutes(r, authMiddleware)
		progressHandler.RegisterRoutes(r, authMiddleware)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "ltalk_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Look for the migrations folder next to the binary, then up from cmd/api
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		for _, dir := range []string{"../migrations", "../../migrations"} {
			if _, err := os.Stat(dir); err == nil {
				migrationPath = "file://" + dir
				break
			}
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
