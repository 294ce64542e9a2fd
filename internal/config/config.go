// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database   DatabaseConfig
	Redis      RedisConfig
	Server     ServerConfig
	Logging    LoggingConfig
	CORS       CORSConfig
	JWT        JWTConfig
	GenAI      GenAIConfig
	Generation GenerationConfig
	Exercise   ExerciseConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// RedisConfig holds Redis connection settings
//
// An empty Host disables the template cache.
type RedisConfig struct {
	Host        string
	Port        int
	Password    string
	DB          int
	TemplateTTL time.Duration
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds JWT token configuration
type JWTConfig struct {
	Secret string
}

// GenAIConfig holds generative model settings
type GenAIConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// GenerationConfig holds the sliding window limits for model calls
type GenerationConfig struct {
	SafeLimit int
	HardLimit int
	Window    time.Duration
}

// ExerciseConfig holds exercise building settings
type ExerciseConfig struct {
	MaxWords       int
	TargetLanguage string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{}

	// Database configuration
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return nil, fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	// Server configuration
	if cfg.Server.Port, err = intEnv("SERVER_PORT", 8080); err != nil {
		return nil, err
	}

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.JWT.Secret = jwtSecret

	// Generative model configuration
	apiKey := os.Getenv("GENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GENAI_API_KEY is required")
	}
	cfg.GenAI.APIKey = apiKey
	cfg.GenAI.BaseURL = os.Getenv("GENAI_BASE_URL")
	cfg.GenAI.Model = stringEnv("GENAI_MODEL", "gemini-2.0-flash")
	if cfg.GenAI.Timeout, err = durationEnv("GENAI_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.GenAI.MaxRetries, err = intEnv("GENAI_MAX_RETRIES", 2); err != nil {
		return nil, err
	}

	// Generation limits
	if cfg.Generation.SafeLimit, err = intEnv("GENERATION_SAFE_LIMIT", 12); err != nil {
		return nil, err
	}
	if cfg.Generation.HardLimit, err = intEnv("GENERATION_HARD_LIMIT", 15); err != nil {
		return nil, err
	}
	if cfg.Generation.SafeLimit > cfg.Generation.HardLimit {
		return nil, fmt.Errorf("GENERATION_SAFE_LIMIT must not exceed GENERATION_HARD_LIMIT")
	}
	if cfg.Generation.Window, err = durationEnv("GENERATION_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	// Exercise configuration
	if cfg.Exercise.MaxWords, err = intEnv("EXERCISE_MAX_WORDS", 12); err != nil {
		return nil, err
	}
	cfg.Exercise.TargetLanguage = stringEnv("TARGET_LANGUAGE", "Lithuanian")

	// Redis configuration (optional, enables the template cache)
	cfg.Redis.Host = os.Getenv("REDIS_HOST")
	if cfg.Redis.Port, err = intEnv("REDIS_PORT", 6379); err != nil {
		return nil, err
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Redis.TemplateTTL, err = durationEnv("TEMPLATE_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DSN returns the database connection string
//
// clientFoundRows makes UPDATE report matched rows, so an unchanged row still counts as found.
// multiStatements lets a migration file hold several statements.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&clientFoundRows=true&multiStatements=true",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func parseOrigins(value string) []string {
	if value == "" {
		// Default to allow all origins if not specified (for development)
		return []string{"*"}
	}
	origins := make([]string, 0)
	for _, origin := range strings.Split(value, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func stringEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
