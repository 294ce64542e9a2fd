package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_USER", "ltalk")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "ltalk")
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("GENAI_API_KEY", "genai-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	for _, key := range []string{
		"SERVER_PORT", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "GENAI_MODEL", "GENAI_TIMEOUT",
		"GENAI_MAX_RETRIES", "GENERATION_SAFE_LIMIT", "GENERATION_HARD_LIMIT", "GENERATION_WINDOW",
		"EXERCISE_MAX_WORDS", "TARGET_LANGUAGE", "REDIS_HOST", "REDIS_PORT", "REDIS_DB", "TEMPLATE_CACHE_TTL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "gemini-2.0-flash", cfg.GenAI.Model)
	assert.Equal(t, 30*time.Second, cfg.GenAI.Timeout)
	assert.Equal(t, 2, cfg.GenAI.MaxRetries)
	assert.Equal(t, 12, cfg.Generation.SafeLimit)
	assert.Equal(t, 15, cfg.Generation.HardLimit)
	assert.Equal(t, time.Minute, cfg.Generation.Window)
	assert.Equal(t, 12, cfg.Exercise.MaxWords)
	assert.Equal(t, "Lithuanian", cfg.Exercise.TargetLanguage)
	assert.Empty(t, cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TemplateTTL)
	assert.Equal(t, "ltalk:secret@tcp(localhost:3306)/ltalk?parseTime=true&charset=utf8mb4&clientFoundRows=true&multiStatements=true", cfg.DSN())
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("GENERATION_SAFE_LIMIT", "5")
	t.Setenv("GENERATION_HARD_LIMIT", "8")
	t.Setenv("GENERATION_WINDOW", "30s")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5, cfg.Generation.SafeLimit)
	assert.Equal(t, 8, cfg.Generation.HardLimit)
	assert.Equal(t, 30*time.Second, cfg.Generation.Window)
	assert.Equal(t, "redis:6380", cfg.RedisAddr())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name          string
		key           string
		value         string
		expectedError string
	}{
		{name: "missing DB_HOST", key: "DB_HOST", value: "", expectedError: "DB_HOST is required"},
		{name: "invalid DB_PORT", key: "DB_PORT", value: "abc", expectedError: "invalid DB_PORT"},
		{name: "missing JWT_SECRET", key: "JWT_SECRET", value: "", expectedError: "JWT_SECRET is required"},
		{name: "missing GENAI_API_KEY", key: "GENAI_API_KEY", value: "", expectedError: "GENAI_API_KEY is required"},
		{name: "invalid GENAI_TIMEOUT", key: "GENAI_TIMEOUT", value: "soon", expectedError: "invalid GENAI_TIMEOUT"},
		{name: "safe above hard", key: "GENERATION_SAFE_LIMIT", value: "20", expectedError: "must not exceed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("GENERATION_HARD_LIMIT", "")
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}
